package dto

import (
	"time"

	"github.com/mrops-br/price-monitor-api/internal/domain"
)

// ProductSalesResponse is the per-product slice of a sales summary.
type ProductSalesResponse struct {
	Product     string  `json:"product"`
	Units       int64   `json:"units"`
	Revenue     float64 `json:"revenue"`
	SaleCount   int64   `json:"sale_count"`
	MeanRevenue float64 `json:"mean_revenue"`
}

// SalesSummaryResponse wraps a grouped sales aggregate. ReportID is
// unique per generated summary.
type SalesSummaryResponse struct {
	Success      bool                   `json:"success"`
	ReportID     string                 `json:"report_id"`
	Products     []ProductSalesResponse `json:"products"`
	TotalUnits   int64                  `json:"total_units"`
	TotalRevenue float64                `json:"total_revenue"`
	Timestamp    time.Time              `json:"timestamp"`
}

// ToSalesSummaryResponse converts a domain summary.
func ToSalesSummaryResponse(summary *domain.SalesSummary, reportID string) *SalesSummaryResponse {
	products := make([]ProductSalesResponse, len(summary.Products))
	for i, p := range summary.Products {
		products[i] = ProductSalesResponse{
			Product:     p.Product,
			Units:       p.Units,
			Revenue:     p.Revenue,
			SaleCount:   p.SaleCount,
			MeanRevenue: p.MeanRevenue,
		}
	}

	return &SalesSummaryResponse{
		Success:      true,
		ReportID:     reportID,
		Products:     products,
		TotalUnits:   summary.TotalUnits,
		TotalRevenue: summary.TotalRevenue,
		Timestamp:    time.Now(),
	}
}
