package dto

import (
	"time"

	"github.com/mrops-br/price-monitor-api/internal/domain"
)

const dateLayout = "2006-01-02"

// PricePointResponse is one history entry as exposed over the API.
type PricePointResponse struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// ProductData is the wire shape of a catalog record.
type ProductData struct {
	CurrentPrice float64              `json:"current_price"`
	LastUpdate   time.Time            `json:"last_update"`
	History      []PricePointResponse `json:"history"`
}

// AllPricesResponse wraps the full catalog.
type AllPricesResponse struct {
	Success   bool                    `json:"success"`
	Data      map[string]*ProductData `json:"data"`
	Timestamp time.Time               `json:"timestamp"`
}

// ProductPriceResponse wraps a single catalog record.
type ProductPriceResponse struct {
	Success   bool         `json:"success"`
	Product   string       `json:"product"`
	Data      *ProductData `json:"data"`
	Timestamp time.Time    `json:"timestamp"`
}

// PriceHistoryResponse wraps a product's history.
type PriceHistoryResponse struct {
	Success   bool                 `json:"success"`
	Product   string               `json:"product"`
	History   []PricePointResponse `json:"history"`
	Timestamp time.Time            `json:"timestamp"`
}

// PricedProductResponse names one side of a comparison.
type PricedProductResponse struct {
	Product string  `json:"product"`
	Price   float64 `json:"price"`
}

// ComparisonResponse wraps an extrema selection over resolved prices.
type ComparisonResponse struct {
	Success       bool                  `json:"success"`
	Comparison    map[string]float64    `json:"comparison"`
	Cheapest      PricedProductResponse `json:"cheapest"`
	MostExpensive PricedProductResponse `json:"most_expensive"`
	Timestamp     time.Time             `json:"timestamp"`
}

// NotFoundResponse reports an unknown product together with the names
// that would have worked.
type NotFoundResponse struct {
	Success           bool     `json:"success"`
	Error             string   `json:"error"`
	AvailableProducts []string `json:"available_products,omitempty"`
}

// UsageErrorResponse reports an unusable request with a usage hint.
type UsageErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Example string `json:"example,omitempty"`
}

// ToPricePointResponses converts a history sequence.
func ToPricePointResponses(history []domain.PricePoint) []PricePointResponse {
	points := make([]PricePointResponse, len(history))
	for i, p := range history {
		points[i] = PricePointResponse{
			Date:  p.Date.Format(dateLayout),
			Price: p.Price,
		}
	}
	return points
}

// ToProductData converts a domain ProductRecord to its wire shape.
func ToProductData(record *domain.ProductRecord) *ProductData {
	return &ProductData{
		CurrentPrice: record.CurrentPrice,
		LastUpdate:   record.LastUpdate,
		History:      ToPricePointResponses(record.History),
	}
}

// ToProductDataMap converts a list of records to the name-keyed map used
// by the all-prices endpoint.
func ToProductDataMap(records []*domain.ProductRecord) map[string]*ProductData {
	data := make(map[string]*ProductData, len(records))
	for _, record := range records {
		data[record.Name] = ToProductData(record)
	}
	return data
}

// ToComparisonResponse converts an extrema selection plus the resolved
// prices it ran over.
func ToComparisonResponse(comparison *domain.Comparison, prices *domain.PriceSet) *ComparisonResponse {
	resolved := make(map[string]float64, prices.Len())
	for _, entry := range prices.Entries() {
		resolved[entry.Name] = entry.Price
	}

	return &ComparisonResponse{
		Success:    true,
		Comparison: resolved,
		Cheapest: PricedProductResponse{
			Product: comparison.Cheapest.Name,
			Price:   comparison.Cheapest.Price,
		},
		MostExpensive: PricedProductResponse{
			Product: comparison.MostExpensive.Name,
			Price:   comparison.MostExpensive.Price,
		},
		Timestamp: time.Now(),
	}
}
