package domain

import "time"

// SalesRecord is one row of sales data: what was sold, when, how many
// units, and the revenue taken.
type SalesRecord struct {
	Date     time.Time
	Product  string
	Quantity int64
	Revenue  float64
}

// ProductSales aggregates the sales rows of a single product.
type ProductSales struct {
	Product     string
	Units       int64
	Revenue     float64
	SaleCount   int64
	MeanRevenue float64
}

// SalesSummary is the grouped view over a full sales data set. Products
// appear in order of first occurrence in the underlying records.
type SalesSummary struct {
	Products     []ProductSales
	TotalUnits   int64
	TotalRevenue float64
}
