package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("product name already in catalog")
	ErrNoValidInput     = errors.New("no valid product names provided")
)

// CatalogRepository defines the contract for the read-only product
// catalog. GetAll and Names must preserve insertion order.
type CatalogRepository interface {
	Get(ctx context.Context, name string) (*ProductRecord, error)
	GetAll(ctx context.Context) ([]*ProductRecord, error)
	Contains(ctx context.Context, name string) bool
	Names(ctx context.Context) []string
}

// SalesRepository defines the contract for the sales record store
// consumed by the aggregation collaborator.
type SalesRepository interface {
	All(ctx context.Context) ([]SalesRecord, error)
}
