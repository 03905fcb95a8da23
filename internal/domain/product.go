package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidProductName  = errors.New("product name is required")
	ErrInvalidProductPrice = errors.New("product price must not be negative")
	ErrEmptyHistory        = errors.New("product history must not be empty")
	ErrHistoryOutOfOrder   = errors.New("product history must be ordered by date ascending")
)

// PricePoint is a single entry in a product's price history.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// ProductRecord represents a catalog entry: the current price of a
// product plus its append-only price history, ordered by date ascending.
// CurrentPrice is independent of the last history entry; the seed data
// keeps them equal but nothing relies on that.
type ProductRecord struct {
	Name         string
	CurrentPrice float64
	LastUpdate   time.Time
	History      []PricePoint
}

// NewProductRecord creates a catalog record with validation. LastUpdate
// is set at construction time, i.e. at catalog initialization.
func NewProductRecord(name string, currentPrice float64, history []PricePoint) (*ProductRecord, error) {
	record := &ProductRecord{
		Name:         name,
		CurrentPrice: currentPrice,
		LastUpdate:   time.Now(),
		History:      history,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate performs business validation on the record.
func (p *ProductRecord) Validate() error {
	if p.Name == "" {
		return ErrInvalidProductName
	}
	if p.CurrentPrice < 0 {
		return ErrInvalidProductPrice
	}
	if len(p.History) == 0 {
		return ErrEmptyHistory
	}
	for i := 1; i < len(p.History); i++ {
		if p.History[i].Date.Before(p.History[i-1].Date) {
			return ErrHistoryOutOfOrder
		}
	}
	return nil
}
