package memory

import (
	"time"

	"github.com/mrops-br/price-monitor-api/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// DefaultCatalog returns the fixed seed the catalog is populated with at
// process start. Current prices match the last history entry, although
// the model does not require that.
func DefaultCatalog() []*domain.ProductRecord {
	now := time.Now().UTC()

	return []*domain.ProductRecord{
		{
			Name:         "Product A",
			CurrentPrice: 1200,
			LastUpdate:   now,
			History: []domain.PricePoint{
				{Date: day(2024, time.January, 1), Price: 1000},
				{Date: day(2024, time.January, 15), Price: 1100},
				{Date: day(2024, time.February, 1), Price: 1200},
			},
		},
		{
			Name:         "Product B",
			CurrentPrice: 850,
			LastUpdate:   now,
			History: []domain.PricePoint{
				{Date: day(2024, time.January, 1), Price: 900},
				{Date: day(2024, time.January, 15), Price: 875},
				{Date: day(2024, time.February, 1), Price: 850},
			},
		},
		{
			Name:         "Product C",
			CurrentPrice: 1500,
			LastUpdate:   now,
			History: []domain.PricePoint{
				{Date: day(2024, time.January, 1), Price: 1400},
				{Date: day(2024, time.January, 15), Price: 1450},
				{Date: day(2024, time.February, 1), Price: 1500},
			},
		},
	}
}
