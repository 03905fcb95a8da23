package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrops-br/price-monitor-api/internal/domain"
)

type stubSalesRepo struct {
	records []domain.SalesRecord
}

func (s *stubSalesRepo) All(ctx context.Context) ([]domain.SalesRecord, error) {
	return s.records, nil
}

func TestSummary_GroupsByProduct(t *testing.T) {
	tracer, meter, logger := testDeps(t)
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	repo := &stubSalesRepo{records: []domain.SalesRecord{
		{Date: day, Product: "Product B", Quantity: 2, Revenue: 1700},
		{Date: day, Product: "Product A", Quantity: 1, Revenue: 1200},
		{Date: day.AddDate(0, 0, 1), Product: "Product B", Quantity: 4, Revenue: 3400},
	}}

	svc := NewSalesService(repo, tracer, meter, logger)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Success)
	assert.NotEmpty(t, summary.ReportID)
	assert.Equal(t, int64(7), summary.TotalUnits)
	assert.Equal(t, 6300.0, summary.TotalRevenue)

	require.Len(t, summary.Products, 2)
	// First occurrence order, not alphabetical
	assert.Equal(t, "Product B", summary.Products[0].Product)
	assert.Equal(t, int64(6), summary.Products[0].Units)
	assert.Equal(t, 5100.0, summary.Products[0].Revenue)
	assert.Equal(t, int64(2), summary.Products[0].SaleCount)
	assert.Equal(t, 2550.0, summary.Products[0].MeanRevenue)

	assert.Equal(t, "Product A", summary.Products[1].Product)
	assert.Equal(t, 1200.0, summary.Products[1].MeanRevenue)
}

func TestSummary_EmptyData(t *testing.T) {
	tracer, meter, logger := testDeps(t)
	svc := NewSalesService(&stubSalesRepo{}, tracer, meter, logger)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Empty(t, summary.Products)
	assert.Zero(t, summary.TotalUnits)
	assert.Zero(t, summary.TotalRevenue)
}

func TestSummary_UniqueReportIDs(t *testing.T) {
	tracer, meter, logger := testDeps(t)
	svc := NewSalesService(&stubSalesRepo{}, tracer, meter, logger)

	first, err := svc.Summary(context.Background())
	require.NoError(t, err)
	second, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.ReportID, second.ReportID)
}
