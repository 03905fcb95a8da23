package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/mrops-br/price-monitor-api/internal/app/service"
	"github.com/mrops-br/price-monitor-api/internal/domain"
)

type fixedSalesRepo struct {
	records []domain.SalesRecord
}

func (s *fixedSalesRepo) All(ctx context.Context) ([]domain.SalesRecord, error) {
	return s.records, nil
}

func TestGetSummary(t *testing.T) {
	tracer := sdktrace.NewTracerProvider().Tracer("test")
	meter := sdkmetric.NewMeterProvider().Meter("test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	day := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	repo := &fixedSalesRepo{records: []domain.SalesRecord{
		{Date: day, Product: "Product A", Quantity: 2, Revenue: 2400},
		{Date: day, Product: "Product B", Quantity: 1, Revenue: 850},
	}}

	sales := NewSalesHandler(service.NewSalesService(repo, tracer, meter, logger), logger)

	r := chi.NewRouter()
	r.Get("/api/sales/summary", sales.GetSummary)

	req := httptest.NewRequest(http.MethodGet, "/api/sales/summary", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["report_id"])
	assert.Equal(t, 3.0, body["total_units"])
	assert.Equal(t, 3250.0, body["total_revenue"])

	products, ok := body["products"].([]any)
	require.True(t, ok)
	require.Len(t, products, 2)

	first, ok := products[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Product A", first["product"])
	assert.Equal(t, 1200.0, first["mean_revenue"])
}
