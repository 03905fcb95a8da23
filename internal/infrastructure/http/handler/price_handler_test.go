package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/mrops-br/price-monitor-api/internal/app/service"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/repository/memory"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	tracer := sdktrace.NewTracerProvider().Tracer("test")
	meter := sdkmetric.NewMeterProvider().Meter("test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	catalog := memory.NewCatalogRepository(tracer, logger)
	require.NoError(t, catalog.Seed(context.Background(), memory.DefaultCatalog()))

	queries := service.NewQueryService(catalog, tracer, meter, logger)
	comparisons := service.NewComparisonService(tracer, meter, logger)
	prices := NewPriceHandler(queries, comparisons, logger)

	r := chi.NewRouter()
	r.Route("/api/prices", func(r chi.Router) {
		r.Get("/", prices.GetAllPrices)
		r.Get("/compare", prices.ComparePrices)
		r.Get("/{product}", prices.GetPrice)
		r.Get("/{product}/history", prices.GetPriceHistory)
	})
	return r
}

func doGet(t *testing.T, router http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestGetAllPrices(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doGet(t, router, "/api/prices/")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, true, body["success"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, data, 3)
	assert.Contains(t, data, "Product B")
}

func TestGetPrice(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doGet(t, router, "/api/prices/Product%20A")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Product A", body["product"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1200.0, data["current_price"])

	history, ok := data["history"].([]any)
	require.True(t, ok)
	assert.Len(t, history, 3)
}

func TestGetPrice_NotFoundListsAlternatives(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doGet(t, router, "/api/prices/unknown")
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, false, body["success"])
	assert.Equal(t, []any{"Product A", "Product B", "Product C"}, body["available_products"])
}

func TestGetPriceHistory(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doGet(t, router, "/api/prices/Product%20B/history")
	require.Equal(t, http.StatusOK, rec.Code)

	history, ok := body["history"].([]any)
	require.True(t, ok)
	require.Len(t, history, 3)

	first, ok := history[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", first["date"])
	assert.Equal(t, 900.0, first["price"])
}

func TestGetPriceHistory_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doGet(t, router, "/api/prices/unknown/history")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	// History misses carry no alternatives list
	assert.NotContains(t, body, "available_products")
}

func TestComparePrices(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doGet(t, router, "/api/prices/compare?products=Product%20A,Product%20B,Product%20C")
	require.Equal(t, http.StatusOK, rec.Code)

	cheapest, ok := body["cheapest"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Product B", cheapest["product"])
	assert.Equal(t, 850.0, cheapest["price"])

	mostExpensive, ok := body["most_expensive"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Product C", mostExpensive["product"])
	assert.Equal(t, 1500.0, mostExpensive["price"])

	comparison, ok := body["comparison"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, comparison, 3)
}

func TestComparePrices_DropsUnknownNames(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doGet(t, router, "/api/prices/compare?products=Product%20A,typo")
	require.Equal(t, http.StatusOK, rec.Code)

	comparison, ok := body["comparison"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, comparison, 1)
	assert.Contains(t, comparison, "Product A")
}

func TestComparePrices_NoValidInput(t *testing.T) {
	router := newTestRouter(t)

	for _, target := range []string{
		"/api/prices/compare",
		"/api/prices/compare?products=",
		"/api/prices/compare?products=nope,%20",
	} {
		rec, body := doGet(t, router, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, false, body["success"], target)
		assert.NotEmpty(t, body["example"], target)
	}
}
