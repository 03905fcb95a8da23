package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrops-br/price-monitor-api/internal/domain"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/repository/memory"
)

func testDeps(t *testing.T) (trace.Tracer, metric.Meter, *slog.Logger) {
	t.Helper()
	tracer := sdktrace.NewTracerProvider().Tracer("test")
	meter := sdkmetric.NewMeterProvider().Meter("test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return tracer, meter, logger
}

func newQueryService(t *testing.T) *QueryService {
	t.Helper()
	tracer, meter, logger := testDeps(t)

	catalog := memory.NewCatalogRepository(tracer, logger)
	require.NoError(t, catalog.Seed(context.Background(), memory.DefaultCatalog()))

	return NewQueryService(catalog, tracer, meter, logger)
}

func TestPriceOf_KnownProduct(t *testing.T) {
	svc := newQueryService(t)

	record, err := svc.PriceOf(context.Background(), "Product A")
	require.NoError(t, err)
	assert.Equal(t, 1200.0, record.CurrentPrice)
	assert.NotEmpty(t, record.History)
}

func TestPriceOf_UnknownProduct(t *testing.T) {
	svc := newQueryService(t)

	_, err := svc.PriceOf(context.Background(), "unknown")
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	// The alternatives reported alongside the miss are exactly the catalog
	assert.Equal(t, []string{"Product A", "Product B", "Product C"},
		svc.ProductNames(context.Background()))
}

func TestHistoryOf(t *testing.T) {
	svc := newQueryService(t)

	history, err := svc.HistoryOf(context.Background(), "Product C")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 1400.0, history[0].Price)
	assert.Equal(t, 1500.0, history[2].Price)

	_, err = svc.HistoryOf(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestResolveMany(t *testing.T) {
	svc := newQueryService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     []string
		wantNames []string
		wantErr   error
	}{
		{
			name:    "empty input",
			input:   []string{},
			wantErr: domain.ErrNoValidInput,
		},
		{
			name:    "whitespace only",
			input:   []string{" ", ""},
			wantErr: domain.ErrNoValidInput,
		},
		{
			name:    "all unknown",
			input:   []string{"Product X", "Product Y"},
			wantErr: domain.ErrNoValidInput,
		},
		{
			name:      "duplicates collapse",
			input:     []string{"Product A", "Product A", "Product B"},
			wantNames: []string{"Product A", "Product B"},
		},
		{
			name:      "unknown names dropped silently",
			input:     []string{"Product A", "typo", "Product C"},
			wantNames: []string{"Product A", "Product C"},
		},
		{
			name:      "whitespace trimmed",
			input:     []string{"  Product B  "},
			wantNames: []string{"Product B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prices, err := svc.ResolveMany(ctx, tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, len(tt.wantNames), prices.Len())

			var got []string
			for _, entry := range prices.Entries() {
				got = append(got, entry.Name)
			}
			assert.Equal(t, tt.wantNames, got)
		})
	}
}

func TestResolveMany_PricesMatchCatalog(t *testing.T) {
	svc := newQueryService(t)

	prices, err := svc.ResolveMany(context.Background(), []string{"Product B", "Product A"})
	require.NoError(t, err)

	entries := prices.Entries()
	require.Len(t, entries, 2)
	// Input order, not catalog order
	assert.Equal(t, domain.PricedProduct{Name: "Product B", Price: 850}, entries[0])
	assert.Equal(t, domain.PricedProduct{Name: "Product A", Price: 1200}, entries[1])
}
