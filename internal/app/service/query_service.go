package service

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrops-br/price-monitor-api/internal/domain"
)

// QueryService resolves product names against the catalog.
type QueryService struct {
	catalog       domain.CatalogRepository
	tracer        trace.Tracer
	logger        *slog.Logger
	priceLookups  metric.Int64Counter
	lookupMisses  metric.Int64Counter
	namesResolved metric.Int64Counter
}

// NewQueryService creates a new query service.
func NewQueryService(
	catalog domain.CatalogRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *QueryService {
	priceLookups, _ := meter.Int64Counter(
		"prices.lookups.total",
		metric.WithDescription("Total number of price lookups"),
	)

	lookupMisses, _ := meter.Int64Counter(
		"prices.lookups.misses",
		metric.WithDescription("Price lookups that hit an unknown product name"),
	)

	namesResolved, _ := meter.Int64Counter(
		"prices.names.resolved",
		metric.WithDescription("Names resolved to catalog entries during comparison input parsing"),
	)

	return &QueryService{
		catalog:       catalog,
		tracer:        tracer,
		logger:        logger,
		priceLookups:  priceLookups,
		lookupMisses:  lookupMisses,
		namesResolved: namesResolved,
	}
}

// AllPrices returns every catalog record in insertion order.
func (s *QueryService) AllPrices(ctx context.Context) ([]*domain.ProductRecord, error) {
	ctx, span := s.tracer.Start(ctx, "QueryService.AllPrices")
	defer span.End()

	records, err := s.catalog.GetAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read catalog")
		s.logger.ErrorContext(ctx, "Failed to read catalog",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(records)))
	span.SetStatus(codes.Ok, "Catalog read")
	return records, nil
}

// PriceOf returns the full record for a product name, or
// domain.ErrProductNotFound.
func (s *QueryService) PriceOf(ctx context.Context, name string) (*domain.ProductRecord, error) {
	ctx, span := s.tracer.Start(ctx, "QueryService.PriceOf")
	defer span.End()

	span.SetAttributes(attribute.String("product.name", name))
	s.priceLookups.Add(ctx, 1)

	record, err := s.catalog.Get(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.lookupMisses.Add(ctx, 1)
		s.logger.WarnContext(ctx, "Price lookup missed",
			slog.String("product_name", name),
		)
		return nil, err
	}

	span.SetStatus(codes.Ok, "Price resolved")
	return record, nil
}

// HistoryOf returns the price history for a product name, or
// domain.ErrProductNotFound.
func (s *QueryService) HistoryOf(ctx context.Context, name string) ([]domain.PricePoint, error) {
	ctx, span := s.tracer.Start(ctx, "QueryService.HistoryOf")
	defer span.End()

	span.SetAttributes(attribute.String("product.name", name))

	record, err := s.catalog.Get(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.lookupMisses.Add(ctx, 1)
		return nil, err
	}

	span.SetAttributes(attribute.Int("history.length", len(record.History)))
	span.SetStatus(codes.Ok, "History resolved")
	return record.History, nil
}

// ResolveMany maps raw name strings to current prices. Names are trimmed
// of whitespace; empty strings and names absent from the catalog are
// silently dropped, and duplicates collapse to the first occurrence.
// Returns domain.ErrNoValidInput when nothing resolves.
func (s *QueryService) ResolveMany(ctx context.Context, names []string) (*domain.PriceSet, error) {
	ctx, span := s.tracer.Start(ctx, "QueryService.ResolveMany")
	defer span.End()

	span.SetAttributes(attribute.Int("input.count", len(names)))

	prices := domain.NewPriceSet()
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		record, err := s.catalog.Get(ctx, name)
		if err != nil {
			// Unknown names are dropped, not reported.
			continue
		}
		prices.Add(record.Name, record.CurrentPrice)
	}

	if prices.Len() == 0 {
		span.RecordError(domain.ErrNoValidInput)
		span.SetStatus(codes.Error, "No names resolved")
		s.logger.WarnContext(ctx, "No valid product names resolved",
			slog.Int("input_count", len(names)),
		)
		return nil, domain.ErrNoValidInput
	}

	s.namesResolved.Add(ctx, int64(prices.Len()))
	span.SetAttributes(attribute.Int("resolved.count", prices.Len()))

	s.logger.InfoContext(ctx, "Product names resolved",
		slog.Int("input_count", len(names)),
		slog.Int("resolved_count", prices.Len()),
	)

	span.SetStatus(codes.Ok, "Names resolved")
	return prices, nil
}

// ProductNames returns every known product name in insertion order. Used
// to report alternatives on a not-found outcome.
func (s *QueryService) ProductNames(ctx context.Context) []string {
	ctx, span := s.tracer.Start(ctx, "QueryService.ProductNames")
	defer span.End()

	names := s.catalog.Names(ctx)
	span.SetAttributes(attribute.Int("product.count", len(names)))
	return names
}
