package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrops-br/price-monitor-api/internal/domain"
)

// ComparisonService selects the cheapest and most expensive entries from
// a resolved price set.
type ComparisonService struct {
	tracer      trace.Tracer
	logger      *slog.Logger
	comparisons metric.Int64Counter
}

// NewComparisonService creates a new comparison service.
func NewComparisonService(tracer trace.Tracer, meter metric.Meter, logger *slog.Logger) *ComparisonService {
	comparisons, _ := meter.Int64Counter(
		"prices.comparisons.total",
		metric.WithDescription("Total number of price comparisons computed"),
	)

	return &ComparisonService{
		tracer:      tracer,
		logger:      logger,
		comparisons: comparisons,
	}
}

// Compare selects extrema over a non-empty price set. Ties break toward
// the entry inserted first: the comparisons are strict, so a later entry
// only displaces the current extreme by being strictly cheaper (or
// strictly more expensive). A single-entry set reports the same product
// on both sides.
func (s *ComparisonService) Compare(ctx context.Context, prices *domain.PriceSet) (*domain.Comparison, error) {
	ctx, span := s.tracer.Start(ctx, "ComparisonService.Compare")
	defer span.End()

	if prices == nil || prices.Len() == 0 {
		span.RecordError(domain.ErrNoValidInput)
		span.SetStatus(codes.Error, "Empty price set")
		return nil, domain.ErrNoValidInput
	}

	entries := prices.Entries()
	cheapest := entries[0]
	mostExpensive := entries[0]
	for _, entry := range entries[1:] {
		if entry.Price < cheapest.Price {
			cheapest = entry
		}
		if entry.Price > mostExpensive.Price {
			mostExpensive = entry
		}
	}

	s.comparisons.Add(ctx, 1)
	span.SetAttributes(
		attribute.Int("compared.count", prices.Len()),
		attribute.String("cheapest.product", cheapest.Name),
		attribute.String("most_expensive.product", mostExpensive.Name),
	)

	s.logger.InfoContext(ctx, "Prices compared",
		slog.Int("count", prices.Len()),
		slog.String("cheapest", cheapest.Name),
		slog.String("most_expensive", mostExpensive.Name),
	)

	span.SetStatus(codes.Ok, "Comparison computed")
	return &domain.Comparison{
		Cheapest:      cheapest,
		MostExpensive: mostExpensive,
	}, nil
}
