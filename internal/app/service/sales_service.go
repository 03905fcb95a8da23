package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrops-br/price-monitor-api/internal/app/dto"
	"github.com/mrops-br/price-monitor-api/internal/domain"
)

// SalesService aggregates sales records into per-product totals. The
// heavy lifting the dashboard used to do in a tabular frame is a plain
// group-by here; rendering stays out of scope.
type SalesService struct {
	sales     domain.SalesRepository
	tracer    trace.Tracer
	logger    *slog.Logger
	summaries metric.Int64Counter
}

// NewSalesService creates a new sales aggregation service.
func NewSalesService(
	sales domain.SalesRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *SalesService {
	summaries, _ := meter.Int64Counter(
		"sales.summaries.total",
		metric.WithDescription("Total number of sales summaries generated"),
	)

	return &SalesService{
		sales:     sales,
		tracer:    tracer,
		logger:    logger,
		summaries: summaries,
	}
}

// Summary groups all sales records by product, summing units and revenue
// and computing mean revenue per sale. Products appear in order of first
// occurrence. Each summary carries a unique report ID.
func (s *SalesService) Summary(ctx context.Context) (*dto.SalesSummaryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.Summary")
	defer span.End()

	records, err := s.sales.All(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read sales records")
		s.logger.ErrorContext(ctx, "Failed to read sales records",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	summary := aggregate(records)
	reportID := uuid.New().String()

	s.summaries.Add(ctx, 1)
	span.SetAttributes(
		attribute.String("sales.report_id", reportID),
		attribute.Int("sales.record_count", len(records)),
		attribute.Int("sales.product_count", len(summary.Products)),
	)

	s.logger.InfoContext(ctx, "Sales summary generated",
		slog.String("report_id", reportID),
		slog.Int("record_count", len(records)),
		slog.Int("product_count", len(summary.Products)),
	)

	span.SetStatus(codes.Ok, "Sales summary generated")
	return dto.ToSalesSummaryResponse(summary, reportID), nil
}

func aggregate(records []domain.SalesRecord) *domain.SalesSummary {
	index := make(map[string]int)
	summary := &domain.SalesSummary{}

	for _, record := range records {
		i, ok := index[record.Product]
		if !ok {
			i = len(summary.Products)
			index[record.Product] = i
			summary.Products = append(summary.Products, domain.ProductSales{Product: record.Product})
		}
		summary.Products[i].Units += record.Quantity
		summary.Products[i].Revenue += record.Revenue
		summary.Products[i].SaleCount++

		summary.TotalUnits += record.Quantity
		summary.TotalRevenue += record.Revenue
	}

	for i := range summary.Products {
		if summary.Products[i].SaleCount > 0 {
			summary.Products[i].MeanRevenue = summary.Products[i].Revenue / float64(summary.Products[i].SaleCount)
		}
	}

	return summary
}
