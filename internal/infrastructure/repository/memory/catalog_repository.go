package memory

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrops-br/price-monitor-api/internal/domain"
)

// CatalogRepository is an in-memory implementation of
// domain.CatalogRepository. Records are keyed by product name and an
// insertion-order index is kept beside the map so GetAll and Names are
// deterministic; Go maps alone would not give that.
type CatalogRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.ProductRecord
	order   []string
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewCatalogRepository creates an empty in-memory catalog.
func NewCatalogRepository(tracer trace.Tracer, logger *slog.Logger) *CatalogRepository {
	return &CatalogRepository{
		records: make(map[string]*domain.ProductRecord),
		tracer:  tracer,
		logger:  logger,
	}
}

// Seed populates the catalog at process start. It is the only write path;
// after Seed the catalog is read-only. Duplicate names and invalid
// records are rejected, leaving the catalog untouched.
func (r *CatalogRepository) Seed(ctx context.Context, records []*domain.ProductRecord) error {
	ctx, span := r.tracer.Start(ctx, "CatalogRepository.Seed")
	defer span.End()

	span.SetAttributes(attribute.Int("catalog.seed_size", len(records)))

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if err := record.Validate(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Invalid seed record")
			return err
		}
		if _, dup := seen[record.Name]; dup {
			span.RecordError(domain.ErrDuplicateProduct)
			span.SetStatus(codes.Error, "Duplicate seed record")
			return domain.ErrDuplicateProduct
		}
		if _, dup := r.records[record.Name]; dup {
			span.RecordError(domain.ErrDuplicateProduct)
			span.SetStatus(codes.Error, "Duplicate seed record")
			return domain.ErrDuplicateProduct
		}
		seen[record.Name] = struct{}{}
	}

	for _, record := range records {
		r.records[record.Name] = record
		r.order = append(r.order, record.Name)
	}

	r.logger.InfoContext(ctx, "Catalog seeded",
		slog.Int("count", len(records)),
	)

	span.SetStatus(codes.Ok, "Catalog seeded")
	return nil
}

// Get retrieves a record by product name.
func (r *CatalogRepository) Get(ctx context.Context, name string) (*domain.ProductRecord, error) {
	ctx, span := r.tracer.Start(ctx, "CatalogRepository.Get")
	defer span.End()

	span.SetAttributes(attribute.String("product.name", name))

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[name]
	if !exists {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		r.logger.WarnContext(ctx, "Product not found in catalog",
			slog.String("product_name", name),
		)
		return nil, domain.ErrProductNotFound
	}

	r.logger.DebugContext(ctx, "Product found in catalog",
		slog.String("product_name", name),
	)

	span.SetStatus(codes.Ok, "Product found")
	return record, nil
}

// GetAll retrieves every record in insertion order.
func (r *CatalogRepository) GetAll(ctx context.Context) ([]*domain.ProductRecord, error) {
	ctx, span := r.tracer.Start(ctx, "CatalogRepository.GetAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*domain.ProductRecord, 0, len(r.order))
	for _, name := range r.order {
		records = append(records, r.records[name])
	}

	span.SetAttributes(attribute.Int("product.count", len(records)))

	r.logger.DebugContext(ctx, "Catalog records retrieved",
		slog.Int("count", len(records)),
	)

	span.SetStatus(codes.Ok, "Catalog records retrieved")
	return records, nil
}

// Contains reports whether a product name exists in the catalog.
func (r *CatalogRepository) Contains(ctx context.Context, name string) bool {
	_, span := r.tracer.Start(ctx, "CatalogRepository.Contains")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.records[name]
	span.SetAttributes(
		attribute.String("product.name", name),
		attribute.Bool("product.exists", exists),
	)
	return exists
}

// Names returns every product name in insertion order.
func (r *CatalogRepository) Names(ctx context.Context) []string {
	_, span := r.tracer.Start(ctx, "CatalogRepository.Names")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
