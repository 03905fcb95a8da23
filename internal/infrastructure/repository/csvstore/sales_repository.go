package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrops-br/price-monitor-api/internal/domain"
)

const dateLayout = "2006-01-02"

// SalesRepository loads sales records from a CSV file into memory and
// serves them read-only. Expected columns: date, product, quantity,
// revenue (header row required). When the file is absent a deterministic
// sample data set is generated instead, so the service stays usable in
// demo deployments without a data drop.
type SalesRepository struct {
	mu      sync.RWMutex
	records []domain.SalesRecord
	path    string
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewSalesRepository creates a sales store bound to the given CSV path.
// Call Load before serving.
func NewSalesRepository(path string, tracer trace.Tracer, logger *slog.Logger) *SalesRepository {
	return &SalesRepository{
		path:   path,
		tracer: tracer,
		logger: logger,
	}
}

// Load reads the CSV file, replacing any previously loaded records. A
// missing file is not an error: the sample data set is used instead.
func (r *SalesRepository) Load(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "SalesRepository.Load")
	defer span.End()

	span.SetAttributes(attribute.String("sales.path", r.path))

	file, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.WarnContext(ctx, "Sales data file missing, using sample data",
				slog.String("path", r.path),
			)
			r.replace(sampleSales())
			span.SetStatus(codes.Ok, "Sample data loaded")
			return nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to open sales data")
		return fmt.Errorf("open sales data: %w", err)
	}
	defer file.Close()

	records, err := parseSales(file)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to parse sales data")
		return err
	}

	r.replace(records)

	r.logger.InfoContext(ctx, "Sales data loaded",
		slog.String("path", r.path),
		slog.Int("count", len(records)),
	)

	span.SetAttributes(attribute.Int("sales.count", len(records)))
	span.SetStatus(codes.Ok, "Sales data loaded")
	return nil
}

// All returns every loaded record in file order.
func (r *SalesRepository) All(ctx context.Context) ([]domain.SalesRecord, error) {
	_, span := r.tracer.Start(ctx, "SalesRepository.All")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]domain.SalesRecord, len(r.records))
	copy(records, r.records)

	span.SetAttributes(attribute.Int("sales.count", len(records)))
	return records, nil
}

func (r *SalesRepository) replace(records []domain.SalesRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = records
}

func parseSales(reader io.Reader) ([]domain.SalesRecord, error) {
	cr := csv.NewReader(reader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read sales header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "product", "quantity", "revenue"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("sales data missing column %q", required)
		}
	}

	var records []domain.SalesRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read sales row: %w", err)
		}

		date, err := time.Parse(dateLayout, strings.TrimSpace(row[cols["date"]]))
		if err != nil {
			return nil, fmt.Errorf("sales line %d: bad date: %w", line, err)
		}
		quantity, err := strconv.ParseInt(strings.TrimSpace(row[cols["quantity"]]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sales line %d: bad quantity: %w", line, err)
		}
		revenue, err := strconv.ParseFloat(strings.TrimSpace(row[cols["revenue"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("sales line %d: bad revenue: %w", line, err)
		}

		records = append(records, domain.SalesRecord{
			Date:     date,
			Product:  strings.TrimSpace(row[cols["product"]]),
			Quantity: quantity,
			Revenue:  revenue,
		})
	}

	return records, nil
}

// sampleSales builds a small deterministic data set covering the catalog
// products over the first week of 2024.
func sampleSales() []domain.SalesRecord {
	products := []string{"Product A", "Product B", "Product C"}

	var records []domain.SalesRecord
	for d := 0; d < 7; d++ {
		date := time.Date(2024, time.January, 1+d, 0, 0, 0, 0, time.UTC)
		for i, product := range products {
			// Simple arithmetic pattern, stable across runs.
			quantity := int64(10 + 3*d + 5*i)
			revenue := float64(quantity) * float64(100*(i+1))
			records = append(records, domain.SalesRecord{
				Date:     date,
				Product:  product,
				Quantity: quantity,
				Revenue:  revenue,
			})
		}
	}
	return records
}
