package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/price-monitor-api/internal/app/service"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/config"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/http"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/repository/csvstore"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/telemetry"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize OpenTelemetry
	telem, err := telemetry.NewTelemetry(&cfg.OTLP)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ensure telemetry is shutdown on exit
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	// Get tracer, meter, and logger instances
	tracer := telem.TracerProvider.Tracer("price-monitor-api")
	meter := telem.MeterProvider.Meter("price-monitor-api")
	logger := telem.Logger

	logger.Info("Starting Price Monitor API")

	// Initialize and seed the catalog; it is read-only from here on
	catalog := memory.NewCatalogRepository(tracer, logger)
	if err := catalog.Seed(ctx, memory.DefaultCatalog()); err != nil {
		logger.Error("Failed to seed catalog", "error", err.Error())
		os.Exit(1)
	}

	// Load sales data (falls back to sample data when the file is absent)
	sales := csvstore.NewSalesRepository(cfg.Sales.DataPath, tracer, logger)
	if err := sales.Load(ctx); err != nil {
		logger.Error("Failed to load sales data", "error", err.Error())
		os.Exit(1)
	}

	// Initialize services
	queryService := service.NewQueryService(catalog, tracer, meter, logger)
	comparisonService := service.NewComparisonService(tracer, meter, logger)
	salesService := service.NewSalesService(sales, tracer, meter, logger)

	// Initialize handlers
	priceHandler := handler.NewPriceHandler(queryService, comparisonService, logger)
	salesHandler := handler.NewSalesHandler(salesService, logger)

	// Initialize HTTP server
	server := http.NewServer(&cfg.Server, priceHandler, salesHandler, tracer, logger, telem)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", "error", err.Error())
			cancel()
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	}

	logger.Info("Server stopped")
}
