package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrops-br/price-monitor-api/internal/infrastructure/config"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/http/middleware"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/http/response"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/telemetry"
)

const apiVersion = "1.0.0"

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	config    *config.ServerConfig
	prices    *handler.PriceHandler
	sales     *handler.SalesHandler
	tracer    trace.Tracer
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.ServerConfig,
	prices *handler.PriceHandler,
	sales *handler.SalesHandler,
	tracer trace.Tracer,
	logger *slog.Logger,
	telem *telemetry.Telemetry,
) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		prices:    prices,
		sales:     sales,
		tracer:    tracer,
		logger:    logger,
		telemetry: telem,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures the middleware chain
func (s *Server) setupMiddleware() {
	// Structured JSON logging middleware (replaces chimiddleware.Logger)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.RequestID)

	// Add HTTP route to context so all logs include it automatically
	s.router.Use(middleware.HTTPRouteContext())

	meter := s.telemetry.MeterProvider.Meter("price-monitor-api")
	s.router.Use(middleware.ActiveRequestsMiddleware(meter))
	s.router.Use(middleware.DurationMillisecondsMiddleware(meter))
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Get("/", s.index)
	s.router.Get("/api/health", s.health)

	s.router.Route("/api/prices", func(r chi.Router) {
		r.Get("/", s.prices.GetAllPrices)
		r.Get("/compare", s.prices.ComparePrices)
		r.Get("/{product}", s.prices.GetPrice)
		r.Get("/{product}/history", s.prices.GetPriceHistory)
	})

	s.router.Get("/api/sales/summary", s.sales.GetSummary)

	// Prometheus metrics endpoint - exposes OpenTelemetry metrics
	s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// index handles GET / with a static API description.
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"message": "Price Monitor API",
		"version": apiVersion,
		"endpoints": map[string]string{
			"/api/prices":                     "all product prices",
			"/api/prices/{product}":           "one product price",
			"/api/prices/{product}/history":   "product price history",
			"/api/prices/compare?products=..": "compare product prices",
			"/api/sales/summary":              "sales aggregates",
			"/api/health":                     "health check",
		},
		"example": "GET /api/prices/Product A",
	})
}

// health handles GET /api/health.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)
	s.logger.Info("Starting HTTP server",
		slog.String("address", addr),
	)

	// Wrap the entire router with otelhttp for automatic HTTP metrics and
	// tracing (http.server.request.duration and friends).
	handler := otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithMeterProvider(s.telemetry.MeterProvider),
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			// Metric attributes carry the route pattern, not the raw path
			routePattern := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					routePattern = pattern
				}
			}
			return []attribute.KeyValue{
				attribute.String("http.route", routePattern),
			}
		}),
	)

	return http.ListenAndServe(addr, handler)
}

// Router exposes the configured mux, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
