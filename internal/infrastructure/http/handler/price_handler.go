package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mrops-br/price-monitor-api/internal/app/dto"
	"github.com/mrops-br/price-monitor-api/internal/app/service"
	"github.com/mrops-br/price-monitor-api/internal/domain"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/http/response"
)

const compareExample = "/api/prices/compare?products=Product A,Product B"

// PriceHandler handles HTTP requests for price queries and comparisons.
type PriceHandler struct {
	queries     *service.QueryService
	comparisons *service.ComparisonService
	logger      *slog.Logger
}

// NewPriceHandler creates a new price handler
func NewPriceHandler(
	queries *service.QueryService,
	comparisons *service.ComparisonService,
	logger *slog.Logger,
) *PriceHandler {
	return &PriceHandler{
		queries:     queries,
		comparisons: comparisons,
		logger:      logger,
	}
}

// productParam extracts the {product} path parameter. chi hands back the
// escaped segment when the request path was escaped, so names with
// spaces need unescaping before catalog lookup.
func productParam(r *http.Request) string {
	product := chi.URLParam(r, "product")
	if unescaped, err := url.PathUnescape(product); err == nil {
		return unescaped
	}
	return product
}

// GetAllPrices handles GET /api/prices
func (h *PriceHandler) GetAllPrices(w http.ResponseWriter, r *http.Request) {
	records, err := h.queries.AllPrices(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list prices",
			slog.String("error", err.Error()),
		)
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, &dto.AllPricesResponse{
		Success:   true,
		Data:      dto.ToProductDataMap(records),
		Timestamp: time.Now(),
	})
}

// GetPrice handles GET /api/prices/{product}
func (h *PriceHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	product := productParam(r)

	record, err := h.queries.PriceOf(r.Context(), product)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			response.JSON(w, http.StatusNotFound, &dto.NotFoundResponse{
				Success:           false,
				Error:             fmt.Sprintf("product not found: %s", product),
				AvailableProducts: h.queries.ProductNames(r.Context()),
			})
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to get price",
			slog.String("product", product),
			slog.String("error", err.Error()),
		)
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, &dto.ProductPriceResponse{
		Success:   true,
		Product:   record.Name,
		Data:      dto.ToProductData(record),
		Timestamp: time.Now(),
	})
}

// GetPriceHistory handles GET /api/prices/{product}/history
func (h *PriceHandler) GetPriceHistory(w http.ResponseWriter, r *http.Request) {
	product := productParam(r)

	history, err := h.queries.HistoryOf(r.Context(), product)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			response.Fail(w, http.StatusNotFound, fmt.Sprintf("product not found: %s", product))
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to get price history",
			slog.String("product", product),
			slog.String("error", err.Error()),
		)
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, &dto.PriceHistoryResponse{
		Success:   true,
		Product:   product,
		History:   dto.ToPricePointResponses(history),
		Timestamp: time.Now(),
	})
}

// ComparePrices handles GET /api/prices/compare?products=a,b,c
func (h *PriceHandler) ComparePrices(w http.ResponseWriter, r *http.Request) {
	names := strings.Split(r.URL.Query().Get("products"), ",")

	prices, err := h.queries.ResolveMany(r.Context(), names)
	if err != nil {
		if errors.Is(err, domain.ErrNoValidInput) {
			response.JSON(w, http.StatusBadRequest, &dto.UsageErrorResponse{
				Success: false,
				Error:   "no valid product names provided",
				Example: compareExample,
			})
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to resolve product names",
			slog.String("error", err.Error()),
		)
		response.InternalError(w)
		return
	}

	comparison, err := h.comparisons.Compare(r.Context(), prices)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to compare prices",
			slog.String("error", err.Error()),
		)
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, dto.ToComparisonResponse(comparison, prices))
}
