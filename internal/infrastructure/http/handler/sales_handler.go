package handler

import (
	"log/slog"
	"net/http"

	"github.com/mrops-br/price-monitor-api/internal/app/service"
	"github.com/mrops-br/price-monitor-api/internal/infrastructure/http/response"
)

// SalesHandler handles HTTP requests for sales aggregates.
type SalesHandler struct {
	sales  *service.SalesService
	logger *slog.Logger
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(sales *service.SalesService, logger *slog.Logger) *SalesHandler {
	return &SalesHandler{
		sales:  sales,
		logger: logger,
	}
}

// GetSummary handles GET /api/sales/summary
func (h *SalesHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.sales.Summary(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to generate sales summary",
			slog.String("error", err.Error()),
		)
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, summary)
}
