package get_loans

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mathrent/MathRent-LoanService/internal/api/handlers"
	"github.com/mathrent/MathRent-LoanService/internal/domain"
	"github.com/mathrent/MathRent-LoanService/internal/service/loans"
	"github.com/mathrent/MathRent-LoanService/internal/service/loans/models"
)

const (
	msgInvalidFilter = "parameter filter tidak valid"
)

type Handler struct {
	service LoanService
	logger  Logger
}

func NewHandler(service LoanService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/loans?status=pending&requesterId=42&startDate=2025-10-01&endDate=2025-10-31
// Staff only; the route is guarded by the role middleware.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetLoansRequest{}
	query := r.URL.Query()

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if requesterStr := query.Get("requesterId"); requesterStr != "" {
		requesterID, err := strconv.ParseInt(requesterStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /loans - Invalid requester ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.RequesterID = &requesterID
	}
	if startStr := query.Get("startDate"); startStr != "" {
		start, err := time.Parse(domain.DateFormat, startStr)
		if err != nil {
			h.logger.Warn("GET /loans - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.StartDate = &start
	}
	if endStr := query.Get("endDate"); endStr != "" {
		end, err := time.Parse(domain.DateFormat, endStr)
		if err != nil {
			h.logger.Warn("GET /loans - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.EndDate = &end
	}

	result, err := h.service.GetLoans(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, loans.ErrInvalidInput):
			h.logger.Warn("GET /loans - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /loans - Failed to get loans: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /loans - Retrieved %d loan(s)", len(result.Loans))
	handlers.RespondJSON(w, http.StatusOK, result)
}
