package get_loan

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mathrent/MathRent-LoanService/internal/api/handlers"
	"github.com/mathrent/MathRent-LoanService/internal/api/middleware"
	"github.com/mathrent/MathRent-LoanService/internal/service/loans"
)

const (
	msgInvalidLoanID  = "ID peminjaman tidak valid"
	msgNotFound       = "peminjaman tidak ditemukan"
	msgMissingSession = "sesi tidak ditemukan"
	msgForbidden      = "akses ditolak"
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

// Handle GET /api/v1/loans/{loanId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	loanID, err := strconv.ParseInt(vars["loanId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /loans/{id} - Invalid loan ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLoanID)
		return
	}

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /loans/{id} - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	loan, err := h.service.GetByID(r.Context(), loanID, session.UserID, session.Role)
	if err != nil {
		switch {
		case errors.Is(err, loans.ErrLoanNotFound):
			h.logger.Warn("GET /loans/{id} - Loan not found: loan_id=%d", loanID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, loans.ErrAccessDenied):
			h.logger.Warn("GET /loans/{id} - Access denied: loan_id=%d, user_id=%d", loanID, session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /loans/{id} - Failed to get loan: loan_id=%d, error=%v", loanID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /loans/{id} - Loan retrieved successfully: loan_id=%d, user_id=%d", loanID, session.UserID)
	handlers.RespondJSON(w, http.StatusOK, loan)
}
