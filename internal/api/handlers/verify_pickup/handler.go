package verify_pickup

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mathrent/MathRent-LoanService/internal/api/handlers"
	"github.com/mathrent/MathRent-LoanService/internal/service/loans"
	"github.com/mathrent/MathRent-LoanService/internal/service/loans/models"
)

const (
	msgInvalidLoanID      = "ID peminjaman tidak valid"
	msgInvalidRequestBody = "body permintaan tidak valid"
	msgNotFound           = "peminjaman tidak ditemukan"
	msgNotApproved        = "peminjaman belum disetujui"
	msgWrongCode          = "kode verifikasi salah"
)

// VerifyPickupRequest HTTP request model.
type VerifyPickupRequest struct {
	Code string `json:"code"`
}

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

// Handle POST /api/v1/loans/{loanId}/verify
// Staff only; the route is guarded by the role middleware.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	loanID, err := strconv.ParseInt(vars["loanId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /loans/{id}/verify - Invalid loan ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLoanID)
		return
	}

	var req VerifyPickupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /loans/{id}/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.VerifyPickup(r.Context(), &models.VerifyPickupRequest{
		LoanID: loanID,
		Code:   req.Code,
	})
	if err != nil {
		switch {
		case errors.Is(err, loans.ErrLoanNotFound):
			h.logger.Warn("POST /loans/{id}/verify - Loan not found: loan_id=%d", loanID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, loans.ErrLoanNotApproved):
			h.logger.Warn("POST /loans/{id}/verify - Loan not approved: loan_id=%d", loanID)
			handlers.RespondError(w, http.StatusConflict, msgNotApproved)

		case errors.Is(err, loans.ErrWrongCode):
			h.logger.Warn("POST /loans/{id}/verify - Wrong code: loan_id=%d", loanID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgWrongCode)

		case errors.Is(err, loans.ErrInvalidInput):
			h.logger.Warn("POST /loans/{id}/verify - Invalid input: loan_id=%d, error=%v", loanID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /loans/{id}/verify - Failed to verify pickup: loan_id=%d, error=%v", loanID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /loans/{id}/verify - Pickup verified: loan_id=%d", loanID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
