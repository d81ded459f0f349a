package decide_loan

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mathrent/MathRent-LoanService/internal/api/handlers"
	"github.com/mathrent/MathRent-LoanService/internal/api/middleware"
	approveLoan "github.com/mathrent/MathRent-LoanService/internal/usecase/approve_loan"
)

const (
	msgInvalidLoanID      = "ID peminjaman tidak valid"
	msgInvalidRequestBody = "body permintaan tidak valid"
	msgMissingSession     = "sesi tidak ditemukan"
	msgNotFound           = "peminjaman tidak ditemukan"
	msgInvalidTransition  = "status peminjaman tidak dapat diubah"
	msgConflict           = "persetujuan ditolak karena konflik ketersediaan"
	msgCommitRace         = "data berubah saat diproses, silakan periksa ulang"
)

type Handler struct {
	useCase ApproveLoanUseCase
	logger  Logger
}

func NewHandler(useCase ApproveLoanUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/loans/{loanId}/decision
// Staff only; the route is guarded by the role middleware.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	loanID, err := strconv.ParseInt(vars["loanId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /loans/{id}/decision - Invalid loan ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLoanID)
		return
	}

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("PATCH /loans/{id}/decision - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req DecideLoanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /loans/{id}/decision - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &approveLoan.Request{
		LoanID:       loanID,
		Decision:     approveLoan.Decision(req.Decision),
		ApproverID:   session.UserID,
		ApproverName: session.Name,
		Note:         req.Note,
	})
	if err != nil {
		var conflictErr *approveLoan.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("PATCH /loans/{id}/decision - Blocked by %d conflict(s): loan_id=%d",
				len(conflictErr.Conflicts), loanID)
			handlers.RespondJSON(w, http.StatusConflict, ConflictListResponse{
				Error:     msgConflict,
				Conflicts: conflictErr.Conflicts,
			})

		case errors.Is(err, approveLoan.ErrLoanNotFound):
			h.logger.Warn("PATCH /loans/{id}/decision - Loan not found: loan_id=%d", loanID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveLoan.ErrInvalidTransition):
			h.logger.Warn("PATCH /loans/{id}/decision - Invalid transition: loan_id=%d, error=%v", loanID, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, approveLoan.ErrCommitRace):
			h.logger.Warn("PATCH /loans/{id}/decision - Commit race: loan_id=%d", loanID)
			handlers.RespondError(w, http.StatusConflict, msgCommitRace)

		case errors.Is(err, approveLoan.ErrInvalidInput):
			h.logger.Warn("PATCH /loans/{id}/decision - Invalid input: loan_id=%d, error=%v", loanID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /loans/{id}/decision - Failed to decide loan: loan_id=%d, error=%v", loanID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /loans/{id}/decision - Loan decided: loan_id=%d, status=%s, approver=%d",
		loanID, result.Status, session.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
