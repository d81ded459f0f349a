package create_loan

import (
	"errors"
	"net/http"

	"github.com/mathrent/MathRent-LoanService/internal/api/handlers"
	"github.com/mathrent/MathRent-LoanService/internal/api/middleware"
	createLoan "github.com/mathrent/MathRent-LoanService/internal/usecase/create_loan"
)

const (
	msgInvalidRequestBody = "body permintaan tidak valid"
	msgInvalidDate        = "format tanggal tidak valid, gunakan YYYY-MM-DD"
	msgMissingSession     = "sesi tidak ditemukan"
	msgValidationFailed   = "pengajuan peminjaman tidak valid"
)

type Handler struct {
	useCase CreateLoanUseCase
	logger  Logger
}

func NewHandler(useCase CreateLoanUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/loans
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("POST /loans - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req CreateLoanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /loans - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(session)
	if err != nil {
		h.logger.Warn("POST /loans - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var validationErr *createLoan.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /loans - Validation failed: requester=%d, issues=%d",
				session.UserID, len(validationErr.Issues))
			handlers.RespondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:  msgValidationFailed,
				Issues: validationErr.Issues,
			})

		case errors.Is(err, createLoan.ErrInvalidInput):
			h.logger.Warn("POST /loans - Invalid input: requester=%d, error=%v", session.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /loans - Failed to create loan: requester=%d, error=%v", session.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /loans - Loan created successfully: loan_id=%d, requester=%d", result.ID, session.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
