package get_user_loans

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mathrent/MathRent-LoanService/internal/api/handlers"
	"github.com/mathrent/MathRent-LoanService/internal/api/middleware"
	"github.com/mathrent/MathRent-LoanService/internal/domain"
	"github.com/mathrent/MathRent-LoanService/internal/service/loans"
	"github.com/mathrent/MathRent-LoanService/internal/service/loans/models"
)

const (
	msgInvalidUserID  = "ID pengguna tidak valid"
	msgInvalidStatus  = "status filter tidak valid"
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

// Handle GET /api/v1/users/{userId}/loans?status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/loans - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/loans - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	// Requesters may only list their own history; staff may list anyone's.
	if session.UserID != userID && session.Role != domain.RoleStaff {
		h.logger.Warn("GET /users/{id}/loans - Access denied: user_id=%d, target=%d", session.UserID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetUserLoansRequest{RequesterID: userID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetUserLoans(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, loans.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/loans - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{id}/loans - Failed to get loans: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/loans - Retrieved %d loan(s) for user_id=%d", len(result.Loans), userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
