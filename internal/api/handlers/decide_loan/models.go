package decide_loan

import (
	"time"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	approveLoan "github.com/mathrent/MathRent-LoanService/internal/usecase/approve_loan"
)

// DecideLoanRequest HTTP request model.
type DecideLoanRequest struct {
	Decision string  `json:"decision"` // "approve", "reject" or "return"
	Note     *string `json:"note,omitempty"`
}

// DecideLoanResponse HTTP response model. VerificationCode appears exactly
// once, in the approval response.
type DecideLoanResponse struct {
	ID               int64   `json:"id"`
	Status           string  `json:"status"`
	ApprovedBy       int64   `json:"approvedBy"`
	ApproverName     string  `json:"approverName"`
	RejectionNote    *string `json:"rejectionNote,omitempty"`
	VerificationCode *string `json:"verificationCode,omitempty"`
	DecidedAt        string  `json:"decidedAt"`
}

// ConflictListResponse reports every conflict that blocked an approval.
type ConflictListResponse struct {
	Error     string            `json:"error"`
	Conflicts []domain.Conflict `json:"conflicts"`
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *approveLoan.Response) *DecideLoanResponse {
	return &DecideLoanResponse{
		ID:               resp.ID,
		Status:           resp.Status,
		ApprovedBy:       resp.ApprovedBy,
		ApproverName:     resp.ApproverName,
		RejectionNote:    resp.RejectionNote,
		VerificationCode: resp.VerificationCode,
		DecidedAt:        resp.DecidedAt.Format(time.RFC3339),
	}
}
