package approve_loan

import (
	"time"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
)

// Decision is the action a staff member takes on a loan request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionReturn  Decision = "return"
)

// IsValid reports whether d is one of the known decisions.
func (d Decision) IsValid() bool {
	switch d {
	case DecisionApprove, DecisionReject, DecisionReturn:
		return true
	}
	return false
}

// targetStatus maps the decision to the status it moves the loan into.
func (d Decision) targetStatus() domain.LoanStatus {
	switch d {
	case DecisionApprove:
		return domain.StatusApproved
	case DecisionReject:
		return domain.StatusRejected
	case DecisionReturn:
		return domain.StatusReturned
	default:
		return ""
	}
}

// Request applies a decision to a loan request.
type Request struct {
	LoanID       int64
	Decision     Decision
	ApproverID   int64
	ApproverName string
	Note         *string // rejection reason, required context for reject
}

// Response is the decided loan. VerificationCode is set only on approval and
// only in this response; storage keeps a hash.
type Response struct {
	ID               int64
	Status           string
	ApprovedBy       int64
	ApproverName     string
	RejectionNote    *string
	VerificationCode *string
	DecidedAt        time.Time
}
