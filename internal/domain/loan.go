package domain

import "time"

// LoanStatus represents the lifecycle state of a loan request.
type LoanStatus string

const (
	StatusPending  LoanStatus = "pending"
	StatusApproved LoanStatus = "approved"
	StatusRejected LoanStatus = "rejected"
	StatusReturned LoanStatus = "returned"
)

// allowedTransitions is the loan lifecycle DAG: a pending request is decided
// once, an approved one can only be returned, terminal states never move.
var allowedTransitions = map[LoanStatus][]LoanStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusReturned},
}

// CanTransitionTo reports whether the status may move to next.
func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s LoanStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// IsValid reports whether s is one of the known statuses.
func (s LoanStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusReturned:
		return true
	}
	return false
}

// LoanRequest is a student's request to borrow one or more resources.
// Requests are never deleted; only the status moves.
type LoanRequest struct {
	ID            int64
	RequesterID   int64
	RequesterName string
	RequesterNIM  string
	LoanDate      time.Time
	Notes         *string
	Status        LoanStatus

	ApprovedBy    *int64
	ApproverName  *string
	RejectionNote *string

	// VerificationCodeHash is the bcrypt hash of the pickup code issued on
	// approval. The plaintext code is returned once and never stored.
	VerificationCodeHash *string

	Details []LoanDetail

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending reports whether the request is awaiting a decision.
func (l *LoanRequest) IsPending() bool {
	return l.Status == StatusPending
}

// IsApproved reports whether the request is currently approved.
func (l *LoanRequest) IsApproved() bool {
	return l.Status == StatusApproved
}
