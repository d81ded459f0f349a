package approve_loan

import (
	"errors"
	"fmt"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
)

var (
	// ErrLoanNotFound is returned when the loan request does not exist.
	ErrLoanNotFound = errors.New("approve_loan: loan not found")

	// ErrInvalidTransition is returned when the requested decision is not a
	// legal move from the loan's current status.
	ErrInvalidTransition = errors.New("approve_loan: invalid status transition")

	// ErrCommitRace is returned when the atomic commit guard finds the
	// arbitration snapshot stale (stock consumed by a concurrent approval).
	// The caller should re-fetch and re-arbitrate.
	ErrCommitRace = errors.New("approve_loan: commit race detected, re-check required")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("approve_loan: invalid input data")

	// ErrInternal is returned for internal use case failures.
	ErrInternal = errors.New("approve_loan: internal error")
)

// ConflictError blocks an approval and carries every conflict found, so the
// approver sees the complete list, never a bare "cannot approve".
type ConflictError struct {
	Conflicts []domain.Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("approve_loan: approval blocked by %d conflict(s)", len(e.Conflicts))
}
