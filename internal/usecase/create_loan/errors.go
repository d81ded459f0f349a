package create_loan

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidInput is returned for structurally malformed request data.
	ErrInvalidInput = errors.New("create_loan: invalid input data")

	// ErrInternal is returned for internal use case failures.
	ErrInternal = errors.New("create_loan: internal error")
)

// ValidationError carries every per-detail validation issue found, so the
// requester sees all of them at once instead of fixing one per round trip.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "create_loan: validation failed: " + strings.Join(e.Issues, "; ")
}
