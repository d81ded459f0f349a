package loans

import "errors"

var (
	// ErrLoanNotFound is returned when the loan request does not exist.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrAccessDenied is returned when the caller may not see the loan.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrLoanNotApproved is returned when pickup verification is attempted
	// on a loan that is not in the approved status.
	ErrLoanNotApproved = errors.New("loan is not approved")

	// ErrWrongCode is returned when the presented pickup code does not match.
	ErrWrongCode = errors.New("verification code does not match")

	// ErrInternal is returned for internal service failures.
	ErrInternal = errors.New("service: internal error")
)
