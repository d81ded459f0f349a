package loan

import "errors"

var (
	// ErrLoanNotFound is returned when the loan request does not exist.
	ErrLoanNotFound = errors.New("loan.repository: loan not found")

	// ErrBuildQuery is returned when the SQL query cannot be built.
	ErrBuildQuery = errors.New("loan.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query cannot be executed.
	ErrExecQuery = errors.New("loan.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("loan.repository: failed to scan row")
)
