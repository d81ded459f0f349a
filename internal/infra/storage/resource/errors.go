package resource

import "errors"

var (
	// ErrResourceNotFound is returned when the referenced resource no longer exists.
	ErrResourceNotFound = errors.New("resource.repository: resource not found")

	// ErrInsufficientStock is returned when a conditional stock decrement finds
	// less stock than requested. This is the commit-time race guard: the
	// arbitration snapshot said the stock was there, another approval consumed
	// it first.
	ErrInsufficientStock = errors.New("resource.repository: insufficient stock")

	// ErrBuildQuery is returned when the SQL query cannot be built.
	ErrBuildQuery = errors.New("resource.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query cannot be executed.
	ErrExecQuery = errors.New("resource.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("resource.repository: failed to scan row")
)
