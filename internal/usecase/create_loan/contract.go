package create_loan

import (
	"context"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
)

// LoanRepository persists the new request and exposes the approved details a
// room window is pre-checked against.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.LoanRequest) (*domain.LoanRequest, error)
	ListApprovedDetailsByResource(ctx context.Context, kind domain.ResourceKind, resourceID int64, excludeLoanID int64) ([]*domain.LoanDetail, error)
}

// ResourceRepository resolves the referenced resources.
type ResourceRepository interface {
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	GetAttendanceSlot(ctx context.Context, id int64) (*domain.AttendanceSlot, error)
}

// TransactionManager runs the validation and insert atomically.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface used by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
