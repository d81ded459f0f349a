package approve_loan

import (
	"context"
	"time"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
)

// LoanRepository reads the candidate and the approved snapshot, and applies
// the decision.
type LoanRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.LoanRequest, error)
	ListApprovedDetailsByResource(ctx context.Context, kind domain.ResourceKind, resourceID int64, excludeLoanID int64) ([]*domain.LoanDetail, error)
	UpdateDecision(ctx context.Context, id int64, status domain.LoanStatus, approvedBy int64, approverName string, rejectionNote *string, verificationCodeHash *string) error
}

// ResourceRepository resolves referenced resources and applies the stock and
// slot mutations an approval commits.
type ResourceRepository interface {
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	GetAttendanceSlot(ctx context.Context, id int64) (*domain.AttendanceSlot, error)
	DecrementItemStock(ctx context.Context, id int64, quantity int) error
	RestoreItemStock(ctx context.Context, id int64, quantity int) error
	SetSlotStatus(ctx context.Context, id int64, status domain.ResourceStatus) error
}

// ScheduleCache invalidates cached room schedules a decision touched.
type ScheduleCache interface {
	Invalidate(ctx context.Context, roomID int64, date time.Time) error
}

// TransactionManager serializes the re-check and the commit.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface used by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
