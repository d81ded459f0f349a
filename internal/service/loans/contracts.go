package loans

import (
	"context"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
)

// LoanRepository is the repository interface for loan requests.
type LoanRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.LoanRequest, error)
	GetByRequester(ctx context.Context, requesterID int64, status *domain.LoanStatus) ([]*domain.LoanRequest, error)
	GetWithFilter(ctx context.Context, filter domain.LoanFilter) ([]*domain.LoanRequest, error)
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
