package get_loans

import (
	"context"

	"github.com/mathrent/MathRent-LoanService/internal/service/loans/models"
)

type LoanService interface {
	GetLoans(ctx context.Context, req *models.GetLoansRequest) (*models.LoanListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
