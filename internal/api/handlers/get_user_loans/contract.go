package get_user_loans

import (
	"context"

	"github.com/mathrent/MathRent-LoanService/internal/service/loans/models"
)

type LoanService interface {
	GetUserLoans(ctx context.Context, req *models.GetUserLoansRequest) (*models.LoanListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
