package get_loan

import (
	"context"

	"github.com/mathrent/MathRent-LoanService/internal/service/loans/models"
)

type LoanService interface {
	GetByID(ctx context.Context, id int64, userID int64, role string) (*models.LoanResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
