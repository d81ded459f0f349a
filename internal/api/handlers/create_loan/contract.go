package create_loan

import (
	"context"

	createLoan "github.com/mathrent/MathRent-LoanService/internal/usecase/create_loan"
)

type CreateLoanUseCase interface {
	Execute(ctx context.Context, req *createLoan.Request) (*createLoan.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
