package decide_loan

import (
	"context"

	approveLoan "github.com/mathrent/MathRent-LoanService/internal/usecase/approve_loan"
)

type ApproveLoanUseCase interface {
	Execute(ctx context.Context, req *approveLoan.Request) (*approveLoan.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
