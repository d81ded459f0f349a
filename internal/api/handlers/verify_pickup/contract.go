package verify_pickup

import (
	"context"

	"github.com/mathrent/MathRent-LoanService/internal/service/loans/models"
)

type LoanService interface {
	VerifyPickup(ctx context.Context, req *models.VerifyPickupRequest) (*models.VerifyPickupResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
