package create_loan

import (
	"time"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
)

// DetailRequest is one requested line. The payload fields that must be set
// depend on Kind; validation rejects any other shape.
type DetailRequest struct {
	Kind       domain.ResourceKind
	ResourceID int64
	Quantity   *int       // item only
	StartsAt   *time.Time // room only
	EndsAt     *time.Time // room only
}

// Request is a requester's draft loan.
type Request struct {
	RequesterID   int64
	RequesterName string
	RequesterNIM  string
	LoanDate      time.Time
	Notes         *string
	Details       []DetailRequest
}

// Response is the created pending request.
type Response struct {
	ID            int64
	RequesterID   int64
	RequesterName string
	RequesterNIM  string
	LoanDate      time.Time
	Notes         *string
	Status        string
	Details       []domain.LoanDetail
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
