package create_loan

import (
	"fmt"
	"time"

	"github.com/mathrent/MathRent-LoanService/internal/api/middleware"
	"github.com/mathrent/MathRent-LoanService/internal/domain"
	createLoan "github.com/mathrent/MathRent-LoanService/internal/usecase/create_loan"
)

// DetailRequest is one requested line of the HTTP body.
type DetailRequest struct {
	Kind       string  `json:"kind"`
	ResourceID int64   `json:"resourceId"`
	Quantity   *int    `json:"quantity,omitempty"`
	StartsAt   *string `json:"startsAt,omitempty"` // ISO 8601
	EndsAt     *string `json:"endsAt,omitempty"`   // ISO 8601
}

// CreateLoanRequest HTTP request model. Requester identity comes from the
// session, never from the body.
type CreateLoanRequest struct {
	LoanDate string          `json:"loanDate"` // "2025-10-15"
	Notes    *string         `json:"notes,omitempty"`
	Details  []DetailRequest `json:"details"`
}

// DetailResponse is one stored line of the created request.
type DetailResponse struct {
	ID         int64   `json:"id"`
	Kind       string  `json:"kind"`
	ResourceID int64   `json:"resourceId"`
	Quantity   *int    `json:"quantity,omitempty"`
	StartsAt   *string `json:"startsAt,omitempty"`
	EndsAt     *string `json:"endsAt,omitempty"`
}

// LoanResponse HTTP response model.
type LoanResponse struct {
	ID            int64            `json:"id"`
	RequesterID   int64            `json:"requesterId"`
	RequesterName string           `json:"requesterName"`
	RequesterNIM  string           `json:"requesterNim"`
	LoanDate      string           `json:"loanDate"`
	Notes         *string          `json:"notes,omitempty"`
	Status        string           `json:"status"`
	Details       []DetailResponse `json:"details"`
	CreatedAt     string           `json:"createdAt"`
	UpdatedAt     string           `json:"updatedAt"`
}

// ValidationErrorResponse lists every issue found in the draft.
type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Issues []string `json:"issues"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *CreateLoanRequest) ToUseCaseRequest(session *middleware.Session) (*createLoan.Request, error) {
	loanDate, err := time.Parse(domain.DateFormat, r.LoanDate)
	if err != nil {
		return nil, fmt.Errorf("parse loan date: %w", err)
	}

	details := make([]createLoan.DetailRequest, 0, len(r.Details))
	for _, d := range r.Details {
		detail := createLoan.DetailRequest{
			Kind:       domain.ResourceKind(d.Kind),
			ResourceID: d.ResourceID,
			Quantity:   d.Quantity,
		}
		if d.StartsAt != nil {
			t, err := time.Parse(time.RFC3339, *d.StartsAt)
			if err != nil {
				return nil, fmt.Errorf("parse startsAt: %w", err)
			}
			detail.StartsAt = &t
		}
		if d.EndsAt != nil {
			t, err := time.Parse(time.RFC3339, *d.EndsAt)
			if err != nil {
				return nil, fmt.Errorf("parse endsAt: %w", err)
			}
			detail.EndsAt = &t
		}
		details = append(details, detail)
	}

	return &createLoan.Request{
		RequesterID:   session.UserID,
		RequesterName: session.Name,
		RequesterNIM:  session.NIM,
		LoanDate:      loanDate,
		Notes:         r.Notes,
		Details:       details,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *createLoan.Response) *LoanResponse {
	out := &LoanResponse{
		ID:            resp.ID,
		RequesterID:   resp.RequesterID,
		RequesterName: resp.RequesterName,
		RequesterNIM:  resp.RequesterNIM,
		LoanDate:      resp.LoanDate.Format(domain.DateFormat),
		Notes:         resp.Notes,
		Status:        resp.Status,
		Details:       make([]DetailResponse, 0, len(resp.Details)),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}

	for i := range resp.Details {
		d := &resp.Details[i]
		detail := DetailResponse{
			ID:         d.ID,
			Kind:       string(d.Kind),
			ResourceID: d.ResourceID,
			Quantity:   d.Quantity,
		}
		if d.StartsAt != nil {
			s := d.StartsAt.Format(time.RFC3339)
			detail.StartsAt = &s
		}
		if d.EndsAt != nil {
			s := d.EndsAt.Format(time.RFC3339)
			detail.EndsAt = &s
		}
		out.Details = append(out.Details, detail)
	}

	return out
}
