package models

import (
	"errors"
	"time"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
)

var (
	// ErrInvalidStatus is returned for an unknown status filter value.
	ErrInvalidStatus = errors.New("invalid loan status")
)

// Request models

// GetUserLoansRequest lists the loans of one requester.
type GetUserLoansRequest struct {
	RequesterID int64   `json:"requesterId"`
	Status      *string `json:"status,omitempty"`
}

// GetLoansRequest lists loans for the staff dashboard.
type GetLoansRequest struct {
	Status      *string    `json:"status,omitempty"`
	RequesterID *int64     `json:"requesterId,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

// VerifyPickupRequest checks a pickup code against an approved loan.
type VerifyPickupRequest struct {
	LoanID int64  `json:"loanId"`
	Code   string `json:"code"`
}

// ToDomainFilter converts the staff listing request into a domain filter.
func (r *GetLoansRequest) ToDomainFilter() (domain.LoanFilter, error) {
	filter := domain.LoanFilter{
		RequesterID: r.RequesterID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainLoanStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// LoanDetailResponse is one line of a loan request.
type LoanDetailResponse struct {
	ID         int64  `json:"id"`
	Kind       string `json:"kind"`
	ResourceID int64  `json:"resourceId"`

	Quantity *int    `json:"quantity,omitempty"`
	StartsAt *string `json:"startsAt,omitempty"` // ISO 8601
	EndsAt   *string `json:"endsAt,omitempty"`   // ISO 8601
}

// LoanResponse is a loan request as shown to requesters and staff.
type LoanResponse struct {
	ID            int64   `json:"id"`
	RequesterID   int64   `json:"requesterId"`
	RequesterName string  `json:"requesterName"`
	RequesterNIM  string  `json:"requesterNim"`
	LoanDate      string  `json:"loanDate"` // "2025-10-15"
	Notes         *string `json:"notes,omitempty"`
	Status        string  `json:"status"`

	ApprovedBy    *int64  `json:"approvedBy,omitempty"`
	ApproverName  *string `json:"approverName,omitempty"`
	RejectionNote *string `json:"rejectionNote,omitempty"`

	Details []LoanDetailResponse `json:"details"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoanListResponse is a list of loan requests.
type LoanListResponse struct {
	Loans []LoanResponse `json:"loans"`
}

// VerifyPickupResponse reports the outcome of a pickup verification.
type VerifyPickupResponse struct {
	LoanID   int64 `json:"loanId"`
	Verified bool  `json:"verified"`
}

// Conversion helpers

// ToDomainLoanStatus validates and converts a status string.
func ToDomainLoanStatus(s string) (domain.LoanStatus, error) {
	status := domain.LoanStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainLoan converts a domain model into a DTO.
func FromDomainLoan(l *domain.LoanRequest) *LoanResponse {
	if l == nil {
		return nil
	}

	resp := &LoanResponse{
		ID:            l.ID,
		RequesterID:   l.RequesterID,
		RequesterName: l.RequesterName,
		RequesterNIM:  l.RequesterNIM,
		LoanDate:      l.LoanDate.Format(domain.DateFormat),
		Notes:         l.Notes,
		Status:        string(l.Status),
		ApprovedBy:    l.ApprovedBy,
		ApproverName:  l.ApproverName,
		RejectionNote: l.RejectionNote,
		Details:       make([]LoanDetailResponse, 0, len(l.Details)),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}

	for i := range l.Details {
		resp.Details = append(resp.Details, fromDomainDetail(&l.Details[i]))
	}

	return resp
}

// FromDomainLoans converts a list of domain models into a list DTO.
func FromDomainLoans(loans []*domain.LoanRequest) *LoanListResponse {
	resp := &LoanListResponse{
		Loans: make([]LoanResponse, 0, len(loans)),
	}
	for _, l := range loans {
		resp.Loans = append(resp.Loans, *FromDomainLoan(l))
	}
	return resp
}

func fromDomainDetail(d *domain.LoanDetail) LoanDetailResponse {
	resp := LoanDetailResponse{
		ID:         d.ID,
		Kind:       string(d.Kind),
		ResourceID: d.ResourceID,
		Quantity:   d.Quantity,
	}
	if d.StartsAt != nil {
		s := d.StartsAt.Format(time.RFC3339)
		resp.StartsAt = &s
	}
	if d.EndsAt != nil {
		s := d.EndsAt.Format(time.RFC3339)
		resp.EndsAt = &s
	}
	return resp
}
