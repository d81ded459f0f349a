package create_loan

import (
	"fmt"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
)

// validateRequest checks the structural shape of the draft: identity fields,
// detail count, and the per-kind payload rules. Resource existence and
// availability are checked later against the database.
func validateRequest(req *Request) error {
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}
	if req.LoanDate.IsZero() {
		return fmt.Errorf("%w: loanDate is required", ErrInvalidInput)
	}
	if len(req.Details) == 0 {
		return fmt.Errorf("%w: at least one detail is required", ErrInvalidInput)
	}
	if len(req.Details) > domain.MaxDetailsPerLoan {
		return fmt.Errorf("%w: at most %d details per request", ErrInvalidInput, domain.MaxDetailsPerLoan)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	issues := make([]string, 0)
	for i, d := range req.Details {
		for _, issue := range validateDetailShape(i, d) {
			issues = append(issues, issue)
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// validateDetailShape enforces the request form's kind-specific payload
// rules: items carry a quantity and nothing else, rooms carry an ordered
// time window and nothing else, attendance slots carry neither.
func validateDetailShape(index int, d DetailRequest) []string {
	label := fmt.Sprintf("Item %d", index+1)
	issues := make([]string, 0)

	if d.ResourceID <= 0 {
		issues = append(issues, fmt.Sprintf("%s: ID sumber daya tidak valid", label))
		return issues
	}

	switch d.Kind {
	case domain.KindItem:
		if d.Quantity == nil || *d.Quantity <= 0 {
			issues = append(issues, fmt.Sprintf("%s: Jumlah barang harus diisi dan > 0", label))
		}
		if d.StartsAt != nil || d.EndsAt != nil {
			issues = append(issues, fmt.Sprintf("%s: Barang tidak perlu waktu mulai/selesai", label))
		}
	case domain.KindRoom:
		if d.StartsAt == nil || d.EndsAt == nil {
			issues = append(issues, fmt.Sprintf("%s: Waktu mulai dan selesai harus diisi untuk ruangan", label))
		} else if !d.StartsAt.Before(*d.EndsAt) {
			issues = append(issues, fmt.Sprintf("%s: Waktu mulai harus lebih awal dari waktu selesai", label))
		}
		if d.Quantity != nil {
			issues = append(issues, fmt.Sprintf("%s: Ruangan tidak perlu jumlah", label))
		}
	case domain.KindAttendanceSlot:
		if d.Quantity != nil || d.StartsAt != nil || d.EndsAt != nil {
			issues = append(issues, fmt.Sprintf("%s: Absen tidak perlu jumlah atau waktu", label))
		}
	default:
		issues = append(issues, fmt.Sprintf("%s: Jenis sumber daya tidak dikenal", label))
	}

	return issues
}
