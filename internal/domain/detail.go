package domain

import "time"

// ResourceKind tags a LoanDetail with the kind of resource it references.
type ResourceKind string

const (
	KindItem           ResourceKind = "item"
	KindRoom           ResourceKind = "room"
	KindAttendanceSlot ResourceKind = "attendance_slot"
)

// IsValid reports whether k is one of the known kinds.
func (k ResourceKind) IsValid() bool {
	switch k {
	case KindItem, KindRoom, KindAttendanceSlot:
		return true
	}
	return false
}

// LoanDetail is one line of a loan request. The payload depends on Kind:
// items carry a quantity, rooms carry a time window as absolute instants,
// attendance slots carry neither (ownership is binary).
type LoanDetail struct {
	ID         int64
	LoanID     int64
	Kind       ResourceKind
	ResourceID int64

	Quantity *int       // item only
	StartsAt *time.Time // room only
	EndsAt   *time.Time // room only

	CreatedAt time.Time
}

// HasWindow reports whether both window bounds are set.
func (d *LoanDetail) HasWindow() bool {
	return d.StartsAt != nil && d.EndsAt != nil
}

// Overlaps reports whether two room windows intersect. Windows are half-open
// [start, end): touching windows do not overlap.
func (d *LoanDetail) Overlaps(other *LoanDetail) bool {
	if !d.HasWindow() || !other.HasWindow() {
		return false
	}
	return d.StartsAt.Before(*other.EndsAt) && d.EndsAt.After(*other.StartsAt)
}
