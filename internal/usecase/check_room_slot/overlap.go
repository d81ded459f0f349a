package check_room_slot

import (
	"fmt"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	"github.com/mathrent/MathRent-LoanService/pkg/types"
)

// CheckWindow tests a proposed [start, end) window against the existing
// bookings of the same room and date. It is a pure function: no I/O, safe to
// run on every edit of the time fields.
//
// Two windows overlap if and only if start < b.End && end > b.Start. The
// strict inequalities make adjacency legal: a window ending exactly when
// another starts is not a conflict.
func CheckWindow(start, end types.TimeString, bookings []*domain.RoomBooking) ([]*domain.RoomBooking, error) {
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidTime, err)
	}
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidTime, err)
	}
	if !start.IsBefore(end) {
		return nil, ErrInvalidOrder
	}

	conflicts := make([]*domain.RoomBooking, 0)
	for _, b := range bookings {
		if start.IsBefore(b.End) && end.IsAfter(b.Start) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts, nil
}
