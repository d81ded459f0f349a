package domain

import (
	"time"

	"github.com/mathrent/MathRent-LoanService/pkg/types"
)

// RoomBooking is one approved entry in a room's schedule for a date, as shown
// to a requester editing a booking form.
type RoomBooking struct {
	BookingID int64            `json:"bookingId"`
	OwnerID   int64            `json:"ownerId"`
	OwnerName string           `json:"ownerName"`
	Start     types.TimeString `json:"start"`
	End       types.TimeString `json:"end"`
	Status    LoanStatus       `json:"status"`
}

// LoanFilter selects loan requests for staff listings.
type LoanFilter struct {
	Status      *LoanStatus
	RequesterID *int64
	StartDate   *time.Time
	EndDate     *time.Time
}
