package check_room_slot

import (
	"fmt"
	"strings"
	"time"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	"github.com/mathrent/MathRent-LoanService/pkg/types"
)

// Request asks whether a proposed room window is free on a date.
type Request struct {
	RoomID int64
	Date   time.Time
	Start  types.TimeString
	End    types.TimeString
}

// Response reports the verdict. When HasConflict is set, Conflicts carries
// every overlapping booking so the form can name them all.
type Response struct {
	RoomID      int64
	Date        time.Time
	Start       types.TimeString
	End         types.TimeString
	HasConflict bool
	Conflicts   []*domain.RoomBooking
}

// ConflictMessage renders the conflicting bookings the way the booking form
// shows them, e.g. "Bentrok dengan jadwal: 10:00-12:00 (Budi)".
func (r *Response) ConflictMessage() string {
	if !r.HasConflict {
		return ""
	}
	parts := make([]string, len(r.Conflicts))
	for i, c := range r.Conflicts {
		parts[i] = fmt.Sprintf("%s-%s (%s)", c.Start, c.End, c.OwnerName)
	}
	return "Bentrok dengan jadwal: " + strings.Join(parts, ", ")
}
