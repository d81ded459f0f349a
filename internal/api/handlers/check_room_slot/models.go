package check_room_slot

import (
	"github.com/mathrent/MathRent-LoanService/internal/domain"
	checkRoomSlot "github.com/mathrent/MathRent-LoanService/internal/usecase/check_room_slot"
)

// CheckResponse HTTP response model. Message is empty when the window is free.
type CheckResponse struct {
	RoomID    int64                 `json:"roomId"`
	Date      string                `json:"date"`
	Start     string                `json:"start"`
	End       string                `json:"end"`
	Available bool                  `json:"available"`
	Conflicts []*domain.RoomBooking `json:"conflicts,omitempty"`
	Message   string                `json:"message,omitempty"`
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *checkRoomSlot.Response) *CheckResponse {
	return &CheckResponse{
		RoomID:    resp.RoomID,
		Date:      resp.Date.Format(domain.DateFormat),
		Start:     resp.Start.String(),
		End:       resp.End.String(),
		Available: !resp.HasConflict,
		Conflicts: resp.Conflicts,
		Message:   resp.ConflictMessage(),
	}
}
