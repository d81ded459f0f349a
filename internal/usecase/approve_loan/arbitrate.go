package approve_loan

import (
	"github.com/mathrent/MathRent-LoanService/internal/domain"
)

// The evaluate* functions are the arbitration rules, one per resource kind.
// They are pure: given the candidate detail, the resolved resource and, for
// rooms and slots, the snapshot of other approved details for the same
// resource, they return the conflict that blocks approval, or nil. Running
// them twice on the same snapshot yields the same verdict, and the verdict
// for one detail never depends on the other details of the candidate.

// evaluateItemDetail enforces stock conservation. The stock column holds the
// remaining units: every committed approval already subtracted its quantity
// and every return added it back, so the candidate only has to fit into what
// is left.
func evaluateItemDetail(item *domain.Item, requested int) *domain.Conflict {
	if requested > item.Stock {
		c := domain.NewStockConflict(item.Name, item.Stock, requested)
		return &c
	}
	return nil
}

// evaluateRoomDetail enforces exclusivity of room time windows: any overlap
// with an approved window blocks approval. Windows are compared as absolute
// instants, so bookings crossing midnight compare correctly.
func evaluateRoomDetail(room *domain.Room, candidate *domain.LoanDetail, others []*domain.LoanDetail) *domain.Conflict {
	for _, other := range others {
		if candidate.Overlaps(other) {
			c := domain.NewRoomConflict(room.Name)
			return &c
		}
	}
	return nil
}

// evaluateSlotDetail enforces single ownership: an attendance slot held by
// any other approved loan cannot be approved again.
func evaluateSlotDetail(slot *domain.AttendanceSlot, others []*domain.LoanDetail) *domain.Conflict {
	if len(others) > 0 {
		c := domain.NewSlotConflict(slot.CourseName)
		return &c
	}
	return nil
}
