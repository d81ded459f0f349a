package check_room_slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	"github.com/mathrent/MathRent-LoanService/pkg/types"
)

func booking(id int64, owner, start, end string) *domain.RoomBooking {
	return &domain.RoomBooking{
		BookingID: id,
		OwnerID:   id,
		OwnerName: owner,
		Start:     types.TimeString(start),
		End:       types.TimeString(end),
		Status:    domain.StatusApproved,
	}
}

func TestCheckWindow_EmptySchedule(t *testing.T) {
	conflicts, err := CheckWindow("10:00", "12:00", nil)

	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestCheckWindow_Overlap(t *testing.T) {
	schedule := []*domain.RoomBooking{
		booking(1, "Budi", "10:00", "12:00"),
	}

	tests := []struct {
		name     string
		start    string
		end      string
		conflict bool
	}{
		{"identical window", "10:00", "12:00", true},
		{"contained window", "10:30", "11:30", true},
		{"containing window", "09:00", "13:00", true},
		{"overlaps the start", "09:00", "10:30", true},
		{"overlaps the end", "11:30", "13:00", true},
		{"one minute overlap at start", "09:00", "10:01", true},
		{"one minute overlap at end", "11:59", "13:00", true},
		{"before", "08:00", "09:00", false},
		{"after", "13:00", "14:00", false},
		{"adjacent before", "08:00", "10:00", false},
		{"adjacent after", "12:00", "14:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflicts, err := CheckWindow(types.TimeString(tt.start), types.TimeString(tt.end), schedule)

			require.NoError(t, err)
			if tt.conflict {
				assert.Len(t, conflicts, 1)
			} else {
				assert.Empty(t, conflicts)
			}
		})
	}
}

// Back-to-back bookings share a boundary without conflicting, and a window
// filling the gap between two bookings exactly is accepted.
func TestCheckWindow_AdjacencyChain(t *testing.T) {
	schedule := []*domain.RoomBooking{
		booking(1, "Budi", "08:00", "10:00"),
		booking(2, "Sari", "12:00", "14:00"),
	}

	conflicts, err := CheckWindow("10:00", "12:00", schedule)

	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

// The verdict for A against B matches the verdict for B against A.
func TestCheckWindow_Symmetry(t *testing.T) {
	pairs := [][4]string{
		{"10:00", "12:00", "11:00", "13:00"},
		{"10:00", "12:00", "12:00", "14:00"},
		{"09:00", "09:30", "09:15", "10:00"},
	}

	for _, p := range pairs {
		a := []*domain.RoomBooking{booking(1, "A", p[0], p[1])}
		b := []*domain.RoomBooking{booking(2, "B", p[2], p[3])}

		forward, err := CheckWindow(types.TimeString(p[2]), types.TimeString(p[3]), a)
		require.NoError(t, err)
		backward, err := CheckWindow(types.TimeString(p[0]), types.TimeString(p[1]), b)
		require.NoError(t, err)

		assert.Equal(t, len(forward) > 0, len(backward) > 0,
			"windows %s-%s and %s-%s disagree on overlap", p[0], p[1], p[2], p[3])
	}
}

func TestCheckWindow_CollectsEveryConflict(t *testing.T) {
	schedule := []*domain.RoomBooking{
		booking(1, "Budi", "09:00", "10:30"),
		booking(2, "Sari", "11:00", "12:00"),
		booking(3, "Andi", "13:00", "14:00"),
	}

	conflicts, err := CheckWindow("10:00", "12:00", schedule)

	require.NoError(t, err)
	require.Len(t, conflicts, 2)
	assert.Equal(t, int64(1), conflicts[0].BookingID)
	assert.Equal(t, int64(2), conflicts[1].BookingID)
}

func TestCheckWindow_InvalidOrder(t *testing.T) {
	_, err := CheckWindow("12:00", "10:00", nil)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = CheckWindow("10:00", "10:00", nil)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestCheckWindow_InvalidFormat(t *testing.T) {
	bad := []string{"9:00", "25:00", "10:60", "10.00", "", "aa:bb"}

	for _, s := range bad {
		_, err := CheckWindow(types.TimeString(s), "12:00", nil)
		assert.ErrorIs(t, err, ErrInvalidTime, "start %q should be rejected", s)

		_, err = CheckWindow("08:00", types.TimeString(s), nil)
		assert.ErrorIs(t, err, ErrInvalidTime, "end %q should be rejected", s)
	}
}

func TestResponse_ConflictMessage(t *testing.T) {
	resp := &Response{
		HasConflict: true,
		Conflicts: []*domain.RoomBooking{
			booking(1, "Budi", "10:00", "12:00"),
			booking(2, "Sari", "12:30", "13:00"),
		},
	}

	assert.Equal(t, "Bentrok dengan jadwal: 10:00-12:00 (Budi), 12:30-13:00 (Sari)", resp.ConflictMessage())

	empty := &Response{HasConflict: false}
	assert.Empty(t, empty.ConflictMessage())
}
