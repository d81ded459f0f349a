package approve_loan

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	"github.com/mathrent/MathRent-LoanService/pkg/ptr"
)

func itemDetail(loanID int64, qty int) *domain.LoanDetail {
	return &domain.LoanDetail{
		LoanID:     loanID,
		Kind:       domain.KindItem,
		ResourceID: 1,
		Quantity:   ptr.Ptr(qty),
	}
}

func roomDetail(loanID int64, start, end string) *domain.LoanDetail {
	s, _ := time.Parse("2006-01-02 15:04", "2025-10-15 "+start)
	e, _ := time.Parse("2006-01-02 15:04", "2025-10-15 "+end)
	return &domain.LoanDetail{
		LoanID:     loanID,
		Kind:       domain.KindRoom,
		ResourceID: 7,
		StartsAt:   &s,
		EndsAt:     &e,
	}
}

func TestEvaluateItemDetail_StockSufficient(t *testing.T) {
	item := &domain.Item{ID: 1, Name: "Proyektor", Stock: 3}

	assert.Nil(t, evaluateItemDetail(item, 2))
}

func TestEvaluateItemDetail_StockExhausted(t *testing.T) {
	item := &domain.Item{ID: 1, Name: "Proyektor", Stock: 1}

	conflict := evaluateItemDetail(item, 2)

	require.NotNil(t, conflict)
	assert.Equal(t, domain.KindItem, conflict.Kind)
	assert.Equal(t, "Proyektor", conflict.ResourceName)
	assert.Equal(t, 1, conflict.Available)
	assert.Equal(t, 2, conflict.Requested)
	assert.Equal(t, "Stok tidak mencukupi (tersedia: 1, diminta: 2)", conflict.Message)
}

// Exactly consuming the remaining stock is allowed; the boundary is strict.
func TestEvaluateItemDetail_ExactFit(t *testing.T) {
	item := &domain.Item{ID: 1, Name: "Kabel HDMI", Stock: 1}

	assert.Nil(t, evaluateItemDetail(item, 1))
	assert.NotNil(t, evaluateItemDetail(item, 2))
}

// The verdict never depends on the order the approved windows are listed in.
func TestEvaluateRoomDetail_OrderIndependent(t *testing.T) {
	room := &domain.Room{ID: 7, Name: "Ruang Seminar"}
	candidate := roomDetail(1, "10:00", "12:00")
	others := []*domain.LoanDetail{
		roomDetail(10, "07:00", "08:00"),
		roomDetail(11, "08:00", "10:00"),
		roomDetail(12, "11:00", "13:00"),
		roomDetail(13, "14:00", "15:00"),
	}

	want := evaluateRoomDetail(room, candidate, others)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]*domain.LoanDetail, len(others))
		copy(shuffled, others)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := evaluateRoomDetail(room, candidate, shuffled)
		assert.Equal(t, want == nil, got == nil)
	}
}

func TestEvaluateRoomDetail_NoOverlap(t *testing.T) {
	room := &domain.Room{ID: 7, Name: "Ruang Seminar"}
	candidate := roomDetail(1, "10:00", "12:00")
	others := []*domain.LoanDetail{
		roomDetail(10, "08:00", "10:00"),
		roomDetail(11, "12:00", "14:00"),
	}

	assert.Nil(t, evaluateRoomDetail(room, candidate, others))
}

func TestEvaluateRoomDetail_Overlap(t *testing.T) {
	room := &domain.Room{ID: 7, Name: "Ruang Seminar"}
	candidate := roomDetail(1, "10:00", "12:00")
	others := []*domain.LoanDetail{roomDetail(10, "11:00", "13:00")}

	conflict := evaluateRoomDetail(room, candidate, others)

	require.NotNil(t, conflict)
	assert.Equal(t, domain.KindRoom, conflict.Kind)
	assert.Equal(t, "Ruang Seminar", conflict.ResourceName)
	assert.Equal(t, "Waktu bentrok dengan peminjaman lain", conflict.Message)
}

// Room windows are absolute instants, so a window reaching past midnight
// conflicts with the next morning's booking.
func TestEvaluateRoomDetail_CrossesMidnight(t *testing.T) {
	room := &domain.Room{ID: 7, Name: "Ruang Seminar"}

	s, _ := time.Parse(time.RFC3339, "2025-10-15T22:00:00Z")
	e, _ := time.Parse(time.RFC3339, "2025-10-16T02:00:00Z")
	candidate := &domain.LoanDetail{
		LoanID: 1, Kind: domain.KindRoom, ResourceID: 7, StartsAt: &s, EndsAt: &e,
	}

	os, _ := time.Parse(time.RFC3339, "2025-10-16T01:00:00Z")
	oe, _ := time.Parse(time.RFC3339, "2025-10-16T03:00:00Z")
	other := &domain.LoanDetail{
		LoanID: 2, Kind: domain.KindRoom, ResourceID: 7, StartsAt: &os, EndsAt: &oe,
	}

	assert.NotNil(t, evaluateRoomDetail(room, candidate, []*domain.LoanDetail{other}))
}

func TestEvaluateSlotDetail(t *testing.T) {
	slot := &domain.AttendanceSlot{ID: 3, CourseName: "Kalkulus II"}

	assert.Nil(t, evaluateSlotDetail(slot, nil))

	conflict := evaluateSlotDetail(slot, []*domain.LoanDetail{
		{LoanID: 10, Kind: domain.KindAttendanceSlot, ResourceID: 3},
	})
	require.NotNil(t, conflict)
	assert.Equal(t, domain.KindAttendanceSlot, conflict.Kind)
	assert.Equal(t, "Kalkulus II", conflict.ResourceName)
	assert.Equal(t, "Sudah dipinjam oleh orang lain", conflict.Message)
}

func TestGenerateVerificationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := generateVerificationCode()
		require.NoError(t, err)
		assert.Len(t, code, domain.VerificationCodeLength)
		for _, c := range code {
			assert.Contains(t, codeAlphabet, string(c))
		}
		seen[code] = true
	}
	// 50 draws from a 36^8 space should never collide.
	assert.Len(t, seen, 50)
}
