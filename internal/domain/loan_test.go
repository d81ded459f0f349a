package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func roomWindow(startISO, endISO string) *LoanDetail {
	s, _ := time.Parse(time.RFC3339, startISO)
	e, _ := time.Parse(time.RFC3339, endISO)
	return &LoanDetail{
		Kind:       KindRoom,
		ResourceID: 7,
		StartsAt:   &s,
		EndsAt:     &e,
	}
}

func TestLoanStatus_CanTransitionTo(t *testing.T) {
	allowed := []struct {
		from, to LoanStatus
	}{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusApproved, StatusReturned},
	}
	for _, tt := range allowed {
		assert.True(t, tt.from.CanTransitionTo(tt.to), "%s -> %s should be allowed", tt.from, tt.to)
	}

	forbidden := []struct {
		from, to LoanStatus
	}{
		{StatusPending, StatusReturned},
		{StatusApproved, StatusPending},
		{StatusApproved, StatusApproved},
		{StatusApproved, StatusRejected},
		{StatusRejected, StatusApproved},
		{StatusRejected, StatusPending},
		{StatusReturned, StatusApproved},
		{StatusReturned, StatusPending},
	}
	for _, tt := range forbidden {
		assert.False(t, tt.from.CanTransitionTo(tt.to), "%s -> %s should be forbidden", tt.from, tt.to)
	}
}

func TestLoanStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusReturned.IsTerminal())
}

func TestLoanDetail_Overlaps(t *testing.T) {
	a := roomWindow("2025-10-15T10:00:00Z", "2025-10-15T12:00:00Z")
	adjacent := roomWindow("2025-10-15T12:00:00Z", "2025-10-15T14:00:00Z")
	inside := roomWindow("2025-10-15T10:30:00Z", "2025-10-15T11:30:00Z")
	apart := roomWindow("2025-10-15T14:00:00Z", "2025-10-15T15:00:00Z")

	assert.False(t, a.Overlaps(adjacent))
	assert.False(t, adjacent.Overlaps(a))
	assert.True(t, a.Overlaps(inside))
	assert.True(t, inside.Overlaps(a))
	assert.False(t, a.Overlaps(apart))

	// Details without a window never overlap anything.
	bare := &LoanDetail{Kind: KindItem, ResourceID: 1}
	assert.False(t, a.Overlaps(bare))
	assert.False(t, bare.Overlaps(a))
}
