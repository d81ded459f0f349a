package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	valid := []string{"00:00", "09:05", "10:00", "23:59"}
	for _, s := range valid {
		ts, err := NewTimeStringFromString(s)
		require.NoError(t, err, "%q should be accepted", s)
		assert.Equal(t, s, ts.String())
	}

	invalid := []string{"", "9:00", "24:00", "10:60", "10-00", "1000", "aa:bb", "10:00:00"}
	for _, s := range invalid {
		_, err := NewTimeStringFromString(s)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "%q should be rejected", s)
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2025, 10, 15, 9, 5, 30, 0, time.UTC)
	assert.Equal(t, TimeString("09:05"), NewTimeString(moment))
}

// Validated values are zero-padded, so lexicographic order matches
// chronological order.
func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:01").IsAfter("10:00"))
}
