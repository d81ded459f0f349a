package schedule

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
)

func testSchedule() []*domain.RoomBooking {
	return []*domain.RoomBooking{
		{BookingID: 1, OwnerID: 100, OwnerName: "Budi", Start: "10:00", End: "12:00", Status: domain.StatusApproved},
		{BookingID: 2, OwnerID: 101, OwnerName: "Sari", Start: "13:00", End: "14:00", Status: domain.StatusApproved},
	}
}

func TestCache_GetHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)

	bookings := testSchedule()
	raw, err := json.Marshal(bookings)
	require.NoError(t, err)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectGet("schedule:7:2025-10-15").SetVal(string(raw))

	got, err := cache.Get(context.Background(), 7, date)

	require.NoError(t, err)
	assert.Equal(t, bookings, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectGet("schedule:7:2025-10-15").RedisNil()

	_, err := cache.Get(context.Background(), 7, date)

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_Set(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)

	bookings := testSchedule()
	raw, err := json.Marshal(bookings)
	require.NoError(t, err)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectSet("schedule:7:2025-10-15", raw, time.Minute).SetVal("OK")

	err = cache.Set(context.Background(), 7, date, bookings)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_Invalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectDel("schedule:7:2025-10-15").SetVal(1)

	err := cache.Invalidate(context.Background(), 7, date)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
