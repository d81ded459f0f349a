package check_room_slot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	scheduleCache "github.com/mathrent/MathRent-LoanService/internal/infra/cache/schedule"
	resourceRepo "github.com/mathrent/MathRent-LoanService/internal/infra/storage/resource"
)

type fakeLoanRepo struct {
	schedule []*domain.RoomBooking
	calls    int
}

func (f *fakeLoanRepo) GetRoomSchedule(_ context.Context, _ int64, _ time.Time) ([]*domain.RoomBooking, error) {
	f.calls++
	return f.schedule, nil
}

type fakeResourceRepo struct {
	rooms map[int64]*domain.Room
}

func (f *fakeResourceRepo) GetRoom(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return room, nil
}

type fakeScheduleCache struct {
	entries map[string][]*domain.RoomBooking
	sets    int
	broken  bool
}

func cacheKey(roomID int64, date time.Time) string {
	return fmt.Sprintf("%d:%s", roomID, date.Format(domain.DateFormat))
}

func (f *fakeScheduleCache) Get(_ context.Context, roomID int64, date time.Time) ([]*domain.RoomBooking, error) {
	if f.broken {
		return nil, errors.New("connection refused")
	}
	bookings, ok := f.entries[cacheKey(roomID, date)]
	if !ok {
		return nil, scheduleCache.ErrCacheMiss
	}
	return bookings, nil
}

func (f *fakeScheduleCache) Set(_ context.Context, roomID int64, date time.Time, bookings []*domain.RoomBooking) error {
	if f.broken {
		return errors.New("connection refused")
	}
	f.sets++
	f.entries[cacheKey(roomID, date)] = bookings
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testRequest() *Request {
	return &Request{
		RoomID: 7,
		Date:   time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Start:  "10:00",
		End:    "12:00",
	}
}

func roomRepoWith(id int64) *fakeResourceRepo {
	return &fakeResourceRepo{rooms: map[int64]*domain.Room{
		id: {ID: id, Name: "Ruang Seminar", Status: domain.ResourceAvailable},
	}}
}

func TestExecute_NoConflict(t *testing.T) {
	loans := &fakeLoanRepo{schedule: []*domain.RoomBooking{
		booking(1, "Budi", "08:00", "10:00"),
	}}
	uc := NewUseCase(loans, roomRepoWith(7), nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
	assert.Empty(t, resp.Conflicts)
}

func TestExecute_Conflict(t *testing.T) {
	loans := &fakeLoanRepo{schedule: []*domain.RoomBooking{
		booking(1, "Budi", "11:00", "13:00"),
	}}
	uc := NewUseCase(loans, roomRepoWith(7), nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.True(t, resp.HasConflict)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "Budi", resp.Conflicts[0].OwnerName)
}

func TestExecute_RoomNotFound(t *testing.T) {
	uc := NewUseCase(&fakeLoanRepo{}, &fakeResourceRepo{rooms: map[int64]*domain.Room{}}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_CacheAside(t *testing.T) {
	loans := &fakeLoanRepo{schedule: []*domain.RoomBooking{
		booking(1, "Budi", "08:00", "10:00"),
	}}
	cache := &fakeScheduleCache{entries: make(map[string][]*domain.RoomBooking)}
	uc := NewUseCase(loans, roomRepoWith(7), cache, nopLogger{})

	// First check misses the cache and populates it.
	_, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, loans.calls)
	assert.Equal(t, 1, cache.sets)

	// Second check is served from the snapshot.
	_, err = uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, loans.calls)
}

// A broken cache degrades to the database, never fails the check.
func TestExecute_CacheFailureFallsThrough(t *testing.T) {
	loans := &fakeLoanRepo{}
	cache := &fakeScheduleCache{broken: true}
	uc := NewUseCase(loans, roomRepoWith(7), cache, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
	assert.Equal(t, 1, loans.calls)
}

func TestExecute_InvalidWindow(t *testing.T) {
	uc := NewUseCase(&fakeLoanRepo{}, roomRepoWith(7), nil, nopLogger{})

	req := testRequest()
	req.Start = "12:00"
	req.End = "10:00"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	req = testRequest()
	req.Start = "9:00"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTime)
}
