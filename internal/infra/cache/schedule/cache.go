package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
)

// ErrCacheMiss is returned when no schedule snapshot is cached for the key.
var ErrCacheMiss = errors.New("schedule.cache: cache miss")

// Cache keeps short-lived snapshots of room schedules in Redis so the booking
// form's per-keystroke conflict checks do not hammer the database. Entries
// are deleted whenever a decision touches the room, so a stale snapshot can
// only survive for the TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a schedule cache with the given entry TTL.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(roomID int64, date time.Time) string {
	return fmt.Sprintf("schedule:%d:%s", roomID, date.Format(domain.DateFormat))
}

// Get returns the cached schedule for a room and date, or ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, roomID int64, date time.Time) ([]*domain.RoomBooking, error) {
	raw, err := c.client.Get(ctx, key(roomID, date)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("schedule.cache: get: %w", err)
	}

	var bookings []*domain.RoomBooking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		return nil, fmt.Errorf("schedule.cache: decode: %w", err)
	}
	return bookings, nil
}

// Set stores the schedule snapshot for a room and date.
func (c *Cache) Set(ctx context.Context, roomID int64, date time.Time, bookings []*domain.RoomBooking) error {
	raw, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("schedule.cache: encode: %w", err)
	}
	if err := c.client.Set(ctx, key(roomID, date), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("schedule.cache: set: %w", err)
	}
	return nil
}

// Invalidate drops the snapshot for a room and date after a decision changed
// the approved set.
func (c *Cache) Invalidate(ctx context.Context, roomID int64, date time.Time) error {
	if err := c.client.Del(ctx, key(roomID, date)).Err(); err != nil {
		return fmt.Errorf("schedule.cache: invalidate: %w", err)
	}
	return nil
}
