package get_room_schedule

import (
	"context"
	"time"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
)

// LoanRepository reads the approved schedule of a room.
type LoanRepository interface {
	GetRoomSchedule(ctx context.Context, roomID int64, date time.Time) ([]*domain.RoomBooking, error)
}

// ResourceRepository resolves the room being listed.
type ResourceRepository interface {
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
}

// ScheduleCache is the optional snapshot cache in front of the repository.
type ScheduleCache interface {
	Get(ctx context.Context, roomID int64, date time.Time) ([]*domain.RoomBooking, error)
	Set(ctx context.Context, roomID int64, date time.Time, bookings []*domain.RoomBooking) error
}

// Logger is the logging interface used by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
