package get_room_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	scheduleCache "github.com/mathrent/MathRent-LoanService/internal/infra/cache/schedule"
	resourceRepo "github.com/mathrent/MathRent-LoanService/internal/infra/storage/resource"
)

var (
	// ErrRoomNotFound is returned when the room does not exist.
	ErrRoomNotFound = errors.New("get_room_schedule: room not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("get_room_schedule: invalid input data")

	// ErrInternal is returned for internal use case failures.
	ErrInternal = errors.New("get_room_schedule: internal error")
)

// Request selects a room and a calendar date.
type Request struct {
	RoomID int64
	Date   time.Time
}

// Response lists the room's approved bookings for the date.
type Response struct {
	RoomID   int64
	Date     time.Time
	Bookings []*domain.RoomBooking
}

// UseCase lists a room's approved bookings for one date, cache-aside.
type UseCase struct {
	loanRepo     LoanRepository
	resourceRepo ResourceRepository
	cache        ScheduleCache
	logger       Logger
}

// NewUseCase creates the use case. cache may be nil when Redis is disabled.
func NewUseCase(
	loanRepo LoanRepository,
	resourceRepo ResourceRepository,
	cache ScheduleCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		loanRepo:     loanRepo,
		resourceRepo: resourceRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Execute returns the approved schedule of the room on the requested date.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetRoomSchedule: room=%d, date=%s", req.RoomID, req.Date.Format(domain.DateFormat))

	if req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := uc.resourceRepo.GetRoom(ctx, req.RoomID); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("GetRoomSchedule: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetRoomSchedule: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	if uc.cache != nil {
		bookings, err := uc.cache.Get(ctx, req.RoomID, req.Date)
		if err == nil {
			uc.logger.Info("GetRoomSchedule: cache hit for room=%d, %d booking(s)", req.RoomID, len(bookings))
			return &Response{RoomID: req.RoomID, Date: req.Date, Bookings: bookings}, nil
		}
		if !errors.Is(err, scheduleCache.ErrCacheMiss) {
			uc.logger.Warn("GetRoomSchedule: schedule cache read failed for room=%d: %v", req.RoomID, err)
		}
	}

	bookings, err := uc.loanRepo.GetRoomSchedule(ctx, req.RoomID, req.Date)
	if err != nil {
		uc.logger.Error("GetRoomSchedule: failed to get schedule for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, req.RoomID, req.Date, bookings); err != nil {
			uc.logger.Warn("GetRoomSchedule: schedule cache write failed for room=%d: %v", req.RoomID, err)
		}
	}

	uc.logger.Info("GetRoomSchedule: room=%d date=%s, %d booking(s)",
		req.RoomID, req.Date.Format(domain.DateFormat), len(bookings))

	return &Response{RoomID: req.RoomID, Date: req.Date, Bookings: bookings}, nil
}
