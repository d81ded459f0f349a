package check_room_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/mathrent/MathRent-LoanService/internal/domain"
	scheduleCache "github.com/mathrent/MathRent-LoanService/internal/infra/cache/schedule"
	resourceRepo "github.com/mathrent/MathRent-LoanService/internal/infra/storage/resource"
)

// UseCase runs the pre-submission conflict check for a proposed room window.
// This is the optimistic half of the dual-check pattern: the authoritative
// re-check happens inside the approval transaction.
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

// Execute fetches the room's approved schedule for the date and tests the
// proposed window against it.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckRoomSlot: room=%d, date=%s, window=%s-%s",
		req.RoomID, req.Date.Format("2006-01-02"), req.Start, req.End)

	if req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := uc.resourceRepo.GetRoom(ctx, req.RoomID); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("CheckRoomSlot: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CheckRoomSlot: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	bookings, err := uc.loadSchedule(ctx, req)
	if err != nil {
		return nil, err
	}

	conflicts, err := CheckWindow(req.Start, req.End, bookings)
	if err != nil {
		uc.logger.Warn("CheckRoomSlot: window validation failed for room=%d: %v", req.RoomID, err)
		return nil, err
	}

	uc.logger.Info("CheckRoomSlot: room=%d window=%s-%s, %d conflict(s)",
		req.RoomID, req.Start, req.End, len(conflicts))

	return &Response{
		RoomID:      req.RoomID,
		Date:        req.Date,
		Start:       req.Start,
		End:         req.End,
		HasConflict: len(conflicts) > 0,
		Conflicts:   conflicts,
	}, nil
}

// loadSchedule reads the schedule snapshot cache-aside. Cache errors are
// logged and fall through to the database, never fail the check.
func (uc *UseCase) loadSchedule(ctx context.Context, req *Request) ([]*domain.RoomBooking, error) {
	if uc.cache != nil {
		bookings, err := uc.cache.Get(ctx, req.RoomID, req.Date)
		if err == nil {
			return bookings, nil
		}
		if !errors.Is(err, scheduleCache.ErrCacheMiss) {
			uc.logger.Warn("CheckRoomSlot: schedule cache read failed for room=%d: %v", req.RoomID, err)
		}
	}

	bookings, err := uc.loanRepo.GetRoomSchedule(ctx, req.RoomID, req.Date)
	if err != nil {
		uc.logger.Error("CheckRoomSlot: failed to get schedule for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, req.RoomID, req.Date, bookings); err != nil {
			uc.logger.Warn("CheckRoomSlot: schedule cache write failed for room=%d: %v", req.RoomID, err)
		}
	}
	return bookings, nil
}
