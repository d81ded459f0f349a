package check_room_slot

import (
	"context"

	checkRoomSlot "github.com/mathrent/MathRent-LoanService/internal/usecase/check_room_slot"
)

type CheckRoomSlotUseCase interface {
	Execute(ctx context.Context, req *checkRoomSlot.Request) (*checkRoomSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
