package check_room_slot

import "errors"

var (
	// ErrInvalidOrder is returned when the proposed start does not precede the
	// end. Nothing is evaluated against the schedule in that case.
	ErrInvalidOrder = errors.New("check_room_slot: start must precede end")

	// ErrInvalidTime is returned when a time value is not a zero-padded
	// 24-hour "HH:MM" string.
	ErrInvalidTime = errors.New("check_room_slot: invalid time format")

	// ErrRoomNotFound is returned when the room does not exist.
	ErrRoomNotFound = errors.New("check_room_slot: room not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("check_room_slot: invalid input data")

	// ErrInternal is returned for internal use case failures.
	ErrInternal = errors.New("check_room_slot: internal error")
)
