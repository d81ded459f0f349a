package get_room_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mathrent/MathRent-LoanService/internal/api/handlers"
	"github.com/mathrent/MathRent-LoanService/internal/domain"
	getRoomSchedule "github.com/mathrent/MathRent-LoanService/internal/usecase/get_room_schedule"
)

const (
	msgInvalidRoomID = "ID ruangan tidak valid"
	msgInvalidDate   = "format tanggal tidak valid, gunakan YYYY-MM-DD"
	msgRoomNotFound  = "ruangan tidak ditemukan"
)

// ScheduleResponse HTTP response model.
type ScheduleResponse struct {
	RoomID   int64                 `json:"roomId"`
	Date     string                `json:"date"`
	Bookings []*domain.RoomBooking `json:"bookings"`
}

type Handler struct {
	useCase GetRoomScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetRoomScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/schedule?date=2025-10-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/schedule - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/schedule - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getRoomSchedule.Request{
		RoomID: roomID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getRoomSchedule.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/schedule - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, getRoomSchedule.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/schedule - Invalid input: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /rooms/{id}/schedule - Failed to get schedule: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/schedule - Retrieved %d booking(s) for room_id=%d", len(result.Bookings), roomID)
	handlers.RespondJSON(w, http.StatusOK, &ScheduleResponse{
		RoomID:   result.RoomID,
		Date:     result.Date.Format(domain.DateFormat),
		Bookings: result.Bookings,
	})
}
