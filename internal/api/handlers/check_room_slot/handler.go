package check_room_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mathrent/MathRent-LoanService/internal/api/handlers"
	"github.com/mathrent/MathRent-LoanService/internal/domain"
	checkRoomSlot "github.com/mathrent/MathRent-LoanService/internal/usecase/check_room_slot"
	"github.com/mathrent/MathRent-LoanService/pkg/types"
)

const (
	msgInvalidRoomID = "ID ruangan tidak valid"
	msgInvalidDate   = "format tanggal tidak valid, gunakan YYYY-MM-DD"
	msgInvalidTime   = "format waktu tidak valid, gunakan HH:MM"
	msgInvalidOrder  = "waktu mulai harus sebelum waktu selesai"
	msgRoomNotFound  = "ruangan tidak ditemukan"
)

type Handler struct {
	useCase CheckRoomSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckRoomSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/schedule/check?date=2025-10-15&start=10:00&end=12:00
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/schedule/check - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/schedule/check - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	start, err := types.NewTimeStringFromString(query.Get("start"))
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/schedule/check - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	end, err := types.NewTimeStringFromString(query.Get("end"))
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/schedule/check - Invalid end time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkRoomSlot.Request{
		RoomID: roomID,
		Date:   date,
		Start:  start,
		End:    end,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkRoomSlot.ErrInvalidOrder):
			h.logger.Warn("GET /rooms/{id}/schedule/check - Invalid order: room_id=%d, %s-%s", roomID, start, end)
			handlers.RespondBadRequest(w, msgInvalidOrder)

		case errors.Is(err, checkRoomSlot.ErrInvalidTime), errors.Is(err, checkRoomSlot.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/schedule/check - Invalid input: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, checkRoomSlot.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/schedule/check - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("GET /rooms/{id}/schedule/check - Failed to check slot: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/schedule/check - Checked: room_id=%d, %s-%s, available=%t",
		roomID, start, end, !result.HasConflict)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
