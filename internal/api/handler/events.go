package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordrush/wordrush/internal/api/middleware"
	"github.com/wordrush/wordrush/internal/model"
	"github.com/wordrush/wordrush/internal/services/room"
	"github.com/wordrush/wordrush/internal/sse"
)

// EventsHandler handles the per-room SSE stream
type EventsHandler struct {
	roomController room.ControllerInterface
	hubManager     *sse.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(roomController room.ControllerInterface, hubManager *sse.HubManager) *EventsHandler {
	return &EventsHandler{
		roomController: roomController,
		hubManager:     hubManager,
	}
}

// Stream handles GET /api/v1/rooms/{room_id}/events
// Blocks for the lifetime of the connection, streaming room events.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	found, err := h.roomController.GetRoom(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !found.HasMember(player.ID) {
		WriteError(w, model.ErrNotInRoom)
		return
	}

	hub := h.hubManager.GetOrCreateHub(roomID)
	sse.ServeSSE(w, r, hub, player.ID)
}
