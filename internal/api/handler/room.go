package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wordrush/wordrush/internal/api/middleware"
	"github.com/wordrush/wordrush/internal/api/request"
	"github.com/wordrush/wordrush/internal/api/response"
	"github.com/wordrush/wordrush/internal/model"
	"github.com/wordrush/wordrush/internal/services/room"
)

// RoomHandler handles room lifecycle and membership endpoints
type RoomHandler struct {
	roomController room.ControllerInterface
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomController room.ControllerInterface) *RoomHandler {
	return &RoomHandler{
		roomController: roomController,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body for default settings
		req = request.CreateRoomRequest{}
	}

	settings := model.DefaultSettings()
	if req.MaxPlayers > 0 {
		settings.MaxPlayers = req.MaxPlayers
	}
	if req.RoundDurationSeconds > 0 {
		settings.RoundDuration = time.Duration(req.RoundDurationSeconds) * time.Second
	}
	if req.TotalRounds > 0 {
		settings.TotalRounds = req.TotalRounds
	}
	if req.Category != "" {
		settings.Category = req.Category
	}
	if req.BasePoints > 0 {
		settings.BasePoints = req.BasePoints
	}
	if req.MinMultiplier > 0 {
		settings.MinMultiplier = req.MinMultiplier
	}

	created, err := h.roomController.CreateRoom(r.Context(), player.ID, &settings)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created))
}

// Get handles GET /api/v1/rooms/{room_id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	found, err := h.roomController.GetRoom(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(found))
}

// GetByCode handles GET /api/v1/rooms/code/{code}
func (h *RoomHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	found, err := h.roomController.GetRoomByCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(found))
}

// Join handles POST /api/v1/rooms/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Code == "" {
		WriteError(w, NewInvalidRequestError("code is required"))
		return
	}

	joined, err := h.roomController.JoinRoom(r.Context(), req.Code, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(joined))
}

// Leave handles POST /api/v1/rooms/{room_id}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	if err := h.roomController.LeaveRoom(r.Context(), roomID, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// TransferHost handles POST /api/v1/rooms/{room_id}/transfer-host
func (h *RoomHandler) TransferHost(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.TransferHostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.NewHostID == "" {
		WriteError(w, NewInvalidRequestError("new_host_id is required"))
		return
	}

	updated, err := h.roomController.TransferHost(r.Context(), roomID, player.ID, model.PlayerID(req.NewHostID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}
