package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wordrush/wordrush/internal/api/middleware"
	"github.com/wordrush/wordrush/internal/api/request"
	"github.com/wordrush/wordrush/internal/api/response"
	"github.com/wordrush/wordrush/internal/model"
	"github.com/wordrush/wordrush/internal/services/chat"
	"github.com/wordrush/wordrush/internal/services/room"
)

// DefaultChatHistoryLimit caps how many messages a history request
// returns when no limit is given
const DefaultChatHistoryLimit = 100

// ChatHandler handles chat endpoints
type ChatHandler struct {
	chatService    chat.ServiceInterface
	roomController room.ControllerInterface
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService chat.ServiceInterface, roomController room.ControllerInterface) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		roomController: roomController,
	}
}

// Send handles POST /api/v1/rooms/{room_id}/chat
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.SendChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Text == "" {
		WriteError(w, NewInvalidRequestError("text is required"))
		return
	}

	if err := h.requireMember(r, roomID, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	msg, err := h.chatService.Send(r.Context(), roomID, player, req.Text)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ChatMessageFromModel(msg))
}

// History handles GET /api/v1/rooms/{room_id}/chat
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	if err := h.requireMember(r, roomID, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	limit := DefaultChatHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	messages, err := h.chatService.History(r.Context(), roomID, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.ChatMessage, len(messages))
	for i, msg := range messages {
		out[i] = response.ChatMessageFromModel(msg)
	}

	response.JSON(w, http.StatusOK, response.ChatHistoryResponse{Messages: out})
}

func (h *ChatHandler) requireMember(r *http.Request, roomID model.RoomID, playerID model.PlayerID) error {
	found, err := h.roomController.GetRoom(r.Context(), roomID)
	if err != nil {
		return err
	}
	if !found.HasMember(playerID) {
		return model.ErrNotInRoom
	}
	return nil
}
