package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordrush/wordrush/internal/api/middleware"
	"github.com/wordrush/wordrush/internal/api/request"
	"github.com/wordrush/wordrush/internal/api/response"
	"github.com/wordrush/wordrush/internal/model"
	"github.com/wordrush/wordrush/internal/services/game"
)

// GameHandler handles game state machine endpoints
type GameHandler struct {
	gameController game.ControllerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// Start handles POST /api/v1/rooms/{room_id}/game/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	room, err := h.gameController.StartGame(r.Context(), roomID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(room))
}

// SubmitWord handles POST /api/v1/rooms/{room_id}/game/word
func (h *GameHandler) SubmitWord(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.SubmitWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	room, err := h.gameController.SubmitWord(r.Context(), roomID, player.ID, req.Word)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(room))
}

// GetWord handles GET /api/v1/rooms/{room_id}/game/word
// Only the current word-giver receives the unscrambled word.
func (h *GameHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	word, err := h.gameController.GetCurrentWord(r.Context(), roomID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.WordResponse{Word: word})
}

// SubmitGuess handles POST /api/v1/rooms/{room_id}/game/guess
func (h *GameHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.SubmitGuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	guess, room, err := h.gameController.SubmitGuess(r.Context(), roomID, player.ID, req.Guess)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuessResponse{
		Guess:  response.GuessFromModel(*guess),
		IsWin:  guess.Correct && room.Game.RoundWinner == player.ID,
		Points: guess.Points,
		Room:   response.RoomFromModel(room),
	})
}
