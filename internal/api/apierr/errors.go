package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wordrush/wordrush/internal/model"
	"github.com/wordrush/wordrush/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeRoomNotFound        = "ROOM_NOT_FOUND"
	CodeRoomFull            = "ROOM_FULL"
	CodeNotInRoom           = "NOT_IN_ROOM"
	CodeNotHost             = "NOT_HOST"
	CodeGameNotStarted      = "GAME_NOT_STARTED"
	CodeGameInProgress      = "GAME_IN_PROGRESS"
	CodeGameFinished        = "GAME_FINISHED"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeNotWordGiver        = "NOT_WORD_GIVER"
	CodeGiverCannotGuess    = "GIVER_CANNOT_GUESS"
	CodeWordAlreadySet      = "WORD_ALREADY_SET"
	CodeNoActiveWord        = "NO_ACTIVE_WORD"
	CodeDuplicateGuess      = "DUPLICATE_GUESS"
	CodeRoundOver           = "ROUND_OVER"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{CodeRoomFull, "Room is full"}}
	case errors.Is(err, model.ErrNotInRoom):
		return &httpError{http.StatusNotFound, APIError{CodeNotInRoom, "Not a member of this room"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrGameNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameNotStarted, "Game has not started"}}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeGameInProgress, "Game is already in progress"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game is finished"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrNotWordGiver):
		return &httpError{http.StatusForbidden, APIError{CodeNotWordGiver, "You are not the current word-giver"}}
	case errors.Is(err, model.ErrGiverCannotGuess):
		return &httpError{http.StatusForbidden, APIError{CodeGiverCannotGuess, "The word-giver cannot guess their own word"}}
	case errors.Is(err, model.ErrWordAlreadySet):
		return &httpError{http.StatusConflict, APIError{CodeWordAlreadySet, "A word has already been submitted this round"}}
	case errors.Is(err, model.ErrNoActiveWord):
		return &httpError{http.StatusConflict, APIError{CodeNoActiveWord, "No word has been submitted this round"}}
	case errors.Is(err, model.ErrEmptyWord):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Word must not be empty"}}
	case errors.Is(err, model.ErrEmptyGuess):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Guess must not be empty"}}
	case errors.Is(err, model.ErrEmptyMessage):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Message must not be empty"}}
	case errors.Is(err, model.ErrDuplicateGuess):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateGuess, "You already tried that guess this round"}}
	case errors.Is(err, model.ErrRoundOver):
		return &httpError{http.StatusConflict, APIError{CodeRoundOver, "The round has already ended"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, auth.ErrInvalidDisplayName),
		errors.Is(err, auth.ErrInvalidUsername),
		errors.Is(err, auth.ErrWeakPassword):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
