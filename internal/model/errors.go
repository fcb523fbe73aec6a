package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
	ErrNotInRoom    = errors.New("player is not in room")
	ErrNotHost      = errors.New("player is not the host")

	// Game lifecycle errors
	ErrGameNotStarted      = errors.New("game has not started")
	ErrGameInProgress      = errors.New("game is in progress")
	ErrGameFinished        = errors.New("game is finished")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")

	// Round errors
	ErrNotWordGiver     = errors.New("not the current word-giver")
	ErrGiverCannotGuess = errors.New("word-giver cannot guess their own word")
	ErrWordAlreadySet   = errors.New("a word has already been submitted this round")
	ErrNoActiveWord     = errors.New("no word has been submitted this round")
	ErrEmptyWord        = errors.New("word must not be empty")
	ErrEmptyGuess       = errors.New("guess must not be empty")
	ErrDuplicateGuess   = errors.New("guess already submitted this round")
	ErrRoundOver        = errors.New("round has already ended")

	// Chat errors
	ErrEmptyMessage = errors.New("message must not be empty")
)
