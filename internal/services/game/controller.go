package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wordrush/wordrush/internal/dependencies/clock"
	"github.com/wordrush/wordrush/internal/dependencies/lock"
	"github.com/wordrush/wordrush/internal/model"
	"github.com/wordrush/wordrush/internal/services/chat"
	"github.com/wordrush/wordrush/internal/services/scoring"
	"github.com/wordrush/wordrush/internal/services/scramble"
	"github.com/wordrush/wordrush/internal/storage"
)

// MinPlayers is the minimum number of members required to start and
// keep a game running
const MinPlayers = 2

// Notifier publishes game events to room subscribers.
// Implemented by the SSE broadcaster; nil disables fan-out.
type Notifier interface {
	Publish(ctx context.Context, event model.Event)
}

// Controller implements the game state machine. Every mutation loads
// the room, applies the transition and saves the whole aggregate while
// holding that room's lock, so round advancement happens exactly once
// no matter how guesses, timeouts and departures race.
type Controller struct {
	storage  storage.Storage
	clock    clock.Clock
	locks    *lock.KeyedMutex
	scramble scramble.ServiceInterface
	scoring  scoring.ServiceInterface
	chat     chat.ServiceInterface
	notifier Notifier
	logger   *slog.Logger
}

// New creates a new GameController
func New(
	storage storage.Storage,
	clock clock.Clock,
	locks *lock.KeyedMutex,
	scramble scramble.ServiceInterface,
	scoring scoring.ServiceInterface,
	chat chat.ServiceInterface,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		clock:    clock,
		locks:    locks,
		scramble: scramble,
		scoring:  scoring,
		chat:     chat,
		logger:   logger,
	}
}

// SetNotifier attaches the real-time fan-out hook
func (c *Controller) SetNotifier(n Notifier) {
	c.notifier = n
}

// StartGame transitions a waiting room into its first round. Only the
// host may start, and at least MinPlayers members must be present. The
// word-giver rotation is snapshotted from the member list in join
// order.
func (c *Controller) StartGame(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Room, error) {
	unlock := c.locks.Lock(string(roomID))
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	member := room.GetMember(playerID)
	if member == nil {
		return nil, model.ErrNotInRoom
	}
	if !member.IsHost {
		return nil, model.ErrNotHost
	}

	switch room.Game.Status {
	case model.GameStatusPlaying:
		return nil, model.ErrGameInProgress
	case model.GameStatusFinished:
		return nil, model.ErrGameFinished
	}

	if len(room.Members) < MinPlayers {
		return nil, model.ErrInsufficientPlayers
	}

	room.Game = model.GameState{
		Status:       model.GameStatusPlaying,
		CurrentRound: 1,
		TotalRounds:  room.Settings.TotalRounds,
		Rotation:     room.PlayerIDs(),
		GiverIdx:     0,
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	giver := room.GetMember(room.Game.CurrentGiver())
	if _, err := c.chat.System(ctx, roomID, fmt.Sprintf("The game has started! %s picks the first word.", giver.Player.DisplayName)); err != nil {
		c.logger.Warn("failed to log game start", slog.String("error", err.Error()))
	}

	c.publish(ctx, room, model.EventGameStarted, playerID, model.GameStartedPayload{
		Rotation:    room.Game.Rotation,
		FirstGiver:  room.Game.CurrentGiver(),
		TotalRounds: room.Game.TotalRounds,
	})
	c.publishRoomUpdated(ctx, room)

	c.logger.Info("game started",
		slog.String("room_id", string(roomID)),
		slog.Int("players", len(room.Members)),
		slog.Int("total_rounds", room.Game.TotalRounds),
	)

	return room, nil
}

// SubmitWord sets the current round's secret word. Only the current
// word-giver may submit, exactly once per round. The word is lowercased
// and the round clock starts at the moment of submission.
func (c *Controller) SubmitWord(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, word string) (*model.Room, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, model.ErrEmptyWord
	}

	unlock := c.locks.Lock(string(roomID))
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if err := c.requirePlaying(room); err != nil {
		return nil, err
	}
	if room.Game.CurrentGiver() != playerID {
		return nil, model.ErrNotWordGiver
	}
	if room.Game.WordSet() {
		return nil, model.ErrWordAlreadySet
	}

	now := c.clock.Now()
	room.Game.Word = word
	room.Game.ScrambledWord = c.scramble.Scramble(word)
	room.Game.RoundStartedAt = now
	room.Game.RoundEndsAt = nil
	room.Game.WordFound = false
	room.Game.Guesses = nil
	room.Game.RoundWinner = ""
	room.UpdatedAt = now

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	if _, err := c.chat.System(ctx, roomID, fmt.Sprintf("Round %d of %d: unscramble \"%s\" (%d letters)!",
		room.Game.CurrentRound, room.Game.TotalRounds, room.Game.ScrambledWord, len([]rune(word)))); err != nil {
		c.logger.Warn("failed to log round start", slog.String("error", err.Error()))
	}

	c.publish(ctx, room, model.EventRoundStarted, playerID, model.RoundStartedPayload{
		Round:         room.Game.CurrentRound,
		GiverID:       playerID,
		ScrambledWord: room.Game.ScrambledWord,
		WordLength:    len([]rune(word)),
	})
	c.publishRoomUpdated(ctx, room)

	return room, nil
}

// GetCurrentWord returns the unscrambled secret word of the active
// round. Only the word-giver may read it; everyone else sees only the
// scrambled form through the room view.
func (c *Controller) GetCurrentWord(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (string, error) {
	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return "", err
	}

	if err := c.requirePlaying(room); err != nil {
		return "", err
	}
	if room.Game.CurrentGiver() != playerID {
		return "", model.ErrNotWordGiver
	}
	if !room.Game.WordSet() {
		return "", model.ErrNoActiveWord
	}

	return room.Game.Word, nil
}

// SubmitGuess evaluates a guess against the active word. The first
// correct guess wins the round and opens a short sudden-death window
// during which other players may still match the word for the record,
// but only the winner scores. Repeated identical guesses by the same
// player are rejected.
func (c *Controller) SubmitGuess(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, text string) (*model.Guess, *model.Room, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil, nil, model.ErrEmptyGuess
	}

	unlock := c.locks.Lock(string(roomID))
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}

	member := room.GetMember(playerID)
	if member == nil {
		return nil, nil, model.ErrNotInRoom
	}
	if err := c.requirePlaying(room); err != nil {
		return nil, nil, err
	}
	if !room.Game.WordSet() {
		return nil, nil, model.ErrNoActiveWord
	}
	if room.Game.CurrentGiver() == playerID {
		return nil, nil, model.ErrGiverCannotGuess
	}

	now := c.clock.Now()
	if now.After(room.Game.Deadline(room.Settings.RoundDuration)) {
		return nil, nil, model.ErrRoundOver
	}
	if room.Game.HasGuessed(playerID, text) {
		return nil, nil, model.ErrDuplicateGuess
	}

	correct := text == room.Game.Word
	isWin := correct && !room.Game.WordFound

	guess := model.Guess{
		PlayerID:    playerID,
		DisplayName: member.Player.DisplayName,
		Text:        text,
		SubmittedAt: now,
		Correct:     correct,
	}

	if isWin {
		guess.Points = c.scoring.Score(true, now.Sub(room.Game.RoundStartedAt),
			room.Settings.RoundDuration, room.Settings.BasePoints, room.Settings.MinMultiplier)
		member.Score += guess.Points

		room.Game.WordFound = true
		room.Game.RoundWinner = playerID
		deadline := now.Add(c.scoring.SuddenDeathWindow(len([]rune(room.Game.Word))))
		room.Game.RoundEndsAt = &deadline
	}

	room.Game.Guesses = append(room.Game.Guesses, guess)
	room.UpdatedAt = now

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, nil, err
	}

	// A correct guess's text is the secret word. Shared projections
	// carry a redacted copy so the word stays hidden while the
	// sudden-death window is open; the resolution event reveals it.
	echo := guess
	if correct {
		echo.Text = ""
	}

	if _, err := c.chat.AppendGuess(ctx, roomID, echo); err != nil {
		c.logger.Warn("failed to log guess", slog.String("error", err.Error()))
	}
	if isWin {
		if _, err := c.chat.System(ctx, roomID, fmt.Sprintf("%s unscrambled the word for %d points!", member.Player.DisplayName, guess.Points)); err != nil {
			c.logger.Warn("failed to log round win", slog.String("error", err.Error()))
		}
	}

	c.publish(ctx, room, model.EventGuessResult, playerID, model.GuessResultPayload{
		Round:  room.Game.CurrentRound,
		Guess:  echo,
		IsWin:  isWin,
		Points: guess.Points,
	})
	c.publishRoomUpdated(ctx, room)

	return &guess, room, nil
}

// ResolveExpiredRound closes the current round if its deadline has
// passed, awarding consolation points to the word-giver when nobody
// found the word, and advances to the next round or finishes the game.
// It reports whether a resolution happened. Safe to call repeatedly
// and concurrently; the room lock plus the active-word precondition
// guarantee at most one resolution per round.
func (c *Controller) ResolveExpiredRound(ctx context.Context, roomID model.RoomID) (bool, error) {
	unlock := c.locks.Lock(string(roomID))
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return false, err
	}

	if room.Game.Status != model.GameStatusPlaying || !room.Game.WordSet() {
		return false, nil
	}

	now := c.clock.Now()
	if !now.After(room.Game.Deadline(room.Settings.RoundDuration)) {
		return false, nil
	}

	word := room.Game.Word
	round := room.Game.CurrentRound
	winner := room.Game.RoundWinner
	timedOut := !room.Game.WordFound

	if timedOut {
		if giver := room.GetMember(room.Game.CurrentGiver()); giver != nil {
			giver.Score += scoring.ConsolationPoints
		}
		if _, err := c.chat.System(ctx, roomID, fmt.Sprintf("Time's up! The word was \"%s\".", word)); err != nil {
			c.logger.Warn("failed to log round timeout", slog.String("error", err.Error()))
		}
	}

	c.advanceRound(ctx, room)

	room.UpdatedAt = now
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return false, err
	}

	nextGiver := model.PlayerID("")
	if room.Game.Status == model.GameStatusPlaying {
		nextGiver = room.Game.CurrentGiver()
	}
	c.publish(ctx, room, model.EventRoundResolved, winner, model.RoundResolvedPayload{
		Round:     round,
		Word:      word,
		Winner:    winner,
		TimedOut:  timedOut,
		NextGiver: nextGiver,
	})
	if room.Game.Status == model.GameStatusFinished {
		c.publishGameFinished(ctx, room)
	}
	c.publishRoomUpdated(ctx, room)

	c.logger.Info("round resolved",
		slog.String("room_id", string(roomID)),
		slog.Int("round", round),
		slog.Bool("timed_out", timedOut),
		slog.String("winner", string(winner)),
	)

	return true, nil
}

// HandlePlayerLeft adjusts in-progress game state after a member was
// removed from the room. The caller holds the room lock and saves the
// aggregate afterwards. If the departed player was the word-giver of an
// active round, the round is voided with no points awarded and the next
// giver retries the same round number. If fewer than MinPlayers remain,
// the game finishes immediately with scores locked.
func (c *Controller) HandlePlayerLeft(ctx context.Context, room *model.Room, playerID model.PlayerID) {
	if room.Game.Status != model.GameStatusPlaying {
		return
	}

	wasGiver := room.Game.CurrentGiver() == playerID
	hadWord := room.Game.WordSet()
	word := room.Game.Word
	round := room.Game.CurrentRound

	// Drop the player from the rotation, keeping GiverIdx pointing at
	// the same player (or their successor if they were the giver)
	for i, id := range room.Game.Rotation {
		if id == playerID {
			room.Game.Rotation = append(room.Game.Rotation[:i], room.Game.Rotation[i+1:]...)
			if i < room.Game.GiverIdx {
				room.Game.GiverIdx--
			}
			break
		}
	}
	if len(room.Game.Rotation) > 0 {
		room.Game.GiverIdx %= len(room.Game.Rotation)
	}

	if len(room.Members) < MinPlayers || len(room.Game.Rotation) < MinPlayers {
		c.finishGame(ctx, room)
		c.publishGameFinished(ctx, room)
		return
	}

	if wasGiver && hadWord {
		c.clearRound(room)
		if _, err := c.chat.System(ctx, room.ID, "The word-giver left. Round voided, no points awarded."); err != nil {
			c.logger.Warn("failed to log voided round", slog.String("error", err.Error()))
		}
		c.publish(ctx, room, model.EventRoundResolved, playerID, model.RoundResolvedPayload{
			Round:     round,
			Word:      word,
			TimedOut:  false,
			NextGiver: room.Game.CurrentGiver(),
		})
	}
}

// advanceRound moves to the next round, or finishes the game after the
// final one. Caller holds the room lock.
func (c *Controller) advanceRound(ctx context.Context, room *model.Room) {
	if room.Game.IsLastRound() {
		c.finishGame(ctx, room)
		return
	}

	room.Game.CurrentRound++
	room.Game.GiverIdx = (room.Game.GiverIdx + 1) % len(room.Game.Rotation)
	c.clearRound(room)

	if giver := room.GetMember(room.Game.CurrentGiver()); giver != nil {
		if _, err := c.chat.System(ctx, room.ID, fmt.Sprintf("Round %d of %d: %s picks the next word.",
			room.Game.CurrentRound, room.Game.TotalRounds, giver.Player.DisplayName)); err != nil {
			c.logger.Warn("failed to log round advance", slog.String("error", err.Error()))
		}
	}
}

// clearRound resets the per-round fields, leaving rotation and round
// counters intact
func (c *Controller) clearRound(room *model.Room) {
	room.Game.Word = ""
	room.Game.ScrambledWord = ""
	room.Game.RoundStartedAt = time.Time{}
	room.Game.RoundEndsAt = nil
	room.Game.WordFound = false
	room.Game.Guesses = nil
	room.Game.RoundWinner = ""
}

func (c *Controller) finishGame(ctx context.Context, room *model.Room) {
	c.clearRound(room)
	room.Game.Status = model.GameStatusFinished

	winner := gameWinner(room)
	text := "Game over! It's a tie."
	if winner != "" {
		if m := room.GetMember(winner); m != nil {
			text = fmt.Sprintf("Game over! %s wins with %d points.", m.Player.DisplayName, m.Score)
		}
	}
	if _, err := c.chat.System(ctx, room.ID, text); err != nil {
		c.logger.Warn("failed to log game finish", slog.String("error", err.Error()))
	}

	c.logger.Info("game finished",
		slog.String("room_id", string(room.ID)),
		slog.String("winner", string(winner)),
	)
}

func (c *Controller) publishGameFinished(ctx context.Context, room *model.Room) {
	scores := make(map[model.PlayerID]int, len(room.Members))
	for _, m := range room.Members {
		scores[m.Player.ID] = m.Score
	}
	c.publish(ctx, room, model.EventGameFinished, gameWinner(room), model.GameFinishedPayload{
		FinalScores: scores,
		Winner:      gameWinner(room),
	})
}

// gameWinner returns the member with the strictly highest score, or
// empty on a tie
func gameWinner(room *model.Room) model.PlayerID {
	var winner model.PlayerID
	best := 0
	tied := false
	for i, m := range room.Members {
		if i == 0 || m.Score > best {
			winner = m.Player.ID
			best = m.Score
			tied = false
		} else if m.Score == best {
			tied = true
		}
	}
	if tied {
		return ""
	}
	return winner
}

func (c *Controller) requirePlaying(room *model.Room) error {
	switch room.Game.Status {
	case model.GameStatusWaiting:
		return model.ErrGameNotStarted
	case model.GameStatusFinished:
		return model.ErrGameFinished
	}
	return nil
}

func (c *Controller) publish(ctx context.Context, room *model.Room, eventType model.EventType, playerID model.PlayerID, payload any) {
	if c.notifier == nil {
		return
	}
	c.notifier.Publish(ctx, model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		RoomID:    room.ID,
		PlayerID:  playerID,
		Payload:   payload,
	})
}

func (c *Controller) publishRoomUpdated(ctx context.Context, room *model.Room) {
	c.publish(ctx, room, model.EventRoomUpdated, "", room)
}

// Interface for dependency injection
type ControllerInterface interface {
	StartGame(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Room, error)
	SubmitWord(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, word string) (*model.Room, error)
	GetCurrentWord(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (string, error)
	SubmitGuess(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, text string) (*model.Guess, *model.Room, error)
	ResolveExpiredRound(ctx context.Context, roomID model.RoomID) (bool, error)
	HandlePlayerLeft(ctx context.Context, room *model.Room, playerID model.PlayerID)
}

var _ ControllerInterface = (*Controller)(nil)
