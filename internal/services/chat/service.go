package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wordrush/wordrush/internal/dependencies/clock"
	"github.com/wordrush/wordrush/internal/dependencies/random"
	"github.com/wordrush/wordrush/internal/model"
	"github.com/wordrush/wordrush/internal/storage"
)

const messageIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Notifier receives every appended message for real-time fan-out.
// Implemented by the SSE broadcaster; nil disables fan-out.
type Notifier interface {
	ChatMessageAppended(ctx context.Context, msg *model.ChatMessage)
}

// Service manages the append-only chat/event log for each room
type Service struct {
	storage  storage.Storage
	clock    clock.Clock
	random   random.Random
	notifier Notifier
	logger   *slog.Logger
}

// New creates a new ChatService
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// SetNotifier attaches the real-time fan-out hook
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Send appends an ordinary chat message from a player
func (s *Service) Send(ctx context.Context, roomID model.RoomID, player *model.Player, text string) (*model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.ErrEmptyMessage
	}

	msg := &model.ChatMessage{
		ID:          s.random.String(12, messageIDAlphabet),
		RoomID:      roomID,
		Kind:        model.MessageKindChat,
		PlayerID:    player.ID,
		DisplayName: player.DisplayName,
		Text:        text,
		SentAt:      s.clock.Now(),
	}

	return msg, s.append(ctx, msg)
}

// System appends a narration message (round start, timeout, host change)
func (s *Service) System(ctx context.Context, roomID model.RoomID, text string) (*model.ChatMessage, error) {
	msg := &model.ChatMessage{
		ID:     s.random.String(12, messageIDAlphabet),
		RoomID: roomID,
		Kind:   model.MessageKindSystem,
		Text:   text,
		SentAt: s.clock.Now(),
	}

	return msg, s.append(ctx, msg)
}

// AppendGuess logs an evaluated guess, tagged correct or wrong
func (s *Service) AppendGuess(ctx context.Context, roomID model.RoomID, guess model.Guess) (*model.ChatMessage, error) {
	kind := model.MessageKindWrong
	if guess.Correct {
		kind = model.MessageKindCorrect
	}

	msg := &model.ChatMessage{
		ID:          s.random.String(12, messageIDAlphabet),
		RoomID:      roomID,
		Kind:        kind,
		PlayerID:    guess.PlayerID,
		DisplayName: guess.DisplayName,
		Text:        guess.Text,
		SentAt:      guess.SubmittedAt,
	}

	return msg, s.append(ctx, msg)
}

// History returns up to limit most recent messages in append order
func (s *Service) History(ctx context.Context, roomID model.RoomID, limit int) ([]*model.ChatMessage, error) {
	return s.storage.GetChatMessages(ctx, roomID, limit)
}

// Clear deletes a room's entire log; called only on room destruction
func (s *Service) Clear(ctx context.Context, roomID model.RoomID) error {
	return s.storage.DeleteChatMessages(ctx, roomID)
}

func (s *Service) append(ctx context.Context, msg *model.ChatMessage) error {
	if err := s.storage.AppendChatMessage(ctx, msg); err != nil {
		s.logger.Error("failed to append chat message",
			slog.String("room_id", string(msg.RoomID)),
			slog.String("kind", string(msg.Kind)),
			slog.String("error", err.Error()),
		)
		return err
	}

	if s.notifier != nil {
		s.notifier.ChatMessageAppended(ctx, msg)
	}
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Send(ctx context.Context, roomID model.RoomID, player *model.Player, text string) (*model.ChatMessage, error)
	System(ctx context.Context, roomID model.RoomID, text string) (*model.ChatMessage, error)
	AppendGuess(ctx context.Context, roomID model.RoomID, guess model.Guess) (*model.ChatMessage, error)
	History(ctx context.Context, roomID model.RoomID, limit int) ([]*model.ChatMessage, error)
	Clear(ctx context.Context, roomID model.RoomID) error
}

var _ ServiceInterface = (*Service)(nil)
