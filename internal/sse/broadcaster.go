package sse

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/wordrush/wordrush/internal/api/response"
	"github.com/wordrush/wordrush/internal/model"
)

// Broadcaster fans events out to a room's connected SSE clients. It
// satisfies the notifier interfaces of the room, game and chat
// services, which stay unaware of the transport.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends an event to all clients subscribed to its room. The
// payload is projected to its wire form first, which strips anything
// the REST API would not expose (in particular the secret word).
func (b *Broadcaster) Publish(_ context.Context, event model.Event) {
	hub := b.hubManager.GetHub(event.RoomID)
	if hub == nil {
		// Nobody is listening
		return
	}

	data, err := json.Marshal(response.EventFromModel(event))
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("room_id", string(event.RoomID)),
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(event.Type), string(data))
}

// ChatMessageAppended implements the chat service's notifier by
// wrapping the message in a chat_message event
func (b *Broadcaster) ChatMessageAppended(ctx context.Context, msg *model.ChatMessage) {
	b.Publish(ctx, model.Event{
		Type:      model.EventChatMessage,
		Timestamp: msg.SentAt,
		RoomID:    msg.RoomID,
		PlayerID:  msg.PlayerID,
		Payload:   msg,
	})
}
