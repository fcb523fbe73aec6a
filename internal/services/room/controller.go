package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wordrush/wordrush/internal/dependencies/clock"
	"github.com/wordrush/wordrush/internal/dependencies/lock"
	"github.com/wordrush/wordrush/internal/dependencies/random"
	"github.com/wordrush/wordrush/internal/model"
	"github.com/wordrush/wordrush/internal/services/chat"
	"github.com/wordrush/wordrush/internal/services/game"
	"github.com/wordrush/wordrush/internal/storage"
)

const (
	roomIDAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomCodeLength   = 6

	// maxCodeAttempts bounds the uniqueness retry loop; with a 36^6
	// code space collisions this deep mean something is badly wrong
	maxCodeAttempts = 10
)

// Notifier publishes room membership events to subscribers.
// Implemented by the SSE broadcaster; nil disables fan-out.
type Notifier interface {
	Publish(ctx context.Context, event model.Event)
}

// Controller manages room lifecycle and membership
type Controller struct {
	storage  storage.Storage
	clock    clock.Clock
	random   random.Random
	locks    *lock.KeyedMutex
	games    game.ControllerInterface
	chat     chat.ServiceInterface
	notifier Notifier
	logger   *slog.Logger
}

// New creates a new RoomController
func New(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	locks *lock.KeyedMutex,
	games game.ControllerInterface,
	chat chat.ServiceInterface,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		locks:   locks,
		games:   games,
		chat:    chat,
		logger:  logger,
	}
}

// SetNotifier attaches the real-time fan-out hook
func (c *Controller) SetNotifier(n Notifier) {
	c.notifier = n
}

// CreateRoom creates a new room with the given player as host. Settings
// may be nil to use the defaults.
func (c *Controller) CreateRoom(ctx context.Context, hostID model.PlayerID, settings *model.Settings) (*model.Room, error) {
	host, err := c.storage.GetPlayer(ctx, hostID)
	if err != nil {
		return nil, err
	}

	code, err := c.generateCode(ctx)
	if err != nil {
		return nil, err
	}

	roomSettings := model.DefaultSettings()
	if settings != nil {
		roomSettings = *settings
	}

	now := c.clock.Now()
	room := &model.Room{
		ID:   model.RoomID("room_" + c.random.String(20, roomIDAlphabet)),
		Code: code,
		Members: []model.RoomMember{
			{
				Player:   *host,
				IsHost:   true,
				JoinedAt: now,
			},
		},
		Game: model.GameState{
			Status: model.GameStatusWaiting,
		},
		Settings:  roomSettings,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	if _, err := c.chat.System(ctx, room.ID, fmt.Sprintf("%s created the room. Share code %s to invite players.", host.DisplayName, room.Code)); err != nil {
		c.logger.Warn("failed to log room creation", slog.String("error", err.Error()))
	}

	c.logger.Info("room created",
		slog.String("room_id", string(room.ID)),
		slog.String("code", string(room.Code)),
		slog.String("host_id", string(hostID)),
	)

	return room, nil
}

// GetRoom retrieves a room by its ID
func (c *Controller) GetRoom(ctx context.Context, roomID model.RoomID) (*model.Room, error) {
	return c.storage.GetRoom(ctx, roomID)
}

// GetRoomByCode retrieves a room by its shareable code, ignoring case
func (c *Controller) GetRoomByCode(ctx context.Context, code string) (*model.Room, error) {
	return c.storage.GetRoomByCode(ctx, model.NormalizeRoomCode(code))
}

// JoinRoom adds a player to the room identified by code. Joining is
// idempotent for existing members. Players may join mid-game as
// guessers, but a finished game accepts nobody new.
func (c *Controller) JoinRoom(ctx context.Context, code string, playerID model.PlayerID) (*model.Room, error) {
	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	room, err := c.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	unlock := c.locks.Lock(string(room.ID))
	defer unlock()

	// Re-read under the lock; the code lookup above ran unserialized
	room, err = c.storage.GetRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	if room.HasMember(playerID) {
		return room, nil
	}
	if room.Game.Status == model.GameStatusFinished {
		return nil, model.ErrGameFinished
	}
	if room.IsFull() {
		return nil, model.ErrRoomFull
	}

	now := c.clock.Now()
	room.Members = append(room.Members, model.RoomMember{
		Player:   *player,
		JoinedAt: now,
	})
	room.UpdatedAt = now

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	if _, err := c.chat.System(ctx, room.ID, fmt.Sprintf("%s joined the room.", player.DisplayName)); err != nil {
		c.logger.Warn("failed to log join", slog.String("error", err.Error()))
	}

	c.publish(ctx, room, model.EventPlayerJoined, playerID, model.PlayerJoinedPayload{Player: *player})
	c.publishRoomUpdated(ctx, room)

	return room, nil
}

// LeaveRoom removes a player from a room. The last member leaving
// destroys the room and its chat log. If the host leaves, the
// longest-present remaining member becomes host. Departures during a
// game may void the current round or finish the game early.
func (c *Controller) LeaveRoom(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) error {
	unlock := c.locks.Lock(string(roomID))
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	member := room.GetMember(playerID)
	if member == nil {
		return model.ErrNotInRoom
	}
	wasHost := member.IsHost
	displayName := member.Player.DisplayName

	for i := range room.Members {
		if room.Members[i].Player.ID == playerID {
			room.Members = append(room.Members[:i], room.Members[i+1:]...)
			break
		}
	}

	if len(room.Members) == 0 {
		if err := c.storage.DeleteRoom(ctx, roomID); err != nil {
			return err
		}
		if err := c.chat.Clear(ctx, roomID); err != nil {
			c.logger.Warn("failed to clear chat log", slog.String("error", err.Error()))
		}
		c.logger.Info("room deleted", slog.String("room_id", string(roomID)))
		return nil
	}

	var oldHost, newHost model.PlayerID
	if wasHost {
		// Members are ordered by join time, so index 0 is the
		// longest-present member
		oldHost = playerID
		room.Members[0].IsHost = true
		newHost = room.Members[0].Player.ID
	}

	c.games.HandlePlayerLeft(ctx, room, playerID)

	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	if _, err := c.chat.System(ctx, roomID, fmt.Sprintf("%s left the room.", displayName)); err != nil {
		c.logger.Warn("failed to log leave", slog.String("error", err.Error()))
	}

	c.publish(ctx, room, model.EventPlayerLeft, playerID, model.PlayerLeftPayload{
		PlayerID:    playerID,
		DisplayName: displayName,
	})
	if wasHost {
		if _, err := c.chat.System(ctx, roomID, fmt.Sprintf("%s is now the host.", room.Members[0].Player.DisplayName)); err != nil {
			c.logger.Warn("failed to log host change", slog.String("error", err.Error()))
		}
		c.publish(ctx, room, model.EventHostChanged, newHost, model.HostChangedPayload{
			OldHostID: oldHost,
			NewHostID: newHost,
		})
	}
	c.publishRoomUpdated(ctx, room)

	return nil
}

// TransferHost moves host privileges to another member. Only the
// current host may transfer.
func (c *Controller) TransferHost(ctx context.Context, roomID model.RoomID, hostID, newHostID model.PlayerID) (*model.Room, error) {
	unlock := c.locks.Lock(string(roomID))
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	host := room.GetMember(hostID)
	if host == nil {
		return nil, model.ErrNotInRoom
	}
	if !host.IsHost {
		return nil, model.ErrNotHost
	}

	target := room.GetMember(newHostID)
	if target == nil {
		return nil, model.ErrNotInRoom
	}
	if hostID == newHostID {
		return room, nil
	}

	host.IsHost = false
	target.IsHost = true
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	if _, err := c.chat.System(ctx, roomID, fmt.Sprintf("%s is now the host.", target.Player.DisplayName)); err != nil {
		c.logger.Warn("failed to log host transfer", slog.String("error", err.Error()))
	}

	c.publish(ctx, room, model.EventHostChanged, newHostID, model.HostChangedPayload{
		OldHostID: hostID,
		NewHostID: newHostID,
	})
	c.publishRoomUpdated(ctx, room)

	return room, nil
}

// generateCode produces a shareable code not currently in use
func (c *Controller) generateCode(ctx context.Context) (model.RoomCode, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := model.RoomCode(c.random.String(roomCodeLength, roomCodeAlphabet))
		exists, err := c.storage.RoomCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("failed to generate a unique room code")
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
	CreateRoom(ctx context.Context, hostID model.PlayerID, settings *model.Settings) (*model.Room, error)
	GetRoom(ctx context.Context, roomID model.RoomID) (*model.Room, error)
	GetRoomByCode(ctx context.Context, code string) (*model.Room, error)
	JoinRoom(ctx context.Context, code string, playerID model.PlayerID) (*model.Room, error)
	LeaveRoom(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) error
	TransferHost(ctx context.Context, roomID model.RoomID, hostID, newHostID model.PlayerID) (*model.Room, error)
}

var _ ControllerInterface = (*Controller)(nil)
