package storage

import (
	"context"

	"github.com/wordrush/wordrush/internal/model"
)

// Storage defines the interface for data persistence.
//
// Rooms are saved as whole aggregates (last writer wins), never
// field-by-field, so readers cannot observe a torn update. The chat
// log is the only append-only collection.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	GetRoomByCode(ctx context.Context, code model.RoomCode) (*model.Room, error)
	DeleteRoom(ctx context.Context, id model.RoomID) error
	RoomCodeExists(ctx context.Context, code model.RoomCode) (bool, error)
	// ListRoomIDs returns the IDs of all live rooms; the round
	// monitor sweeps these for expired rounds
	ListRoomIDs(ctx context.Context) ([]model.RoomID, error)

	// Chat log operations
	AppendChatMessage(ctx context.Context, msg *model.ChatMessage) error
	// GetChatMessages returns up to limit most recent messages in
	// append order; limit <= 0 means all
	GetChatMessages(ctx context.Context, roomID model.RoomID, limit int) ([]*model.ChatMessage, error)
	DeleteChatMessages(ctx context.Context, roomID model.RoomID) error
}
