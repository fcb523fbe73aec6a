package model

import (
	"strings"
	"time"
)

// RoomID is the opaque internal identifier for a room
type RoomID string

// RoomCode is the short human-shareable identifier used to join rooms
type RoomCode string

// NormalizeRoomCode uppercases a user-supplied code for lookup
func NormalizeRoomCode(code string) RoomCode {
	return RoomCode(strings.ToUpper(strings.TrimSpace(code)))
}

// RoomMember represents a player's membership in a room
type RoomMember struct {
	Player   Player
	Score    int // cumulative across the game, never decreases
	IsHost   bool
	JoinedAt time.Time
}

// Settings holds per-room game configuration, fixed at room creation
type Settings struct {
	MaxPlayers    int
	RoundDuration time.Duration
	TotalRounds   int
	Category      string
	BasePoints    int
	// MinMultiplier floors the speed multiplier so a last-instant
	// correct guess still earns something
	MinMultiplier float64
}

// DefaultSettings returns the default room settings
func DefaultSettings() Settings {
	return Settings{
		MaxPlayers:    8,
		RoundDuration: 45 * time.Second,
		TotalRounds:   5,
		Category:      "general",
		BasePoints:    100,
		MinMultiplier: 0.3,
	}
}

// Room is the root aggregate: membership, settings and the embedded
// game state are always saved and broadcast as a whole, so subscribers
// never observe a torn multi-field update
type Room struct {
	ID       RoomID
	Code     RoomCode
	Members  []RoomMember // ordered by join time
	Game     GameState
	Settings Settings

	// Version increments on every save; clients use it to detect
	// stale state after reconnecting
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetHost returns the current host member, or nil if none
func (r *Room) GetHost() *RoomMember {
	for i := range r.Members {
		if r.Members[i].IsHost {
			return &r.Members[i]
		}
	}
	return nil
}

// GetMember returns the member with the given player ID, or nil if not found
func (r *Room) GetMember(playerID PlayerID) *RoomMember {
	for i := range r.Members {
		if r.Members[i].Player.ID == playerID {
			return &r.Members[i]
		}
	}
	return nil
}

// HasMember reports whether the player is in the room
func (r *Room) HasMember(playerID PlayerID) bool {
	return r.GetMember(playerID) != nil
}

// PlayerIDs returns all member player IDs in join order
func (r *Room) PlayerIDs() []PlayerID {
	ids := make([]PlayerID, len(r.Members))
	for i, m := range r.Members {
		ids[i] = m.Player.ID
	}
	return ids
}

// IsFull reports whether the room has reached its player cap
func (r *Room) IsFull() bool {
	return len(r.Members) >= r.Settings.MaxPlayers
}
