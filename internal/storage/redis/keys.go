package redis

import (
	"fmt"

	"github.com/wordrush/wordrush/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "wordrush"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// roomCodeIndexKey returns the Redis key for the code -> room_id index
func roomCodeIndexKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:idx:code:%s", keyPrefix, code)
}

// roomsIndexKey returns the Redis key for the SET of live room IDs
func roomsIndexKey() string {
	return fmt.Sprintf("%s:idx:rooms", keyPrefix)
}

// chatLogKey returns the Redis key for a room's chat log LIST
func chatLogKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:chat:%s", keyPrefix, roomID)
}
