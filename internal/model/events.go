package model

import "time"

// EventType identifies the type of event broadcast to room subscribers
type EventType string

const (
	// Room events
	EventRoomUpdated  EventType = "room_updated"
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"
	EventHostChanged  EventType = "host_changed"

	// Game events
	EventGameStarted   EventType = "game_started"
	EventRoundStarted  EventType = "round_started"
	EventGuessResult   EventType = "guess_result"
	EventRoundResolved EventType = "round_resolved"
	EventGameFinished  EventType = "game_finished"

	// Chat events
	EventChatMessage EventType = "chat_message"
)

// Event is the base structure for all broadcast events
type Event struct {
	Type      EventType
	Timestamp time.Time
	RoomID    RoomID
	PlayerID  PlayerID // The player who triggered or is affected, if any
	Payload   any      // Type-specific data
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	Player Player
}

// PlayerLeftPayload contains data for player left events
type PlayerLeftPayload struct {
	PlayerID    PlayerID
	DisplayName string
}

// HostChangedPayload contains data for host changed events
type HostChangedPayload struct {
	OldHostID PlayerID
	NewHostID PlayerID
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	Rotation    []PlayerID
	FirstGiver  PlayerID
	TotalRounds int
}

// RoundStartedPayload contains data for round started events.
// The secret word itself is never part of any broadcast payload.
type RoundStartedPayload struct {
	Round         int
	GiverID       PlayerID
	ScrambledWord string
	WordLength    int
}

// GuessResultPayload contains data for guess result events
type GuessResultPayload struct {
	Round  int
	Guess  Guess
	IsWin  bool // first correct guess of the round
	Points int
}

// RoundResolvedPayload contains data for round resolved events
type RoundResolvedPayload struct {
	Round     int
	Word      string // revealed once the round is over
	Winner    PlayerID
	TimedOut  bool
	NextGiver PlayerID // empty if the game finished
}

// GameFinishedPayload contains data for game finished events
type GameFinishedPayload struct {
	FinalScores map[PlayerID]int
	Winner      PlayerID // empty on a tie
}
