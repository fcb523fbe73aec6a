package model

import "time"

// MessageKind classifies chat log entries
type MessageKind string

const (
	MessageKindChat    MessageKind = "chat"    // Ordinary player chatter
	MessageKindGuess   MessageKind = "guess"   // Raw guess echo
	MessageKindSystem  MessageKind = "system"  // Narration: round start, timeout, host changes
	MessageKindCorrect MessageKind = "correct" // A correct guess
	MessageKindWrong   MessageKind = "wrong"   // An incorrect guess
)

// ChatMessage is an immutable entry in a room's append-only log.
// The log doubles as the room's narrated event history; it is only
// ever deleted wholesale when the room is destroyed.
type ChatMessage struct {
	ID          string
	RoomID      RoomID
	Kind        MessageKind
	PlayerID    PlayerID // empty for system messages
	DisplayName string   // empty for system messages
	Text        string
	SentAt      time.Time
}
