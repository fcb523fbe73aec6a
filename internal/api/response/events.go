package response

import (
	"time"

	"github.com/wordrush/wordrush/internal/model"
)

// Event is the wire form of a broadcast event. Payloads are projected
// through the same converters as the REST responses, so nothing leaks
// over the stream that a plain GET would not return.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	RoomID    string    `json:"room_id"`
	PlayerID  string    `json:"player_id,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

// PlayerJoinedPayload is the wire payload for player_joined events
type PlayerJoinedPayload struct {
	Player Player `json:"player"`
}

// PlayerLeftPayload is the wire payload for player_left events
type PlayerLeftPayload struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
}

// HostChangedPayload is the wire payload for host_changed events
type HostChangedPayload struct {
	OldHostID string `json:"old_host_id"`
	NewHostID string `json:"new_host_id"`
}

// GameStartedPayload is the wire payload for game_started events
type GameStartedPayload struct {
	Rotation    []string `json:"rotation"`
	FirstGiver  string   `json:"first_giver"`
	TotalRounds int      `json:"total_rounds"`
}

// RoundStartedPayload is the wire payload for round_started events
type RoundStartedPayload struct {
	Round         int    `json:"round"`
	GiverID       string `json:"giver_id"`
	ScrambledWord string `json:"scrambled_word"`
	WordLength    int    `json:"word_length"`
}

// GuessResultPayload is the wire payload for guess_result events
type GuessResultPayload struct {
	Round  int   `json:"round"`
	Guess  Guess `json:"guess"`
	IsWin  bool  `json:"is_win"`
	Points int   `json:"points"`
}

// RoundResolvedPayload is the wire payload for round_resolved events
type RoundResolvedPayload struct {
	Round     int    `json:"round"`
	Word      string `json:"word"`
	Winner    string `json:"winner,omitempty"`
	TimedOut  bool   `json:"timed_out"`
	NextGiver string `json:"next_giver,omitempty"`
}

// GameFinishedPayload is the wire payload for game_finished events
type GameFinishedPayload struct {
	FinalScores map[string]int `json:"final_scores"`
	Winner      string         `json:"winner,omitempty"`
}

// EventFromModel converts an internal event to its wire form
func EventFromModel(e model.Event) Event {
	out := Event{
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		RoomID:    string(e.RoomID),
		PlayerID:  string(e.PlayerID),
	}

	switch p := e.Payload.(type) {
	case *model.Room:
		out.Payload = RoomFromModel(p)
	case *model.ChatMessage:
		out.Payload = ChatMessageFromModel(p)
	case model.PlayerJoinedPayload:
		out.Payload = PlayerJoinedPayload{Player: PlayerFromModel(&p.Player)}
	case model.PlayerLeftPayload:
		out.Payload = PlayerLeftPayload{
			PlayerID:    string(p.PlayerID),
			DisplayName: p.DisplayName,
		}
	case model.HostChangedPayload:
		out.Payload = HostChangedPayload{
			OldHostID: string(p.OldHostID),
			NewHostID: string(p.NewHostID),
		}
	case model.GameStartedPayload:
		rotation := make([]string, len(p.Rotation))
		for i, pid := range p.Rotation {
			rotation[i] = string(pid)
		}
		out.Payload = GameStartedPayload{
			Rotation:    rotation,
			FirstGiver:  string(p.FirstGiver),
			TotalRounds: p.TotalRounds,
		}
	case model.RoundStartedPayload:
		out.Payload = RoundStartedPayload{
			Round:         p.Round,
			GiverID:       string(p.GiverID),
			ScrambledWord: p.ScrambledWord,
			WordLength:    p.WordLength,
		}
	case model.GuessResultPayload:
		out.Payload = GuessResultPayload{
			Round:  p.Round,
			Guess:  GuessFromModel(p.Guess),
			IsWin:  p.IsWin,
			Points: p.Points,
		}
	case model.RoundResolvedPayload:
		out.Payload = RoundResolvedPayload{
			Round:     p.Round,
			Word:      p.Word,
			Winner:    string(p.Winner),
			TimedOut:  p.TimedOut,
			NextGiver: string(p.NextGiver),
		}
	case model.GameFinishedPayload:
		scores := make(map[string]int, len(p.FinalScores))
		for pid, score := range p.FinalScores {
			scores[string(pid)] = score
		}
		out.Payload = GameFinishedPayload{
			FinalScores: scores,
			Winner:      string(p.Winner),
		}
	default:
		out.Payload = p
	}

	return out
}
