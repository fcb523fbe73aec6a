package response

import (
	"time"

	"github.com/wordrush/wordrush/internal/model"
	"github.com/wordrush/wordrush/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// RoomMember represents a room member
type RoomMember struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	IsHost      bool   `json:"is_host"`
}

// RoomMemberFromModel converts model.RoomMember
func RoomMemberFromModel(m model.RoomMember) RoomMember {
	return RoomMember{
		PlayerID:    string(m.Player.ID),
		DisplayName: m.Player.DisplayName,
		Score:       m.Score,
		IsHost:      m.IsHost,
	}
}

// Settings represents room settings
type Settings struct {
	MaxPlayers           int     `json:"max_players"`
	RoundDurationSeconds int     `json:"round_duration_seconds"`
	TotalRounds          int     `json:"total_rounds"`
	Category             string  `json:"category"`
	BasePoints           int     `json:"base_points"`
	MinMultiplier        float64 `json:"min_multiplier"`
}

// SettingsFromModel converts model.Settings
func SettingsFromModel(s model.Settings) Settings {
	return Settings{
		MaxPlayers:           s.MaxPlayers,
		RoundDurationSeconds: int(s.RoundDuration / time.Second),
		TotalRounds:          s.TotalRounds,
		Category:             s.Category,
		BasePoints:           s.BasePoints,
		MinMultiplier:        s.MinMultiplier,
	}
}

// Guess represents one evaluated guess
type Guess struct {
	PlayerID    string    `json:"player_id"`
	DisplayName string    `json:"display_name"`
	Text        string    `json:"text"`
	SubmittedAt time.Time `json:"submitted_at"`
	Correct     bool      `json:"correct"`
	Points      int       `json:"points"`
}

// GuessFromModel converts model.Guess
func GuessFromModel(g model.Guess) Guess {
	return Guess{
		PlayerID:    string(g.PlayerID),
		DisplayName: g.DisplayName,
		Text:        g.Text,
		SubmittedAt: g.SubmittedAt,
		Correct:     g.Correct,
		Points:      g.Points,
	}
}

// GameState represents the game portion of a room view. The secret
// word is never included; the word-giver retrieves it through a
// dedicated authenticated endpoint.
type GameState struct {
	Status        string     `json:"status"`
	CurrentRound  int        `json:"current_round"`
	TotalRounds   int        `json:"total_rounds"`
	Rotation      []string   `json:"rotation,omitempty"`
	CurrentGiver  string     `json:"current_giver,omitempty"`
	ScrambledWord string     `json:"scrambled_word,omitempty"`
	WordLength    int        `json:"word_length,omitempty"`
	RoundStarted  *time.Time `json:"round_started_at,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	WordFound     bool       `json:"word_found"`
	RoundWinner   string     `json:"round_winner,omitempty"`
	Guesses       []Guess    `json:"guesses,omitempty"`
}

// GameStateFromModel converts the embedded game state, computing the
// effective round deadline from the room settings
func GameStateFromModel(room *model.Room) GameState {
	g := &room.Game

	rotation := make([]string, len(g.Rotation))
	for i, pid := range g.Rotation {
		rotation[i] = string(pid)
	}

	guesses := make([]Guess, len(g.Guesses))
	for i, guess := range g.Guesses {
		guesses[i] = GuessFromModel(guess)
		// A correct guess's text is the secret word; guesses only
		// appear in the view while the round is still open
		if guess.Correct {
			guesses[i].Text = ""
		}
	}

	state := GameState{
		Status:       string(g.Status),
		CurrentRound: g.CurrentRound,
		TotalRounds:  g.TotalRounds,
		Rotation:     rotation,
		CurrentGiver: string(g.CurrentGiver()),
		WordFound:    g.WordFound,
		RoundWinner:  string(g.RoundWinner),
		Guesses:      guesses,
	}

	if g.WordSet() {
		state.ScrambledWord = g.ScrambledWord
		state.WordLength = len([]rune(g.Word))
		started := g.RoundStartedAt
		state.RoundStarted = &started
		deadline := g.Deadline(room.Settings.RoundDuration)
		state.Deadline = &deadline
	}

	return state
}

// Room represents a room in API responses
type Room struct {
	ID       string       `json:"id"`
	Code     string       `json:"code"`
	Members  []RoomMember `json:"members"`
	Game     GameState    `json:"game"`
	Settings Settings     `json:"settings"`
	Version  int64        `json:"version"`
}

// RoomFromModel converts model.Room
func RoomFromModel(r *model.Room) Room {
	members := make([]RoomMember, len(r.Members))
	for i, m := range r.Members {
		members[i] = RoomMemberFromModel(m)
	}

	return Room{
		ID:       string(r.ID),
		Code:     string(r.Code),
		Members:  members,
		Game:     GameStateFromModel(r),
		Settings: SettingsFromModel(r.Settings),
		Version:  r.Version,
	}
}

// WordResponse carries the secret word to its giver
type WordResponse struct {
	Word string `json:"word"`
}

// GuessResponse is the response after submitting a guess
type GuessResponse struct {
	Guess  Guess `json:"guess"`
	IsWin  bool  `json:"is_win"`
	Points int   `json:"points"`
	Room   Room  `json:"room"`
}

// ChatMessage represents a chat log entry
type ChatMessage struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	PlayerID    string    `json:"player_id,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Text        string    `json:"text"`
	SentAt      time.Time `json:"sent_at"`
}

// ChatMessageFromModel converts model.ChatMessage
func ChatMessageFromModel(m *model.ChatMessage) ChatMessage {
	return ChatMessage{
		ID:          m.ID,
		Kind:        string(m.Kind),
		PlayerID:    string(m.PlayerID),
		DisplayName: m.DisplayName,
		Text:        m.Text,
		SentAt:      m.SentAt,
	}
}

// ChatHistoryResponse is the response for chat history
type ChatHistoryResponse struct {
	Messages []ChatMessage `json:"messages"`
}
