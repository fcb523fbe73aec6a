package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Room:
		o.printRoom(v)
	case GuessResult:
		o.printGuessResult(v)
	case WordResult:
		fmt.Printf("Your word: %s\n", v.Word)
	case ChatMessage:
		o.printChatMessage(v)
	case ChatHistory:
		for _, msg := range v.Messages {
			o.printChatMessage(msg)
		}
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// RoomMember response type
type RoomMember struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	IsHost      bool   `json:"is_host"`
}

// Settings response type
type Settings struct {
	MaxPlayers           int     `json:"max_players"`
	RoundDurationSeconds int     `json:"round_duration_seconds"`
	TotalRounds          int     `json:"total_rounds"`
	Category             string  `json:"category"`
	BasePoints           int     `json:"base_points"`
	MinMultiplier        float64 `json:"min_multiplier"`
}

// Guess response type
type Guess struct {
	PlayerID    string    `json:"player_id"`
	DisplayName string    `json:"display_name"`
	Text        string    `json:"text"`
	SubmittedAt time.Time `json:"submitted_at"`
	Correct     bool      `json:"correct"`
	Points      int       `json:"points"`
}

// GameState response type
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

// Room response type
type Room struct {
	ID       string       `json:"id"`
	Code     string       `json:"code"`
	Members  []RoomMember `json:"members"`
	Game     GameState    `json:"game"`
	Settings Settings     `json:"settings"`
	Version  int64        `json:"version"`
}

// WordResult response type
type WordResult struct {
	Word string `json:"word"`
}

// GuessResult response type
type GuessResult struct {
	Guess  Guess `json:"guess"`
	IsWin  bool  `json:"is_win"`
	Points int   `json:"points"`
	Room   Room  `json:"room"`
}

// ChatMessage response type
type ChatMessage struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	PlayerID    string    `json:"player_id,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Text        string    `json:"text"`
	SentAt      time.Time `json:"sent_at"`
}

// ChatHistory response type
type ChatHistory struct {
	Messages []ChatMessage `json:"messages"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s (code %s)\n", r.ID, r.Code)
	fmt.Printf("Status: %s\n", r.Game.Status)
	fmt.Printf("Rounds: %d seconds x %d, category %q\n",
		r.Settings.RoundDurationSeconds, r.Settings.TotalRounds, r.Settings.Category)

	fmt.Printf("Members (%d/%d):\n", len(r.Members), r.Settings.MaxPlayers)
	members := make([]RoomMember, len(r.Members))
	copy(members, r.Members)
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Score > members[j].Score
	})
	for _, m := range members {
		hostStr := ""
		if m.IsHost {
			hostStr = " [host]"
		}
		giverStr := ""
		if m.PlayerID == r.Game.CurrentGiver {
			giverStr = " [giver]"
		}
		fmt.Printf("  - %s (%s): %d points%s%s\n", m.DisplayName, m.PlayerID, m.Score, hostStr, giverStr)
	}

	if r.Game.Status == "playing" {
		fmt.Printf("Round: %d of %d\n", r.Game.CurrentRound, r.Game.TotalRounds)
		if r.Game.ScrambledWord != "" {
			fmt.Printf("Scrambled: %s (%d letters)\n",
				strings.ToUpper(r.Game.ScrambledWord), r.Game.WordLength)
			if r.Game.Deadline != nil {
				fmt.Printf("Deadline: %s\n", r.Game.Deadline.Format(time.RFC3339))
			}
		} else {
			fmt.Println("Waiting for the word-giver to pick a word")
		}
		if r.Game.RoundWinner != "" {
			fmt.Printf("Round winner: %s\n", r.Game.RoundWinner)
		}
	}
}

func (o *Output) printGuessResult(g GuessResult) {
	if g.IsWin {
		fmt.Printf("Correct! You won the round for %d points.\n", g.Points)
	} else if g.Guess.Correct {
		fmt.Println("Correct, but someone beat you to it.")
	} else {
		fmt.Printf("%q is not the word. Keep trying!\n", g.Guess.Text)
	}
}

func (o *Output) printChatMessage(m ChatMessage) {
	timestamp := m.SentAt.Format("15:04:05")
	switch m.Kind {
	case "system":
		fmt.Printf("[%s] * %s\n", timestamp, m.Text)
	case "correct":
		fmt.Printf("[%s] %s guessed %q - correct!\n", timestamp, m.DisplayName, m.Text)
	case "wrong":
		fmt.Printf("[%s] %s guessed %q\n", timestamp, m.DisplayName, m.Text)
	default:
		fmt.Printf("[%s] %s: %s\n", timestamp, m.DisplayName, m.Text)
	}
}
