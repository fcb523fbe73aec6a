package model

import "time"

// GameStatus represents the lifecycle phase of a room's game
type GameStatus string

const (
	GameStatusWaiting  GameStatus = "waiting"  // Accepting players, awaiting host start
	GameStatusPlaying  GameStatus = "playing"  // Rounds in progress
	GameStatusFinished GameStatus = "finished" // Terminal, scores locked
)

// Guess is an immutable record of one evaluated guess within a round
type Guess struct {
	PlayerID    PlayerID
	DisplayName string
	Text        string
	SubmittedAt time.Time
	Correct     bool
	Points      int // 0 unless this was the first correct guess
}

// GameState is the per-room round/turn state, embedded in Room
type GameState struct {
	Status       GameStatus
	CurrentRound int // 1-based, 0 while waiting
	TotalRounds  int

	// Rotation is the word-giver order, snapshotted from the member
	// list when the game starts
	Rotation []PlayerID
	GiverIdx int // index into Rotation for the current word-giver

	// Word and ScrambledWord are empty together (awaiting-word) or
	// set together (round active). Word is lowercase and is never
	// projected to anyone but the giver.
	Word          string
	ScrambledWord string

	RoundStartedAt time.Time
	// RoundEndsAt is set when the first correct guess opens the
	// sudden-death window; nil means the round ends at
	// RoundStartedAt + Settings.RoundDuration
	RoundEndsAt *time.Time

	WordFound   bool
	Guesses     []Guess
	RoundWinner PlayerID // empty until someone guesses correctly
}

// CurrentGiver returns the PlayerID of the current word-giver, or
// empty if the game has no rotation yet
func (g *GameState) CurrentGiver() PlayerID {
	if len(g.Rotation) == 0 || g.GiverIdx >= len(g.Rotation) {
		return ""
	}
	return g.Rotation[g.GiverIdx]
}

// WordSet reports whether the current round has an active word
func (g *GameState) WordSet() bool {
	return g.Word != ""
}

// Deadline returns the instant the current round resolves: the
// sudden-death deadline if one is open, otherwise the full round
// duration from the word submission
func (g *GameState) Deadline(roundDuration time.Duration) time.Time {
	if g.RoundEndsAt != nil {
		return *g.RoundEndsAt
	}
	return g.RoundStartedAt.Add(roundDuration)
}

// IsLastRound reports whether the current round is the final one
func (g *GameState) IsLastRound() bool {
	return g.CurrentRound >= g.TotalRounds
}

// HasGuessed reports whether the player already submitted this exact
// text during the current round (guesses are deduplicated per player
// per round)
func (g *GameState) HasGuessed(playerID PlayerID, text string) bool {
	for _, guess := range g.Guesses {
		if guess.PlayerID == playerID && guess.Text == text {
			return true
		}
	}
	return false
}
