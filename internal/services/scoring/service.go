package scoring

import (
	"math"
	"time"
)

const (
	// ConsolationPoints is the flat award to the word-giver when a
	// round times out with no correct guess
	ConsolationPoints = 50

	// Sudden-death window bounds; the window scales with word length
	minSuddenDeath = 3 * time.Second
	maxSuddenDeath = 10 * time.Second
)

// Service computes point awards for guesses
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// Score returns the points awarded for a guess. Incorrect guesses
// score zero. A correct guess earns basePoints scaled by remaining
// time, floored at minMultiplier so a last-instant answer still pays.
// The result is non-negative and non-increasing in elapsed time.
func (s *Service) Score(correct bool, elapsed, roundDuration time.Duration, basePoints int, minMultiplier float64) int {
	if !correct || basePoints <= 0 || roundDuration <= 0 {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if minMultiplier < 0 {
		minMultiplier = 0
	}

	multiplier := 1 - elapsed.Seconds()/roundDuration.Seconds()
	if multiplier < minMultiplier {
		multiplier = minMultiplier
	}

	points := int(math.Round(float64(basePoints) * multiplier))
	if points < 0 {
		return 0
	}
	return points
}

// SuddenDeathWindow returns the extra time the round stays open after
// the first correct guess. Longer words grant remaining players a
// longer window for a final attempt.
func (s *Service) SuddenDeathWindow(wordLength int) time.Duration {
	window := time.Duration(wordLength) * time.Second
	if window < minSuddenDeath {
		return minSuddenDeath
	}
	if window > maxSuddenDeath {
		return maxSuddenDeath
	}
	return window
}

// Interface for dependency injection
type ServiceInterface interface {
	Score(correct bool, elapsed, roundDuration time.Duration, basePoints int, minMultiplier float64) int
	SuddenDeathWindow(wordLength int) time.Duration
}

var _ ServiceInterface = (*Service)(nil)
