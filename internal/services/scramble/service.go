package scramble

import (
	"github.com/wordrush/wordrush/internal/dependencies/random"
)

// Service produces scrambled forms of secret words
type Service struct {
	random random.Random
}

// New creates a new ScrambleService
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// Scramble returns a permutation of the word's characters that is
// guaranteed to differ from the input whenever the word has more than
// one character. Words of length <= 1 are returned unchanged.
func (s *Service) Scramble(word string) string {
	runes := []rune(word)
	if len(runes) <= 1 {
		return word
	}

	s.random.Shuffle(len(runes), func(i, j int) {
		runes[i], runes[j] = runes[j], runes[i]
	})

	// A shuffle can reproduce the input (always, for words like "aa").
	// Swap the first adjacent pair of differing runes as a deterministic
	// fallback; only a word whose runes are all identical stays put.
	if string(runes) == word {
		for i := 0; i < len(runes)-1; i++ {
			if runes[i] != runes[i+1] {
				runes[i], runes[i+1] = runes[i+1], runes[i]
				break
			}
		}
	}

	return string(runes)
}

// Interface for dependency injection
type ServiceInterface interface {
	Scramble(word string) string
}

var _ ServiceInterface = (*Service)(nil)
