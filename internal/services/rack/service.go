package rack

import (
	"log/slog"
	"strings"

	"github.com/wordsiege/wordsiege-go/internal/dependencies/random"
)

const (
	// Vowels and Consonants partition the letters a rack can contain
	Vowels     = "AEIOU"
	Consonants = "BCDFGHJKLMNPQRSTVWXYZ"

	// maxAttempts bounds the retry loop enforcing vowel/consonant minimums
	maxAttempts = 25
)

// Service draws letter racks from a weighted pool: each consonant appears
// twice and each vowel three times.
type Service struct {
	random random.Random
	logger *slog.Logger
	pool   []string
}

// New creates a new rack service
func New(rnd random.Random, logger *slog.Logger) *Service {
	pool := make([]string, 0, 2*len(Consonants)+3*len(Vowels))
	for i := 0; i < 2; i++ {
		for _, c := range Consonants {
			pool = append(pool, string(c))
		}
	}
	for i := 0; i < 3; i++ {
		for _, v := range Vowels {
			pool = append(pool, string(v))
		}
	}
	return &Service{
		random: rnd,
		logger: logger.With(slog.String("component", "rack")),
		pool:   pool,
	}
}

// PoolSize returns the size of the weighted letter pool
func (s *Service) PoolSize() int {
	return len(s.pool)
}

// Draw returns exactly count letters drawn without replacement, retried
// until the minimum vowel and consonant counts are met. Exhausting the
// retries returns the last unconstrained draw; it is a quality
// degradation, not an error. Requesting more letters than the pool holds
// falls back to drawing with replacement.
func (s *Service) Draw(count, minVowels, minConsonants int) []string {
	if count <= 0 {
		return nil
	}

	if count > len(s.pool) {
		s.logger.Warn("requested more letters than pool size, drawing with replacement",
			slog.Int("count", count),
			slog.Int("pool_size", len(s.pool)),
		)
		letters := make([]string, count)
		for i := range letters {
			letters[i] = s.pool[s.random.Intn(len(s.pool))]
		}
		return letters
	}

	var letters []string
	for attempt := 0; attempt < maxAttempts; attempt++ {
		letters = s.drawOnce(count)
		if meetsMinimums(letters, minVowels, minConsonants) {
			return letters
		}
	}

	s.logger.Warn("letter minimums not met after retries, using unconstrained draw",
		slog.Int("count", count),
		slog.Int("min_vowels", minVowels),
		slog.Int("min_consonants", minConsonants),
	)
	return letters
}

func (s *Service) drawOnce(count int) []string {
	pool := make([]string, len(s.pool))
	copy(pool, s.pool)

	letters := make([]string, 0, count)
	for i := 0; i < count && len(pool) > 0; i++ {
		idx := s.random.Intn(len(pool))
		letters = append(letters, pool[idx])
		pool[idx] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return letters
}

// IsVowel reports whether a single-character letter is a vowel
func IsVowel(letter string) bool {
	return strings.Contains(Vowels, letter)
}

func meetsMinimums(letters []string, minVowels, minConsonants int) bool {
	vowels := 0
	for _, l := range letters {
		if IsVowel(l) {
			vowels++
		}
	}
	return vowels >= minVowels && len(letters)-vowels >= minConsonants
}
