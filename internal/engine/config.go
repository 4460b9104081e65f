package engine

import "time"

// Config holds the gameplay tuning knobs
type Config struct {
	// RackSize is the number of letters issued per rack
	RackSize int
	// MinVowels / MinConsonants are the rack quality minimums
	MinVowels     int
	MinConsonants int
	// RoundDuration is how long each round lasts before racks reissue
	RoundDuration time.Duration
	// StartingHP is each castle's hit points at match start
	StartingHP int
	// HistoryCap bounds the per-match word history log
	HistoryCap int
	// MaxNicknameLength truncates user-supplied nicknames
	MaxNicknameLength int
	// EndedMatchTTL is how long finished matches linger before the
	// janitor discards them
	EndedMatchTTL time.Duration
	// WaitingMatchTTL discards matches stuck before their first round
	WaitingMatchTTL time.Duration
	// SweepInterval is the janitor cadence
	SweepInterval time.Duration
}

// DefaultConfig returns the standard game balance
func DefaultConfig() Config {
	return Config{
		RackSize:          7,
		MinVowels:         2,
		MinConsonants:     2,
		RoundDuration:     30 * time.Second,
		StartingHP:        100,
		HistoryCap:        20,
		MaxNicknameLength: 12,
		EndedMatchTTL:     30 * time.Minute,
		WaitingMatchTTL:   5 * time.Minute,
		SweepInterval:     time.Minute,
	}
}
