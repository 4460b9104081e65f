package model

import "time"

// MatchID uniquely identifies a match for the process lifetime
type MatchID int64

// MatchStatus is the lifecycle state of a match
type MatchStatus string

const (
	MatchStatusWaiting MatchStatus = "waiting"
	MatchStatusPlaying MatchStatus = "playing"
	MatchStatusEnded   MatchStatus = "ended"
	MatchStatusAborted MatchStatus = "aborted"
)

// GameOverReason explains why a match terminated
type GameOverReason string

const (
	ReasonCombat     GameOverReason = "combat"
	ReasonDisconnect GameOverReason = "disconnect"
	ReasonStale      GameOverReason = "stale"
)

// WordHistoryEntry is one submission in a match's capped history log.
// Informational only; never consulted by gameplay logic.
type WordHistoryEntry struct {
	Word         string `json:"word"`
	Nickname     string `json:"nickname"`
	Valid        bool   `json:"valid"`
	SoldierCount int    `json:"soldierCount,omitempty"`
}

// Match holds the state of one two-player battle
type Match struct {
	ID          MatchID
	Player1ID   PlayerID
	Player2ID   PlayerID
	Status      MatchStatus
	WordHistory []WordHistoryEntry
	CreatedAt   time.Time
	EndedAt     time.Time
}

// Live reports whether the match can still be affected by play or disconnects
func (m *Match) Live() bool {
	return m.Status == MatchStatusWaiting || m.Status == MatchStatusPlaying
}

// HasPlayer reports whether the given player is a participant
func (m *Match) HasPlayer(id PlayerID) bool {
	return m.Player1ID == id || m.Player2ID == id
}

// Opponent returns the other participant. ok is false if id is not a
// participant at all.
func (m *Match) Opponent(id PlayerID) (PlayerID, bool) {
	switch id {
	case m.Player1ID:
		return m.Player2ID, true
	case m.Player2ID:
		return m.Player1ID, true
	default:
		return "", false
	}
}

// AppendHistory appends an entry, dropping the oldest entries beyond cap
func (m *Match) AppendHistory(entry WordHistoryEntry, cap int) {
	m.WordHistory = append(m.WordHistory, entry)
	if cap > 0 && len(m.WordHistory) > cap {
		m.WordHistory = m.WordHistory[len(m.WordHistory)-cap:]
	}
}

// MatchSummary is the archived record of a finished match
type MatchSummary struct {
	MatchID         MatchID
	Player1Nickname string
	Player2Nickname string
	WinnerID        PlayerID
	LoserID         PlayerID
	Reason          GameOverReason
	WordsPlayed     int
	EndedAt         time.Time
}
