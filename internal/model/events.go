package model

// EventType identifies the outbound events the engine produces
type EventType string

const (
	EventConnected         EventType = "connected"
	EventWaiting           EventType = "waiting"
	EventGameStart         EventType = "gameStart"
	EventRack              EventType = "rack"
	EventNewRound          EventType = "newRound"
	EventWordResult        EventType = "wordResult"
	EventUpdateHP          EventType = "updateHP"
	EventUpdateWordHistory EventType = "updateWordHistory"
	EventGameOver          EventType = "gameOver"
	EventOpponentLeft      EventType = "opponentLeft"
)

// Event is the envelope for all outbound messages
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// ConnectedPayload tells a client its assigned ephemeral id
type ConnectedPayload struct {
	PlayerID PlayerID `json:"playerId"`
}

// WaitingPayload is sent to a player parked in the waiting slot
type WaitingPayload struct {
	Message string `json:"message"`
}

// PlayerInfo is the public view of a player inside match events
type PlayerInfo struct {
	ID       PlayerID `json:"id"`
	Nickname string   `json:"nickname"`
	HP       int      `json:"hp"`
}

// GameStartPayload announces a match transitioning to playing
type GameStartPayload struct {
	MatchID     MatchID    `json:"matchId"`
	Player1     PlayerInfo `json:"player1"`
	Player2     PlayerInfo `json:"player2"`
	RoundMillis int64      `json:"roundMillis"`
}

// RackPayload carries a player's private letters on every (re)issue
type RackPayload struct {
	Letters []string `json:"letters"`
}

// NewRoundPayload is broadcast on each round-timer expiry
type NewRoundPayload struct {
	RoundMillis int64              `json:"roundMillis"`
	History     []WordHistoryEntry `json:"history"`
}

// WordResultPayload reports the outcome of a submission. NewLetters is
// populated only in the private copy sent to the submitter.
type WordResultPayload struct {
	PlayerID     PlayerID `json:"playerId"`
	Word         string   `json:"word"`
	Valid        bool     `json:"valid"`
	SoldierCount int      `json:"soldierCount,omitempty"`
	NewLetters   []string `json:"newLetters,omitempty"`
}

// UpdateHPPayload is broadcast after every accepted castle hit
type UpdateHPPayload struct {
	PlayerID   PlayerID `json:"playerId"`
	HP         int      `json:"hp"`
	AttackerID PlayerID `json:"attackerId"`
}

// WordHistoryPayload carries the full capped history after any mutation
type WordHistoryPayload struct {
	History []WordHistoryEntry `json:"history"`
}

// GameOverPayload names the winner and the termination reason
type GameOverPayload struct {
	WinnerID PlayerID       `json:"winnerId"`
	LoserID  PlayerID       `json:"loserId"`
	Reason   GameOverReason `json:"reason"`
}

// OpponentLeftPayload notifies the surviving player of a disconnect
type OpponentLeftPayload struct {
	Message string `json:"message"`
}
