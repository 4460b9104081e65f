package model

import "time"

// PlayerID uniquely identifies a connection for its lifetime
type PlayerID string

// Player represents a connected participant. HP and Letters are only
// meaningful while the player is inside a match.
type Player struct {
	ID          PlayerID
	Nickname    string
	HP          int
	Letters     []string
	MatchID     *MatchID // nil when unmatched
	ConnectedAt time.Time
}

// InMatch reports whether the player currently references a match
func (p *Player) InMatch() bool {
	return p.MatchID != nil
}
