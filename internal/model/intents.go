package model

// IntentType identifies the inbound messages the engine consumes
type IntentType string

const (
	IntentJoin       IntentType = "join"
	IntentSubmitWord IntentType = "submitWord"
	IntentCastleHit  IntentType = "castleHit"
)

// JoinIntent registers a nickname and enters matchmaking
type JoinIntent struct {
	Nickname string `json:"nickname"`
}

// SubmitWordIntent submits a word built from the player's current rack
type SubmitWordIntent struct {
	Word string `json:"word"`
}

// CastleHitIntent reports a locally detected soldier/castle collision.
// The attacking player id is taken at face value regardless of which
// connection reported it; both clients are trusted equally.
type CastleHitIntent struct {
	AttackingPlayerID PlayerID `json:"attackingPlayerId"`
	SoldierCount      int      `json:"soldierCount"`
}
