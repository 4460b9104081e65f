package engine

import "github.com/wordsiege/wordsiege-go/internal/model"

// Sender abstracts the outbound half of each player's message channel.
// Sends are fire-and-forget: the engine logs failures and never retries.
type Sender interface {
	// Send delivers an event to one player
	Send(id model.PlayerID, event model.Event) error

	// IsConnected reports whether the player's channel is still live
	IsConnected(id model.PlayerID) bool
}
