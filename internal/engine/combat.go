package engine

import (
	"log/slog"

	"github.com/wordsiege/wordsiege-go/internal/model"
)

// CastleHit applies soldier damage to the attacker's opponent. The client
// that reports the hit names the attacking player; the defender is always
// the attacker's opponent, so a malformed report cannot damage an arbitrary
// castle. Reports against an already-razed castle or outside a playing
// match are dropped, which makes duplicate delivery harmless.
func (e *Engine) CastleHit(reporterID, attackerID model.PlayerID, soldierCount int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if soldierCount <= 0 {
		return
	}

	reporter, ok := e.players[reporterID]
	if !ok || e.liveMatchFor(reporter) == nil {
		e.logger.Debug("castle hit from player outside a playing match",
			slog.String("player_id", string(reporterID)))
		return
	}

	attacker, ok := e.players[attackerID]
	if !ok {
		return
	}
	match := e.liveMatchFor(attacker)
	if match == nil || !match.HasPlayer(reporterID) {
		return
	}

	defenderID, ok := match.Opponent(attackerID)
	if !ok {
		return
	}
	defender, ok := e.players[defenderID]
	if !ok || defender.HP <= 0 {
		return
	}

	defender.HP -= soldierCount
	if defender.HP < 0 {
		defender.HP = 0
	}

	e.broadcast(match, model.Event{
		Type: model.EventUpdateHP,
		Payload: model.UpdateHPPayload{
			PlayerID:   defenderID,
			HP:         defender.HP,
			AttackerID: attackerID,
		},
	})

	e.logger.Debug("castle hit",
		slog.Int64("match_id", int64(match.ID)),
		slog.String("defender_id", string(defenderID)),
		slog.Int("soldiers", soldierCount),
		slog.Int("hp", defender.HP))

	if defender.HP == 0 {
		e.endMatch(match, attackerID, defenderID, model.ReasonCombat)
	}
}
