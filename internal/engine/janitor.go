package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/wordsiege/wordsiege-go/internal/model"
)

// Sweep discards matches past their retention window: finished matches older
// than EndedMatchTTL, and matches stuck before their first round longer than
// WaitingMatchTTL. It also frees the waiting slot if its occupant's
// connection has silently died. Returns the number of matches removed.
func (e *Engine) Sweep(now time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	removed := 0
	for id, match := range e.matches {
		stale := false
		switch match.Status {
		case model.MatchStatusEnded, model.MatchStatusAborted:
			stale = now.Sub(match.EndedAt) > e.cfg.EndedMatchTTL
		case model.MatchStatusWaiting:
			if now.Sub(match.CreatedAt) > e.cfg.WaitingMatchTTL {
				match.Status = model.MatchStatusAborted
				match.EndedAt = now
				e.logger.Warn("aborting stale waiting match",
					slog.Int64("match_id", int64(id)))
				stale = true
			}
		}
		if !stale {
			continue
		}

		e.stopTimer(id)
		for _, pid := range []model.PlayerID{match.Player1ID, match.Player2ID} {
			if p, ok := e.players[pid]; ok && p.MatchID != nil && *p.MatchID == id {
				p.MatchID = nil
			}
		}
		delete(e.matches, id)
		removed++
	}

	if e.waiting != "" && !e.sender.IsConnected(e.waiting) {
		e.logger.Warn("evicting dead waiting player",
			slog.String("player_id", string(e.waiting)))
		e.waiting = ""
	}

	if removed > 0 {
		e.logger.Info("swept stale matches", slog.Int("removed", removed))
	}
	return removed
}

// Run sweeps on the configured cadence until the context is cancelled
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Sweep(e.clock.Now())
		}
	}
}
