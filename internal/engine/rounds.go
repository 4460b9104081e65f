package engine

import (
	"log/slog"

	"github.com/wordsiege/wordsiege-go/internal/model"
)

// startMatch transitions a freshly created match to playing: resets HP,
// issues the opening racks, announces the game and arms the round timer.
// mu must be held.
func (e *Engine) startMatch(match *model.Match) {
	if match.Status != model.MatchStatusWaiting {
		return
	}

	player1, ok1 := e.players[match.Player1ID]
	player2, ok2 := e.players[match.Player2ID]
	if !ok1 || !ok2 {
		// A participant vanished between pairing and start
		match.Status = model.MatchStatusAborted
		match.EndedAt = e.clock.Now()
		e.logger.Warn("aborting match, participant missing at start",
			slog.Int64("match_id", int64(match.ID)))
		return
	}

	match.Status = model.MatchStatusPlaying
	player1.HP = e.cfg.StartingHP
	player2.HP = e.cfg.StartingHP
	player1.Letters = e.rack.Draw(e.cfg.RackSize, e.cfg.MinVowels, e.cfg.MinConsonants)
	player2.Letters = e.rack.Draw(e.cfg.RackSize, e.cfg.MinVowels, e.cfg.MinConsonants)

	e.broadcast(match, model.Event{
		Type: model.EventGameStart,
		Payload: model.GameStartPayload{
			MatchID:     match.ID,
			Player1:     playerInfo(player1),
			Player2:     playerInfo(player2),
			RoundMillis: e.cfg.RoundDuration.Milliseconds(),
		},
	})
	e.sendRack(player1)
	e.sendRack(player2)
	e.armRoundTimer(match.ID)

	e.logger.Info("match started", slog.Int64("match_id", int64(match.ID)))
}

// endRound reissues both racks and restarts the timer. A no-op unless the
// match is still playing, so a timer that fires after game over is harmless.
// mu must be held.
func (e *Engine) endRound(id model.MatchID) {
	match, ok := e.matches[id]
	if !ok || match.Status != model.MatchStatusPlaying {
		return
	}

	player1, ok1 := e.players[match.Player1ID]
	player2, ok2 := e.players[match.Player2ID]
	if !ok1 || !ok2 {
		e.stopTimer(id)
		match.Status = model.MatchStatusAborted
		match.EndedAt = e.clock.Now()
		e.logger.Warn("aborting match, participant missing at round end",
			slog.Int64("match_id", int64(id)))
		return
	}

	player1.Letters = e.rack.Draw(e.cfg.RackSize, e.cfg.MinVowels, e.cfg.MinConsonants)
	player2.Letters = e.rack.Draw(e.cfg.RackSize, e.cfg.MinVowels, e.cfg.MinConsonants)

	e.broadcast(match, model.Event{
		Type: model.EventNewRound,
		Payload: model.NewRoundPayload{
			RoundMillis: e.cfg.RoundDuration.Milliseconds(),
			History:     match.WordHistory,
		},
	})
	e.sendRack(player1)
	e.sendRack(player2)
	e.armRoundTimer(id)

	e.logger.Debug("round rolled over", slog.Int64("match_id", int64(id)))
}

// endMatch terminates a playing match with a winner. mu must be held.
func (e *Engine) endMatch(match *model.Match, winnerID, loserID model.PlayerID, reason model.GameOverReason) {
	if match.Status != model.MatchStatusPlaying {
		return
	}

	e.stopTimer(match.ID)
	match.Status = model.MatchStatusEnded
	match.EndedAt = e.clock.Now()

	e.broadcast(match, model.Event{
		Type: model.EventGameOver,
		Payload: model.GameOverPayload{
			WinnerID: winnerID,
			LoserID:  loserID,
			Reason:   reason,
		},
	})
	e.archive(match, winnerID, loserID, reason)

	e.logger.Info("match ended",
		slog.Int64("match_id", int64(match.ID)),
		slog.String("winner_id", string(winnerID)),
		slog.String("reason", string(reason)))
}

// armRoundTimer schedules the next round rollover, cancelling any timer the
// match already holds. mu must be held.
func (e *Engine) armRoundTimer(id model.MatchID) {
	if timer, ok := e.timers[id]; ok {
		timer.Stop()
	}
	e.timers[id] = e.clock.AfterFunc(e.cfg.RoundDuration, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.endRound(id)
	})
}

// stopTimer cancels and forgets the match's round timer. mu must be held.
func (e *Engine) stopTimer(id model.MatchID) {
	if timer, ok := e.timers[id]; ok {
		timer.Stop()
		delete(e.timers, id)
	}
}

func (e *Engine) sendRack(player *model.Player) {
	e.send(player.ID, model.Event{
		Type:    model.EventRack,
		Payload: model.RackPayload{Letters: player.Letters},
	})
}

func playerInfo(p *model.Player) model.PlayerInfo {
	return model.PlayerInfo{ID: p.ID, Nickname: p.Nickname, HP: p.HP}
}
