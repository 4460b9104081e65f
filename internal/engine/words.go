package engine

import (
	"log/slog"
	"strings"

	"github.com/wordsiege/wordsiege-go/internal/model"
)

const minWordLength = 3

// SubmitWord validates a word against the submitter's rack and the
// dictionary. A valid word scores soldiers and reissues the whole rack; an
// invalid one only lands in the history log. Submissions outside a playing
// match are dropped.
func (e *Engine) SubmitWord(id model.PlayerID, raw string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	player, ok := e.players[id]
	if !ok {
		return
	}
	match := e.liveMatchFor(player)
	if match == nil {
		e.logger.Debug("word submission outside a playing match",
			slog.String("player_id", string(id)))
		return
	}

	word := strings.ToUpper(strings.TrimSpace(raw))

	valid := word != "" &&
		consumable(player.Letters, word) &&
		e.dictionary.IsValidWord(word) &&
		len([]rune(word)) >= minWordLength

	if !valid {
		if word != "" {
			match.AppendHistory(model.WordHistoryEntry{
				Word:     word,
				Nickname: player.Nickname,
				Valid:    false,
			}, e.cfg.HistoryCap)
			e.broadcastHistory(match)
		}
		e.send(id, model.Event{
			Type: model.EventWordResult,
			Payload: model.WordResultPayload{
				PlayerID: id,
				Word:     word,
				Valid:    false,
			},
		})
		return
	}

	soldiers := e.scoring.Soldiers(word)
	player.Letters = e.rack.Draw(e.cfg.RackSize, e.cfg.MinVowels, e.cfg.MinConsonants)

	match.AppendHistory(model.WordHistoryEntry{
		Word:         word,
		Nickname:     player.Nickname,
		Valid:        true,
		SoldierCount: soldiers,
	}, e.cfg.HistoryCap)

	// The submitter's copy carries the fresh rack; the opponent's does not
	e.send(id, model.Event{
		Type: model.EventWordResult,
		Payload: model.WordResultPayload{
			PlayerID:     id,
			Word:         word,
			Valid:        true,
			SoldierCount: soldiers,
			NewLetters:   player.Letters,
		},
	})
	if opponentID, ok := match.Opponent(id); ok {
		e.send(opponentID, model.Event{
			Type: model.EventWordResult,
			Payload: model.WordResultPayload{
				PlayerID:     id,
				Word:         word,
				Valid:        true,
				SoldierCount: soldiers,
			},
		})
	}
	e.broadcastHistory(match)

	e.logger.Info("word accepted",
		slog.String("player_id", string(id)),
		slog.String("word", word),
		slog.Int("soldiers", soldiers))
}

// broadcastHistory pushes the capped history log to both players.
// mu must be held.
func (e *Engine) broadcastHistory(match *model.Match) {
	e.broadcast(match, model.Event{
		Type:    model.EventUpdateWordHistory,
		Payload: model.WordHistoryPayload{History: match.WordHistory},
	})
}

// consumable reports whether the word can be spelled from the rack,
// consuming one rack letter per word letter. Duplicates in the word need
// matching duplicates in the rack.
func consumable(letters []string, word string) bool {
	remaining := make([]string, len(letters))
	copy(remaining, letters)

next:
	for _, r := range word {
		needed := string(r)
		for i, letter := range remaining {
			if letter == needed {
				remaining[i] = remaining[len(remaining)-1]
				remaining = remaining[:len(remaining)-1]
				continue next
			}
		}
		return false
	}
	return true
}
