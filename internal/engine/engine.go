package engine

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/wordsiege/wordsiege-go/internal/dependencies/clock"
	"github.com/wordsiege/wordsiege-go/internal/model"
	"github.com/wordsiege/wordsiege-go/internal/services/dictionary"
	"github.com/wordsiege/wordsiege-go/internal/services/rack"
	"github.com/wordsiege/wordsiege-go/internal/services/scoring"
	"github.com/wordsiege/wordsiege-go/internal/storage"
)

// Engine is the single coordinator for all live game state. Every public
// method takes the one mutex, so handlers and timer callbacks never observe
// a half-applied transition.
type Engine struct {
	cfg        Config
	sender     Sender
	store      storage.Storage
	dictionary *dictionary.Service
	rack       *rack.Service
	scoring    *scoring.Service
	clock      clock.Clock
	logger     *slog.Logger

	mu          sync.Mutex
	players     map[model.PlayerID]*model.Player
	matches     map[model.MatchID]*model.Match
	timers      map[model.MatchID]clock.Timer
	waiting     model.PlayerID // empty when the slot is free
	nextMatchID model.MatchID
}

// New creates an engine with the given collaborators
func New(
	cfg Config,
	sender Sender,
	store storage.Storage,
	dictionarySvc *dictionary.Service,
	rackSvc *rack.Service,
	scoringSvc *scoring.Service,
	clk clock.Clock,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		cfg:         cfg,
		sender:      sender,
		store:       store,
		dictionary:  dictionarySvc,
		rack:        rackSvc,
		scoring:     scoringSvc,
		clock:       clk,
		logger:      logger.With(slog.String("component", "engine")),
		players:     make(map[model.PlayerID]*model.Player),
		matches:     make(map[model.MatchID]*model.Match),
		timers:      make(map[model.MatchID]clock.Timer),
		nextMatchID: 1,
	}
}

// Connect registers a new connection under its ephemeral id and tells the
// client what that id is
func (e *Engine) Connect(id model.PlayerID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	player := &model.Player{
		ID:          id,
		Nickname:    "Player_" + idSuffix(id),
		ConnectedAt: e.clock.Now(),
	}
	e.players[id] = player

	e.logger.Info("player connected", slog.String("player_id", string(id)))
	e.send(id, model.Event{
		Type:    model.EventConnected,
		Payload: model.ConnectedPayload{PlayerID: id},
	})
}

// Disconnect removes a connection. If the player was inside a live match the
// opponent wins by forfeit; if they held the waiting slot it is freed.
func (e *Engine) Disconnect(id model.PlayerID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	player, ok := e.players[id]
	if !ok {
		return
	}

	if e.waiting == id {
		e.waiting = ""
	}

	if player.InMatch() {
		if match, ok := e.matches[*player.MatchID]; ok && match.Live() {
			e.forfeitMatch(match, id, player.Nickname)
		}
	}

	delete(e.players, id)
	e.logger.Info("player disconnected", slog.String("player_id", string(id)))
}

// forfeitMatch ends a live match because leaver dropped. mu must be held.
func (e *Engine) forfeitMatch(match *model.Match, leaver model.PlayerID, nickname string) {
	winnerID, ok := match.Opponent(leaver)
	if !ok {
		return
	}

	e.stopTimer(match.ID)
	match.Status = model.MatchStatusAborted
	match.EndedAt = e.clock.Now()

	if winner, ok := e.players[winnerID]; ok {
		winner.MatchID = nil
		e.send(winnerID, model.Event{
			Type:    model.EventOpponentLeft,
			Payload: model.OpponentLeftPayload{Message: nickname + " disconnected."},
		})
		e.send(winnerID, model.Event{
			Type: model.EventGameOver,
			Payload: model.GameOverPayload{
				WinnerID: winnerID,
				LoserID:  leaver,
				Reason:   model.ReasonDisconnect,
			},
		})
	}

	e.archive(match, winnerID, leaver, model.ReasonDisconnect)
	e.logger.Info("match forfeited",
		slog.Int64("match_id", int64(match.ID)),
		slog.String("leaver_id", string(leaver)))
}

// Join puts a player into matchmaking. If a live player is already waiting
// the two are paired immediately; otherwise the joiner takes the slot. A
// join while already inside a live match is ignored.
func (e *Engine) Join(id model.PlayerID, nickname string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	player, ok := e.players[id]
	if !ok {
		return
	}

	player.Nickname = sanitizeNickname(nickname, id, e.cfg.MaxNicknameLength)

	if player.InMatch() {
		if match, ok := e.matches[*player.MatchID]; ok && match.Live() {
			e.logger.Warn("join ignored, player already in match",
				slog.String("player_id", string(id)),
				slog.Int64("match_id", int64(match.ID)))
			return
		}
		player.MatchID = nil
	}

	if e.waiting != "" && e.waiting != id {
		opponent, ok := e.players[e.waiting]
		if ok && e.sender.IsConnected(opponent.ID) {
			e.waiting = ""
			e.createMatch(opponent, player)
			return
		}
		// Stale occupant: connection already gone, evict silently
		e.logger.Warn("discarding stale waiting player",
			slog.String("player_id", string(e.waiting)))
		e.waiting = ""
	}

	e.waiting = id
	e.logger.Info("player waiting for opponent",
		slog.String("player_id", string(id)),
		slog.String("nickname", player.Nickname))
	e.send(id, model.Event{
		Type:    model.EventWaiting,
		Payload: model.WaitingPayload{Message: "Waiting for another player..."},
	})
}

// createMatch allocates a match for the pair and starts the first round.
// mu must be held.
func (e *Engine) createMatch(player1, player2 *model.Player) {
	match := &model.Match{
		ID:        e.nextMatchID,
		Player1ID: player1.ID,
		Player2ID: player2.ID,
		Status:    model.MatchStatusWaiting,
		CreatedAt: e.clock.Now(),
	}
	e.nextMatchID++
	e.matches[match.ID] = match

	mid1, mid2 := match.ID, match.ID
	player1.MatchID = &mid1
	player2.MatchID = &mid2

	e.logger.Info("match created",
		slog.Int64("match_id", int64(match.ID)),
		slog.String("player1_id", string(player1.ID)),
		slog.String("player2_id", string(player2.ID)))

	e.startMatch(match)
}

// Stats is a point-in-time snapshot for the health endpoint
type Stats struct {
	ConnectedPlayers int  `json:"connected_players"`
	LiveMatches      int  `json:"live_matches"`
	TotalMatches     int  `json:"total_matches"`
	PlayerWaiting    bool `json:"player_waiting"`
}

// Stats reports the current registry sizes
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	live := 0
	for _, m := range e.matches {
		if m.Live() {
			live++
		}
	}
	return Stats{
		ConnectedPlayers: len(e.players),
		LiveMatches:      live,
		TotalMatches:     len(e.matches),
		PlayerWaiting:    e.waiting != "",
	}
}

// send delivers one event, logging failures. mu must be held (the sender
// never calls back into the engine).
func (e *Engine) send(id model.PlayerID, event model.Event) {
	if err := e.sender.Send(id, event); err != nil {
		e.logger.Warn("failed to send event",
			slog.String("player_id", string(id)),
			slog.String("event_type", string(event.Type)),
			slog.String("error", err.Error()))
	}
}

// broadcast sends one event to both participants of a match. mu must be held.
func (e *Engine) broadcast(match *model.Match, event model.Event) {
	e.send(match.Player1ID, event)
	e.send(match.Player2ID, event)
}

// archive persists a summary of a finished match. Failures are logged; the
// archive is best-effort and never blocks gameplay.
func (e *Engine) archive(match *model.Match, winnerID, loserID model.PlayerID, reason model.GameOverReason) {
	summary := &model.MatchSummary{
		MatchID:  match.ID,
		WinnerID: winnerID,
		LoserID:  loserID,
		Reason:   reason,
		EndedAt:  match.EndedAt,
	}
	if p, ok := e.players[match.Player1ID]; ok {
		summary.Player1Nickname = p.Nickname
	}
	if p, ok := e.players[match.Player2ID]; ok {
		summary.Player2Nickname = p.Nickname
	}
	for _, entry := range match.WordHistory {
		if entry.Valid {
			summary.WordsPlayed++
		}
	}

	if err := e.store.SaveMatchSummary(context.Background(), summary); err != nil {
		e.logger.Error("failed to archive match summary",
			slog.Int64("match_id", int64(match.ID)),
			slog.String("error", err.Error()))
	}
}

// liveMatchFor returns the playing match the player is inside, or nil
func (e *Engine) liveMatchFor(player *model.Player) *model.Match {
	if player.MatchID == nil {
		return nil
	}
	match, ok := e.matches[*player.MatchID]
	if !ok || match.Status != model.MatchStatusPlaying {
		return nil
	}
	return match
}

func sanitizeNickname(raw string, id model.PlayerID, max int) string {
	nick := strings.TrimSpace(raw)
	if runes := []rune(nick); len(runes) > max {
		nick = strings.TrimSpace(string(runes[:max]))
	}
	if nick == "" {
		nick = "Anon_" + idSuffix(id)
	}
	return nick
}

func idSuffix(id model.PlayerID) string {
	s := string(id)
	if len(s) <= 4 {
		return s
	}
	return s[len(s)-4:]
}
