package ws

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wordsiege/wordsiege-go/internal/model"
)

// Game is the subset of engine behaviour the transport drives
type Game interface {
	Connect(id model.PlayerID)
	Disconnect(id model.PlayerID)
	Join(id model.PlayerID, nickname string)
	SubmitWord(id model.PlayerID, word string)
	CastleHit(reporterID, attackerID model.PlayerID, soldierCount int)
}

// Hub owns the live websocket connections, keyed by ephemeral player id.
// It satisfies the engine's Sender interface: Send marshals an event onto
// the client's buffered channel and reports (but does not retry) drops.
type Hub struct {
	game     Game
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[model.PlayerID]*client
}

// NewHub creates a hub with no game bound yet
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With(slog.String("component", "ws")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The game carries no credentials or privileged state, so any
			// origin may connect
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[model.PlayerID]*client),
	}
}

// Bind attaches the game the hub forwards messages to. Must be called
// before serving; the hub and engine reference each other, so one side has
// to be wired after construction.
func (h *Hub) Bind(game Game) {
	h.game = game
}

// HandleWS upgrades the request and runs the connection until it drops
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	id := model.PlayerID(uuid.NewString())
	c := newClient(id, conn, h)

	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()

	h.game.Connect(id)

	go c.writePump()
	go c.readPump()
}

// Send implements the engine's outbound channel. A full buffer drops the
// event rather than blocking the engine.
func (h *Hub) Send(id model.PlayerID, event model.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling %s event: %w", event.Type, err)
	}

	// The send stays under the mutex so it cannot race with remove
	// closing the channel
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return fmt.Errorf("player %s not connected", id)
	}

	select {
	case c.send <- data:
		return nil
	default:
		return fmt.Errorf("player %s send buffer full, dropping %s", id, event.Type)
	}
}

// IsConnected reports whether the player still has a registered connection
func (h *Hub) IsConnected(id model.PlayerID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.clients[id]
	return ok
}

// ClientCount returns the number of registered connections
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// remove drops the client from the registry, closes its outbound channel
// and tells the game. Safe to call more than once per connection.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	registered := h.clients[c.id] == c
	if registered {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()

	if registered {
		h.game.Disconnect(c.id)
	}
}

// dispatch decodes one inbound frame and routes it to the game
func (h *Hub) dispatch(id model.PlayerID, data []byte) {
	msg, err := parseMessage(data)
	if err != nil {
		h.logger.Warn("dropping inbound message",
			slog.String("player_id", string(id)),
			slog.String("error", err.Error()))
		return
	}

	switch msg.Type {
	case model.IntentJoin:
		var payload model.JoinIntent
		if err := decodePayload(msg, &payload); err != nil {
			h.logger.Warn("dropping join", slog.String("error", err.Error()))
			return
		}
		h.game.Join(id, payload.Nickname)

	case model.IntentSubmitWord:
		var payload model.SubmitWordIntent
		if err := decodePayload(msg, &payload); err != nil {
			h.logger.Warn("dropping submitWord", slog.String("error", err.Error()))
			return
		}
		h.game.SubmitWord(id, payload.Word)

	case model.IntentCastleHit:
		var payload model.CastleHitIntent
		if err := decodePayload(msg, &payload); err != nil {
			h.logger.Warn("dropping castleHit", slog.String("error", err.Error()))
			return
		}
		if payload.SoldierCount <= 0 {
			h.logger.Warn("dropping castleHit with non-positive soldier count",
				slog.String("player_id", string(id)),
				slog.Int("soldier_count", payload.SoldierCount))
			return
		}
		h.game.CastleHit(id, payload.AttackingPlayerID, payload.SoldierCount)

	default:
		h.logger.Warn("unknown message type",
			slog.String("player_id", string(id)),
			slog.String("type", string(msg.Type)))
	}
}
