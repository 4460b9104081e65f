package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/wordsiege/wordsiege-go/internal/model"
)

// serverEvent mirrors the outbound wire envelope with the payload left raw
// so it can be decoded per type
type serverEvent struct {
	Type    model.EventType `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type clientMessage struct {
	Type    model.IntentType `json:"type"`
	Payload any              `json:"payload,omitempty"`
}

func newPlayCmd() *cobra.Command {
	var nickname string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a match interactively",
		Long: `play connects to the server, joins matchmaking and plays a match.

Type a word and press enter to submit it. Soldiers from valid words are
reported as castle hits automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(client.BaseURL(), nickname)
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "Nickname to play under")

	return cmd
}

func runPlay(baseURL, nickname string) error {
	wsURL, err := websocketURL(baseURL)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}
	defer conn.Close()

	session := &playSession{conn: conn}

	if err := session.send(clientMessage{
		Type:    model.IntentJoin,
		Payload: model.JoinIntent{Nickname: nickname},
	}); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- session.readLoop() }()
	go session.inputLoop()

	return <-done
}

type playSession struct {
	conn *websocket.Conn
	myID model.PlayerID
}

func (s *playSession) send(msg clientMessage) error {
	if err := s.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to send %s: %w", msg.Type, err)
	}
	return nil
}

func (s *playSession) inputLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		if err := s.send(clientMessage{
			Type:    model.IntentSubmitWord,
			Payload: model.SubmitWordIntent{Word: word},
		}); err != nil {
			return
		}
	}
}

func (s *playSession) readLoop() error {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("connection closed: %w", err)
		}

		var event serverEvent
		if err := json.Unmarshal(data, &event); err != nil {
			continue
		}
		if gameOver := s.handleEvent(event); gameOver {
			return nil
		}
	}
}

// handleEvent prints one server event and reports whether the match ended
func (s *playSession) handleEvent(event serverEvent) bool {
	switch event.Type {
	case model.EventConnected:
		var p model.ConnectedPayload
		if json.Unmarshal(event.Payload, &p) == nil {
			s.myID = p.PlayerID
			fmt.Printf("Connected as %s\n", p.PlayerID)
		}

	case model.EventWaiting:
		fmt.Println("Waiting for an opponent...")

	case model.EventGameStart:
		var p model.GameStartPayload
		if json.Unmarshal(event.Payload, &p) == nil {
			fmt.Printf("Match #%d: %s vs %s (%d HP each)\n",
				p.MatchID, p.Player1.Nickname, p.Player2.Nickname, p.Player1.HP)
		}

	case model.EventRack:
		var p model.RackPayload
		if json.Unmarshal(event.Payload, &p) == nil {
			fmt.Printf("Your letters: %s\n", strings.Join(p.Letters, " "))
		}

	case model.EventNewRound:
		fmt.Println("New round!")

	case model.EventWordResult:
		var p model.WordResultPayload
		if json.Unmarshal(event.Payload, &p) != nil {
			break
		}
		if p.PlayerID != s.myID {
			if p.Valid {
				fmt.Printf("Opponent played %s (%d soldiers)\n", p.Word, p.SoldierCount)
			}
			break
		}
		if !p.Valid {
			fmt.Printf("%s is not playable\n", p.Word)
			break
		}
		fmt.Printf("%s sends %d soldiers!\n", p.Word, p.SoldierCount)
		// March the soldiers straight at the opposing castle
		_ = s.send(clientMessage{
			Type: model.IntentCastleHit,
			Payload: model.CastleHitIntent{
				AttackingPlayerID: s.myID,
				SoldierCount:      p.SoldierCount,
			},
		})

	case model.EventUpdateHP:
		var p model.UpdateHPPayload
		if json.Unmarshal(event.Payload, &p) == nil {
			whose := "Opponent's"
			if p.PlayerID == s.myID {
				whose = "Your"
			}
			fmt.Printf("%s castle at %d HP\n", whose, p.HP)
		}

	case model.EventOpponentLeft:
		var p model.OpponentLeftPayload
		if json.Unmarshal(event.Payload, &p) == nil {
			fmt.Println(p.Message)
		}

	case model.EventGameOver:
		var p model.GameOverPayload
		if json.Unmarshal(event.Payload, &p) == nil {
			if p.WinnerID == s.myID {
				fmt.Printf("You win! (%s)\n", p.Reason)
			} else {
				fmt.Printf("You lose (%s)\n", p.Reason)
			}
		}
		return true
	}
	return false
}

// websocketURL converts the configured HTTP base URL into the ws endpoint
func websocketURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", baseURL, err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = "/ws"
	return u.String(), nil
}
