package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printHealthResult(v)
	case MatchList:
		o.printMatchList(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type (matches API)
type HealthResult struct {
	Status           string `json:"status"`
	DictionaryWords  int    `json:"dictionary_words"`
	ConnectedPlayers int    `json:"connected_players"`
	LiveMatches      int    `json:"live_matches"`
	PlayerWaiting    bool   `json:"player_waiting"`
}

// MatchSummary response type
type MatchSummary struct {
	MatchID         int64     `json:"match_id"`
	Player1Nickname string    `json:"player1_nickname"`
	Player2Nickname string    `json:"player2_nickname"`
	WinnerID        string    `json:"winner_id"`
	LoserID         string    `json:"loser_id"`
	Reason          string    `json:"reason"`
	WordsPlayed     int       `json:"words_played"`
	EndedAt         time.Time `json:"ended_at"`
}

// MatchList response type
type MatchList struct {
	Matches []MatchSummary `json:"matches"`
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Dictionary Words: %d\n", h.DictionaryWords)
	fmt.Printf("Connected Players: %d\n", h.ConnectedPlayers)
	fmt.Printf("Live Matches: %d\n", h.LiveMatches)
	waitingStr := "no"
	if h.PlayerWaiting {
		waitingStr = "yes"
	}
	fmt.Printf("Player Waiting: %s\n", waitingStr)
}

func (o *Output) printMatchList(l MatchList) {
	if len(l.Matches) == 0 {
		fmt.Println("No finished matches")
		return
	}
	fmt.Printf("Matches (%d):\n", len(l.Matches))
	for _, m := range l.Matches {
		fmt.Printf("  #%d %s vs %s - winner %s (%s), %d words, ended %s\n",
			m.MatchID, m.Player1Nickname, m.Player2Nickname,
			m.WinnerID, m.Reason, m.WordsPlayed,
			m.EndedAt.Format(time.RFC3339))
	}
}
