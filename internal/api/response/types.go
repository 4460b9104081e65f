package response

import (
	"time"

	"github.com/wordsiege/wordsiege-go/internal/model"
)

// Health is the health check response
type Health struct {
	Status           string `json:"status"`
	DictionaryWords  int    `json:"dictionary_words"`
	ConnectedPlayers int    `json:"connected_players"`
	LiveMatches      int    `json:"live_matches"`
	PlayerWaiting    bool   `json:"player_waiting"`
}

// MatchSummary represents a finished match in API responses
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

// MatchSummaryFromModel converts a model.MatchSummary
func MatchSummaryFromModel(s *model.MatchSummary) MatchSummary {
	return MatchSummary{
		MatchID:         int64(s.MatchID),
		Player1Nickname: s.Player1Nickname,
		Player2Nickname: s.Player2Nickname,
		WinnerID:        string(s.WinnerID),
		LoserID:         string(s.LoserID),
		Reason:          string(s.Reason),
		WordsPlayed:     s.WordsPlayed,
		EndedAt:         s.EndedAt,
	}
}

// MatchList is the recent matches response
type MatchList struct {
	Matches []MatchSummary `json:"matches"`
}

// MatchListFromModel converts a slice of model summaries
func MatchListFromModel(summaries []*model.MatchSummary) MatchList {
	out := MatchList{Matches: make([]MatchSummary, 0, len(summaries))}
	for _, s := range summaries {
		out.Matches = append(out.Matches, MatchSummaryFromModel(s))
	}
	return out
}

// Error is the error response body
type Error struct {
	Error string `json:"error"`
}
