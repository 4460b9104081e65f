package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordsiege/wordsiege-go/internal/api/response"
	"github.com/wordsiege/wordsiege-go/internal/dependencies/clock"
	"github.com/wordsiege/wordsiege-go/internal/dependencies/random"
	"github.com/wordsiege/wordsiege-go/internal/engine"
	"github.com/wordsiege/wordsiege-go/internal/model"
	"github.com/wordsiege/wordsiege-go/internal/services/dictionary"
	"github.com/wordsiege/wordsiege-go/internal/services/rack"
	"github.com/wordsiege/wordsiege-go/internal/services/scoring"
	"github.com/wordsiege/wordsiege-go/internal/storage/memory"
	"github.com/wordsiege/wordsiege-go/internal/testutil"
	"github.com/wordsiege/wordsiege-go/internal/ws"
)

type APISuite struct {
	suite.Suite
	router  http.Handler
	storage *memory.Storage
	ctx     context.Context
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	logger := testutil.NopLogger()
	s.ctx = context.Background()
	s.storage = memory.New()

	dict := dictionary.New(s.storage, logger)
	s.Require().NoError(dict.LoadWords([]string{"castle", "siege"}))

	hub := ws.NewHub(logger)
	eng := engine.New(
		engine.DefaultConfig(),
		hub,
		s.storage,
		dict,
		rack.New(random.New(), logger),
		scoring.New(),
		clock.New(),
		logger,
	)
	hub.Bind(eng)

	s.router = NewRouter(RouterConfig{
		Logger:     logger,
		Engine:     eng,
		Dictionary: dict,
		Storage:    s.storage,
		Hub:        hub,
	})
}

func (s *APISuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) TestHealth() {
	rec := s.get("/api/v1/health")

	s.Equal(http.StatusOK, rec.Code)
	var health response.Health
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&health))
	s.Equal("ok", health.Status)
	s.Equal(2, health.DictionaryWords)
	s.Equal(0, health.ConnectedPlayers)
	s.False(health.PlayerWaiting)
}

func (s *APISuite) TestRecentMatchesEmpty() {
	rec := s.get("/api/v1/matches/recent")

	s.Equal(http.StatusOK, rec.Code)
	var list response.MatchList
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&list))
	s.Empty(list.Matches)
}

func (s *APISuite) TestRecentMatchesNewestFirst() {
	for i := 1; i <= 3; i++ {
		s.Require().NoError(s.storage.SaveMatchSummary(s.ctx, &model.MatchSummary{
			MatchID:  model.MatchID(i),
			WinnerID: "w",
			LoserID:  "l",
			Reason:   model.ReasonCombat,
			EndedAt:  time.Date(2025, 6, 1, 12, i, 0, 0, time.UTC),
		}))
	}

	rec := s.get("/api/v1/matches/recent?limit=2")

	s.Equal(http.StatusOK, rec.Code)
	var list response.MatchList
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&list))
	s.Require().Len(list.Matches, 2)
	s.Equal(int64(3), list.Matches[0].MatchID)
	s.Equal(int64(2), list.Matches[1].MatchID)
}

func (s *APISuite) TestRecentMatchesRejectsBadLimit() {
	s.Equal(http.StatusBadRequest, s.get("/api/v1/matches/recent?limit=abc").Code)
	s.Equal(http.StatusBadRequest, s.get("/api/v1/matches/recent?limit=-1").Code)
}
