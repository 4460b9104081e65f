package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordsiege/wordsiege-go/internal/dependencies/mocks"
	"github.com/wordsiege/wordsiege-go/internal/dependencies/random"
	"github.com/wordsiege/wordsiege-go/internal/model"
	"github.com/wordsiege/wordsiege-go/internal/services/dictionary"
	"github.com/wordsiege/wordsiege-go/internal/services/rack"
	"github.com/wordsiege/wordsiege-go/internal/services/scoring"
	"github.com/wordsiege/wordsiege-go/internal/storage/memory"
	"github.com/wordsiege/wordsiege-go/internal/testutil"
)

// fakeSender records every event per player and lets tests simulate a
// silently dead connection
type fakeSender struct {
	mu     sync.Mutex
	events map[model.PlayerID][]model.Event
	dead   map[model.PlayerID]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		events: make(map[model.PlayerID][]model.Event),
		dead:   make(map[model.PlayerID]bool),
	}
}

func (s *fakeSender) Send(id model.PlayerID, event model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dead[id] {
		return fmt.Errorf("player %s not connected", id)
	}
	s.events[id] = append(s.events[id], event)
	return nil
}

func (s *fakeSender) IsConnected(id model.PlayerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.dead[id]
}

func (s *fakeSender) markDead(id model.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dead[id] = true
}

func (s *fakeSender) eventsOfType(id model.PlayerID, t model.EventType) []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Event
	for _, ev := range s.events[id] {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func (s *fakeSender) lastOfType(id model.PlayerID, t model.EventType) (model.Event, bool) {
	evs := s.eventsOfType(id, t)
	if len(evs) == 0 {
		return model.Event{}, false
	}
	return evs[len(evs)-1], true
}

type EngineSuite struct {
	suite.Suite
	engine  *Engine
	sender  *fakeSender
	clock   *mocks.MockClock
	storage *memory.Storage
	cfg     Config
	ctx     context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.ctx = context.Background()
	s.storage = memory.New()
	s.sender = newFakeSender()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.cfg = DefaultConfig()

	dict := dictionary.New(s.storage, logger)
	s.Require().NoError(dict.LoadWords([]string{
		"aab", "aaa", "cab", "bat", "castle", "battle", "fortress",
	}))

	s.engine = New(
		s.cfg,
		s.sender,
		s.storage,
		dict,
		rack.New(random.New(), logger),
		scoring.New(),
		s.clock,
		logger,
	)
}

// pairPlayers connects and joins two players, returning their ids after the
// match has started
func (s *EngineSuite) pairPlayers() (model.PlayerID, model.PlayerID) {
	p1 := model.PlayerID("player-one-aaaa")
	p2 := model.PlayerID("player-two-bbbb")
	s.engine.Connect(p1)
	s.engine.Connect(p2)
	s.engine.Join(p1, "Alice")
	s.engine.Join(p2, "Bob")
	return p1, p2
}

func (s *EngineSuite) setLetters(id model.PlayerID, letters ...string) {
	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()
	s.engine.players[id].Letters = letters
}

func (s *EngineSuite) TestConnectSendsConnected() {
	id := model.PlayerID("p1")
	s.engine.Connect(id)

	ev, ok := s.sender.lastOfType(id, model.EventConnected)
	s.Require().True(ok)
	s.Equal(id, ev.Payload.(model.ConnectedPayload).PlayerID)
	s.Equal(1, s.engine.Stats().ConnectedPlayers)
}

func (s *EngineSuite) TestFirstJoinParksInWaitingSlot() {
	id := model.PlayerID("p1")
	s.engine.Connect(id)
	s.engine.Join(id, "Alice")

	_, ok := s.sender.lastOfType(id, model.EventWaiting)
	s.True(ok)
	s.True(s.engine.Stats().PlayerWaiting)
	s.Equal(0, s.engine.Stats().LiveMatches)
}

func (s *EngineSuite) TestSecondJoinStartsMatch() {
	p1, p2 := s.pairPlayers()

	for _, id := range []model.PlayerID{p1, p2} {
		ev, ok := s.sender.lastOfType(id, model.EventGameStart)
		s.Require().True(ok, "no gameStart for %s", id)
		payload := ev.Payload.(model.GameStartPayload)
		s.Equal(s.cfg.StartingHP, payload.Player1.HP)
		s.Equal(s.cfg.StartingHP, payload.Player2.HP)
		s.Equal("Alice", payload.Player1.Nickname)
		s.Equal("Bob", payload.Player2.Nickname)
		s.Equal(s.cfg.RoundDuration.Milliseconds(), payload.RoundMillis)

		rackEv, ok := s.sender.lastOfType(id, model.EventRack)
		s.Require().True(ok)
		s.Len(rackEv.Payload.(model.RackPayload).Letters, s.cfg.RackSize)
	}

	stats := s.engine.Stats()
	s.Equal(1, stats.LiveMatches)
	s.False(stats.PlayerWaiting)
	s.Equal(1, s.clock.PendingTimers())
}

func (s *EngineSuite) TestJoinWhileInMatchIgnored() {
	p1, _ := s.pairPlayers()
	before := s.engine.Stats()

	s.engine.Join(p1, "AliceAgain")

	s.Equal(before, s.engine.Stats())
	s.Empty(s.sender.eventsOfType(p1, model.EventWaiting))
}

func (s *EngineSuite) TestRejoinWhileWaitingReparks() {
	id := model.PlayerID("p1")
	s.engine.Connect(id)
	s.engine.Join(id, "Alice")
	s.engine.Join(id, "Alice")

	s.Len(s.sender.eventsOfType(id, model.EventWaiting), 2)
	s.True(s.engine.Stats().PlayerWaiting)
	s.Equal(0, s.engine.Stats().LiveMatches)
}

func (s *EngineSuite) TestStaleWaitingPlayerDiscarded() {
	p1 := model.PlayerID("p1")
	p2 := model.PlayerID("p2")
	s.engine.Connect(p1)
	s.engine.Join(p1, "Ghost")
	s.sender.markDead(p1)

	s.engine.Connect(p2)
	s.engine.Join(p2, "Bob")

	// p2 takes the slot instead of being paired with a dead connection
	s.Equal(0, s.engine.Stats().LiveMatches)
	_, ok := s.sender.lastOfType(p2, model.EventWaiting)
	s.True(ok)
}

func (s *EngineSuite) TestSubmitWordConsumesRackDuplicates() {
	p1, p2 := s.pairPlayers()
	s.setLetters(p1, "A", "A", "B")

	s.engine.SubmitWord(p1, "aab")

	ev, ok := s.sender.lastOfType(p1, model.EventWordResult)
	s.Require().True(ok)
	payload := ev.Payload.(model.WordResultPayload)
	s.True(payload.Valid)
	s.Equal("AAB", payload.Word)
	s.Equal(1, payload.SoldierCount)
	s.Len(payload.NewLetters, s.cfg.RackSize)

	// Opponent sees the result without the private rack
	oppEv, ok := s.sender.lastOfType(p2, model.EventWordResult)
	s.Require().True(ok)
	s.True(oppEv.Payload.(model.WordResultPayload).Valid)
	s.Nil(oppEv.Payload.(model.WordResultPayload).NewLetters)
}

func (s *EngineSuite) TestSubmitWordRejectsMissingDuplicate() {
	p1, _ := s.pairPlayers()
	s.setLetters(p1, "A", "A", "B")

	// AAA needs three A letters but the rack holds two
	s.engine.SubmitWord(p1, "aaa")

	ev, ok := s.sender.lastOfType(p1, model.EventWordResult)
	s.Require().True(ok)
	s.False(ev.Payload.(model.WordResultPayload).Valid)
}

func (s *EngineSuite) TestSubmitWordRejectsNonDictionaryWord() {
	p1, _ := s.pairPlayers()
	s.setLetters(p1, "Z", "Z", "Z")

	s.engine.SubmitWord(p1, "zzz")

	ev, ok := s.sender.lastOfType(p1, model.EventWordResult)
	s.Require().True(ok)
	s.False(ev.Payload.(model.WordResultPayload).Valid)
}

func (s *EngineSuite) TestSubmitWordRejectsTooShort() {
	p1, _ := s.pairPlayers()
	s.setLetters(p1, "A", "B")

	s.engine.SubmitWord(p1, "ab")

	ev, ok := s.sender.lastOfType(p1, model.EventWordResult)
	s.Require().True(ok)
	s.False(ev.Payload.(model.WordResultPayload).Valid)
}

func (s *EngineSuite) TestBlankSubmissionSkipsHistory() {
	p1, p2 := s.pairPlayers()

	s.engine.SubmitWord(p1, "   ")

	ev, ok := s.sender.lastOfType(p1, model.EventWordResult)
	s.Require().True(ok)
	s.False(ev.Payload.(model.WordResultPayload).Valid)
	s.Empty(s.sender.eventsOfType(p1, model.EventUpdateWordHistory))
	s.Empty(s.sender.eventsOfType(p2, model.EventUpdateWordHistory))
}

func (s *EngineSuite) TestInvalidWordRecordedInHistory() {
	p1, p2 := s.pairPlayers()
	s.setLetters(p1, "Z", "Z", "Z")

	s.engine.SubmitWord(p1, "zzz")

	for _, id := range []model.PlayerID{p1, p2} {
		ev, ok := s.sender.lastOfType(id, model.EventUpdateWordHistory)
		s.Require().True(ok)
		history := ev.Payload.(model.WordHistoryPayload).History
		s.Require().Len(history, 1)
		s.Equal("ZZZ", history[0].Word)
		s.False(history[0].Valid)
	}
}

func (s *EngineSuite) TestHistoryCapped() {
	s.engine.cfg.HistoryCap = 3

	p1, _ := s.pairPlayers()
	for i := 0; i < 5; i++ {
		s.setLetters(p1, "Z", "Z", "Z")
		s.engine.SubmitWord(p1, "zzz")
	}

	ev, ok := s.sender.lastOfType(p1, model.EventUpdateWordHistory)
	s.Require().True(ok)
	s.Len(ev.Payload.(model.WordHistoryPayload).History, 3)
}

func (s *EngineSuite) TestSubmitWordOutsideMatchDropped() {
	id := model.PlayerID("loner")
	s.engine.Connect(id)

	s.engine.SubmitWord(id, "cab")

	s.Empty(s.sender.eventsOfType(id, model.EventWordResult))
}

func (s *EngineSuite) TestCastleHitReducesHP() {
	p1, p2 := s.pairPlayers()

	s.engine.CastleHit(p1, p1, 30)

	for _, id := range []model.PlayerID{p1, p2} {
		ev, ok := s.sender.lastOfType(id, model.EventUpdateHP)
		s.Require().True(ok)
		payload := ev.Payload.(model.UpdateHPPayload)
		s.Equal(p2, payload.PlayerID)
		s.Equal(70, payload.HP)
		s.Equal(p1, payload.AttackerID)
	}
	s.Equal(1, s.engine.Stats().LiveMatches)
}

func (s *EngineSuite) TestCastleHitOverkillClampsToZero() {
	p1, p2 := s.pairPlayers()

	s.engine.CastleHit(p1, p1, 250)

	ev, ok := s.sender.lastOfType(p1, model.EventUpdateHP)
	s.Require().True(ok)
	s.Equal(0, ev.Payload.(model.UpdateHPPayload).HP)

	over, ok := s.sender.lastOfType(p2, model.EventGameOver)
	s.Require().True(ok)
	payload := over.Payload.(model.GameOverPayload)
	s.Equal(p1, payload.WinnerID)
	s.Equal(p2, payload.LoserID)
	s.Equal(model.ReasonCombat, payload.Reason)
}

func (s *EngineSuite) TestGameOverFiresExactlyOnce() {
	p1, p2 := s.pairPlayers()

	s.engine.CastleHit(p1, p1, 100)
	// Duplicate report after the castle already fell
	s.engine.CastleHit(p1, p1, 100)

	s.Len(s.sender.eventsOfType(p1, model.EventGameOver), 1)
	s.Len(s.sender.eventsOfType(p2, model.EventGameOver), 1)
	s.Len(s.sender.eventsOfType(p1, model.EventUpdateHP), 1)
	s.Equal(0, s.engine.Stats().LiveMatches)
}

func (s *EngineSuite) TestCastleHitIgnoresNonPositiveCount() {
	p1, _ := s.pairPlayers()

	s.engine.CastleHit(p1, p1, 0)
	s.engine.CastleHit(p1, p1, -5)

	s.Empty(s.sender.eventsOfType(p1, model.EventUpdateHP))
}

func (s *EngineSuite) TestCombatArchivesSummary() {
	p1, p2 := s.pairPlayers()
	s.setLetters(p1, "C", "A", "B")
	s.engine.SubmitWord(p1, "cab")

	s.engine.CastleHit(p1, p1, 100)

	summaries, err := s.storage.ListMatchSummaries(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Equal(p1, summaries[0].WinnerID)
	s.Equal(p2, summaries[0].LoserID)
	s.Equal(model.ReasonCombat, summaries[0].Reason)
	s.Equal(1, summaries[0].WordsPlayed)
}

func (s *EngineSuite) TestDisconnectForfeitsMatch() {
	p1, p2 := s.pairPlayers()

	s.engine.Disconnect(p1)

	_, ok := s.sender.lastOfType(p2, model.EventOpponentLeft)
	s.True(ok)
	over, ok := s.sender.lastOfType(p2, model.EventGameOver)
	s.Require().True(ok)
	payload := over.Payload.(model.GameOverPayload)
	s.Equal(p2, payload.WinnerID)
	s.Equal(model.ReasonDisconnect, payload.Reason)

	stats := s.engine.Stats()
	s.Equal(1, stats.ConnectedPlayers)
	s.Equal(0, stats.LiveMatches)

	summaries, err := s.storage.ListMatchSummaries(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Equal(model.ReasonDisconnect, summaries[0].Reason)
}

func (s *EngineSuite) TestDisconnectFreesWaitingSlot() {
	id := model.PlayerID("p1")
	s.engine.Connect(id)
	s.engine.Join(id, "Alice")

	s.engine.Disconnect(id)

	s.False(s.engine.Stats().PlayerWaiting)
}

func (s *EngineSuite) TestRoundTimerReissuesRacks() {
	p1, p2 := s.pairPlayers()

	s.clock.Advance(s.cfg.RoundDuration)

	for _, id := range []model.PlayerID{p1, p2} {
		ev, ok := s.sender.lastOfType(id, model.EventNewRound)
		s.Require().True(ok)
		s.Equal(s.cfg.RoundDuration.Milliseconds(),
			ev.Payload.(model.NewRoundPayload).RoundMillis)
		s.Len(s.sender.eventsOfType(id, model.EventRack), 2)
	}
	// Timer is re-armed for the next round
	s.Equal(1, s.clock.PendingTimers())
}

func (s *EngineSuite) TestRoundTimerAfterGameOverIsNoOp() {
	p1, p2 := s.pairPlayers()
	s.engine.CastleHit(p1, p1, 100)

	s.clock.Advance(s.cfg.RoundDuration * 2)

	s.Empty(s.sender.eventsOfType(p1, model.EventNewRound))
	s.Empty(s.sender.eventsOfType(p2, model.EventNewRound))
	s.Equal(0, s.clock.PendingTimers())
}

func (s *EngineSuite) TestSweepRemovesExpiredEndedMatches() {
	p1, _ := s.pairPlayers()
	s.engine.CastleHit(p1, p1, 100)

	s.Equal(0, s.engine.Sweep(s.clock.Now()))
	s.Equal(1, s.engine.Stats().TotalMatches)

	s.Equal(1, s.engine.Sweep(s.clock.Now().Add(s.cfg.EndedMatchTTL+time.Minute)))
	s.Equal(0, s.engine.Stats().TotalMatches)
}

func (s *EngineSuite) TestSweepEvictsDeadWaitingPlayer() {
	id := model.PlayerID("p1")
	s.engine.Connect(id)
	s.engine.Join(id, "Ghost")
	s.sender.markDead(id)

	s.engine.Sweep(s.clock.Now())

	s.False(s.engine.Stats().PlayerWaiting)
}

func (s *EngineSuite) TestNicknameSanitized() {
	p1 := model.PlayerID("player-one-aaaa")
	p2 := model.PlayerID("player-two-bbbb")
	s.engine.Connect(p1)
	s.engine.Connect(p2)
	s.engine.Join(p1, "  AVeryLongNicknameIndeed  ")
	s.engine.Join(p2, "   ")

	ev, ok := s.sender.lastOfType(p1, model.EventGameStart)
	s.Require().True(ok)
	payload := ev.Payload.(model.GameStartPayload)
	s.Equal("AVeryLongNic", payload.Player1.Nickname)
	s.Equal("Anon_bbbb", payload.Player2.Nickname)
}
