package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/wordsiege/wordsiege-go/internal/dependencies/mocks"
	"github.com/wordsiege/wordsiege-go/internal/engine"
	"github.com/wordsiege/wordsiege-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app := newWithDependencies(store, mockClock, mockRandom, engine.DefaultConfig(), logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small dictionary for testing
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		"ace", "aim", "arm", "axe", "bat", "bow", "cat", "dig", "fog", "gem",
		"hit", "ice", "jab", "key", "log", "map", "net", "oak", "pit", "ram",
		"run", "sun", "tar", "urn", "van", "war", "win", "yew", "zap",
		"bolt", "dart", "fort", "gate", "helm", "keep", "lance", "mace",
		"moat", "pike", "raid", "rune", "wall", "ward", "word",
		"armor", "arrow", "siege", "spear", "sword", "tower",
		"archer", "battle", "castle", "charge", "knight", "shield",
		"cannons", "rampart", "soldier", "fortress", "garrison",
	}
	return t.DictionaryService.LoadWords(words)
}
