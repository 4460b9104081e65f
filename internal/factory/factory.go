package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/wordsiege/wordsiege-go/internal/dependencies/clock"
	"github.com/wordsiege/wordsiege-go/internal/dependencies/random"
	"github.com/wordsiege/wordsiege-go/internal/engine"
	"github.com/wordsiege/wordsiege-go/internal/services/dictionary"
	"github.com/wordsiege/wordsiege-go/internal/services/rack"
	"github.com/wordsiege/wordsiege-go/internal/services/scoring"
	"github.com/wordsiege/wordsiege-go/internal/storage"
	"github.com/wordsiege/wordsiege-go/internal/storage/memory"
	redisstorage "github.com/wordsiege/wordsiege-go/internal/storage/redis"
	"github.com/wordsiege/wordsiege-go/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	RackService       *rack.Service
	ScoringService    *scoring.Service

	// Game coordination and transport
	Engine *engine.Engine
	Hub    *ws.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// EngineConfig holds the gameplay tuning (optional)
	// If zero value, defaults to engine.DefaultConfig()
	EngineConfig engine.Config
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	engineCfg := cfg.EngineConfig
	if engineCfg.RackSize == 0 {
		engineCfg = engine.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), engineCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, engineCfg engine.Config, logger *slog.Logger) *App {
	dictService := dictionary.New(store, logger)
	rackService := rack.New(rnd, logger)
	scoringService := scoring.New()

	hub := ws.NewHub(logger)
	eng := engine.New(engineCfg, hub, store, dictService, rackService, scoringService, clk, logger)
	// The hub forwards inbound messages to the engine; the engine sends
	// outbound events through the hub
	hub.Bind(eng)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		RackService:       rackService,
		ScoringService:    scoringService,
		Engine:            eng,
		Hub:               hub,
	}
}
