package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wordsiege/wordsiege-go/internal/model"
	"github.com/wordsiege/wordsiege-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	data, err := s.client.Get(ctx, dictionaryKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDictionaryNotLoaded
		}
		return nil, err
	}

	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, err
	}
	return words, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	data, err := json.Marshal(words)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, dictionaryKey(), data, s.cfg.DictionaryTTL).Err()
}

// Match archive operations

func (s *Storage) SaveMatchSummary(ctx context.Context, summary *model.MatchSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	limit := s.cfg.SummaryLimit
	if limit <= 0 {
		limit = 100
	}

	// Push newest to the head and trim, atomically
	pipe := s.client.Pipeline()
	pipe.LPush(ctx, summariesKey(), data)
	pipe.LTrim(ctx, summariesKey(), 0, int64(limit-1))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListMatchSummaries(ctx context.Context, limit int) ([]*model.MatchSummary, error) {
	if limit <= 0 {
		limit = s.cfg.SummaryLimit
	}
	if limit <= 0 {
		limit = 100
	}

	items, err := s.client.LRange(ctx, summariesKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]*model.MatchSummary, 0, len(items))
	for _, item := range items {
		var summary model.MatchSummary
		if err := json.Unmarshal([]byte(item), &summary); err != nil {
			return nil, err
		}
		summaries = append(summaries, &summary)
	}
	return summaries, nil
}
