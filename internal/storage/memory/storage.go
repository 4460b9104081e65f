package memory

import (
	"context"
	"sync"

	"github.com/wordsiege/wordsiege-go/internal/model"
	"github.com/wordsiege/wordsiege-go/internal/storage"
)

// maxSummaries bounds the archive so a long-lived process cannot grow
// without limit
const maxSummaries = 100

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	dictionaryWords []string
	summaries       []*model.MatchSummary // newest first
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(s.dictionaryWords))
	copy(result, s.dictionaryWords)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}

// Match archive operations

func (s *Storage) SaveMatchSummary(ctx context.Context, summary *model.MatchSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *summary
	s.summaries = append([]*model.MatchSummary{&copied}, s.summaries...)
	if len(s.summaries) > maxSummaries {
		s.summaries = s.summaries[:maxSummaries]
	}
	return nil
}

func (s *Storage) ListMatchSummaries(ctx context.Context, limit int) ([]*model.MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.summaries) {
		limit = len(s.summaries)
	}
	result := make([]*model.MatchSummary, limit)
	for i := 0; i < limit; i++ {
		copied := *s.summaries[i]
		result[i] = &copied
	}
	return result, nil
}
