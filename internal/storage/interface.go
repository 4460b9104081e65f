package storage

import (
	"context"

	"github.com/wordsiege/wordsiege-go/internal/model"
)

// Storage defines the interface for data that outlives a single match.
// Live match and player state is deliberately kept out of here: the
// engine owns it in memory and loses it on restart.
type Storage interface {
	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error

	// Match archive operations
	SaveMatchSummary(ctx context.Context, summary *model.MatchSummary) error
	// ListMatchSummaries returns the most recent summaries, newest first
	ListMatchSummaries(ctx context.Context, limit int) ([]*model.MatchSummary, error)
}
