package scoring

import "sort"

// Band maps a minimum word length to a soldier count
type Band struct {
	MinLength int
	Soldiers  int
}

// defaultBands is the game-balance table: longer words spawn more
// soldiers. Values are tunable; monotonicity is the invariant.
var defaultBands = []Band{
	{MinLength: 8, Soldiers: 7},
	{MinLength: 6, Soldiers: 5},
	{MinLength: 5, Soldiers: 3},
	{MinLength: 3, Soldiers: 1},
}

// Service maps validated words to soldier counts
type Service struct {
	bands []Band
}

// New creates a scoring service with the default band table
func New() *Service {
	return NewWithBands(defaultBands)
}

// NewWithBands creates a scoring service with a custom band table
func NewWithBands(bands []Band) *Service {
	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinLength > sorted[j].MinLength
	})
	return &Service{bands: sorted}
}

// Soldiers returns the soldier count for a word. Words shorter than the
// lowest band (length 3 by default) score zero.
func (s *Service) Soldiers(word string) int {
	length := len([]rune(word))
	for _, b := range s.bands {
		if length >= b.MinLength {
			return b.Soldiers
		}
	}
	return 0
}

// Interface for dependency injection
type ServiceInterface interface {
	Soldiers(word string) int
}

var _ ServiceInterface = (*Service)(nil)
