package repository

import (
	"context"
	"sort"
	"sync"
)

// defaultMaxLimit caps TopN queries.
const defaultMaxLimit = 100

// Standings is an in-memory Store sized for one batch result. Load replaces
// the whole table atomically; reads are cheap slice/map lookups. Safe for
// concurrent readers under the serve command.
type Standings struct {
	mu       sync.RWMutex
	ranked   []Entry
	byKey    map[string]int // key -> index into ranked
	maxLimit int
}

// NewStandings creates an empty standings store.
func NewStandings(_ context.Context, opts ...Option) *Standings {
	s := &Standings{
		byKey:    make(map[string]int),
		maxLimit: defaultMaxLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the store contents. Ranks are assigned 1-based after
// sorting by rating descending, key ascending.
func (s *Standings) Load(_ context.Context, entries []Entry) error {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].Key < ranked[j].Key
	})

	byKey := make(map[string]int, len(ranked))
	for i := range ranked {
		ranked[i].Rank = i + 1
		byKey[ranked[i].Key] = i
	}

	s.mu.Lock()
	s.ranked = ranked
	s.byKey = byKey
	s.mu.Unlock()
	return nil
}

// Rank returns the entry for a competitor key.
func (s *Standings) Rank(_ context.Context, key string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byKey[key]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return s.ranked[i], nil
}

// TopN returns the first n entries. n must be positive; values above the
// configured cap or the table size are truncated.
func (s *Standings) TopN(_ context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}
	if n > s.maxLimit {
		n = s.maxLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.ranked) {
		n = len(s.ranked)
	}
	out := make([]Entry, n)
	copy(out, s.ranked[:n])
	return out, nil
}

// Count returns the number of competitors tracked.
func (s *Standings) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ranked)
}
