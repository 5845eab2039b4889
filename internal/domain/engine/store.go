package engine

// Store maps competitor keys to their current rating. Entries materialize
// lazily at the base rating on first read, so no registration step exists.
// A Store is owned by a single Engine run and must not outlive it; separate
// runs (for example backtests with different K) get independent stores.
type Store struct {
	base    float64
	ratings map[string]float64
}

// NewStore creates an empty store whose entries start at base.
func NewStore(base float64) *Store {
	return &Store{base: base, ratings: make(map[string]float64)}
}

// Rating returns the competitor's current rating, inserting the base rating
// on first reference. Repeat calls reuse the existing entry.
func (s *Store) Rating(key string) float64 {
	r, ok := s.ratings[key]
	if !ok {
		s.ratings[key] = s.base
		return s.base
	}
	return r
}

// Replace installs both competitors' post-bout ratings. Both sides change
// together so no reader can observe one side updated without the other.
func (s *Store) Replace(keyA, keyB string, ratingA, ratingB float64) {
	s.ratings[keyA] = ratingA
	s.ratings[keyB] = ratingB
}

// Len returns the number of competitors seen so far.
func (s *Store) Len() int {
	return len(s.ratings)
}

// Each calls fn for every competitor currently in the store. Iteration order
// is unspecified; callers needing determinism must sort.
func (s *Store) Each(fn func(key string, rating float64)) {
	for k, r := range s.ratings {
		fn(k, r)
	}
}
