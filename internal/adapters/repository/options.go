package repository

// Option applies a configuration option to the Standings store.
type Option func(*Standings)

// WithMaxLimit caps the n accepted by TopN. Requests above the cap are
// truncated rather than rejected.
func WithMaxLimit(n int) Option {
	return func(s *Standings) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}
