package engine

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrEmptyCompetitor means a bout with a resolved outcome is missing a
	// competitor identifier. This is a bad-input-shape failure: the run
	// refuses to start rather than producing partial ratings.
	ErrEmptyCompetitor = errors.New("bout has an empty competitor key")
)
