// Package repository defines the standings store interface and errors. A
// standings store holds one batch result (current ratings or peak ratings)
// and answers ranked read queries for the serve command.
package repository

import "context"

// Entry represents one standings row.
type Entry struct {
	Rank   int
	Key    string
	Name   string
	Rating float64
	Fights int
	Wins   int
	Losses int
	Draws  int
}

// Store provides read access to one computed standings table.
type Store interface {
	// Load replaces the store contents with the given entries. Entries are
	// re-ranked by rating descending, key ascending.
	Load(ctx context.Context, entries []Entry) error

	// Rank returns the entry for a competitor key.
	// Returns ErrNotFound if the competitor is unknown.
	Rank(ctx context.Context, key string) (Entry, error)

	// TopN returns the top-N entries ordered by rating descending.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of competitors tracked.
	Count(ctx context.Context) int
}
