// Package model contains domain models passed between pipeline stages.
package model

import "time"

// Bout is a single contest between two competitors as produced by ingestion.
// A zero Date means the bout's date could not be resolved; such bouts are
// still processed but sort after dated bouts and do not advance first/last
// seen bookkeeping.
type Bout struct {
	Date  time.Time
	Event string
	Label string // original bout label, e.g. "A vs. B"

	// Stable competitor keys: canonical URL when available, otherwise the
	// lowercase-normalized name. Identity resolution happens upstream.
	KeyA string
	KeyB string

	// Display names with original casing preserved.
	NameA string
	NameB string

	Outcome Outcome

	// Free-text fields carried for classification and audit.
	Method     string
	Details    string // judge scorecard text, zero or more score pairs
	TimeFormat string

	ScheduledRounds int

	// Pass-through metadata echoed into the audit ledger.
	Weightclass string
	Referee     string
	URL         string
}
