// Package peak derives each competitor's highest-ever rating from the audit
// ledger.
package peak

import (
	"sort"
	"time"

	"github.com/okian/fightelo/internal/domain/engine"
)

// Record is one competitor's peak rating and the bout at which it was first
// reached.
type Record struct {
	Key    string
	Name   string
	Rating float64
	Date   time.Time
	Event  string
	Label  string
}

// appearance is one side's post-update rating at one ledger entry.
type appearance struct {
	key    string
	name   string
	rating float64
	date   time.Time
	event  string
	label  string
}

// Peaks scans every post-update rating in the ledger and returns one Record
// per competitor holding the maximum rating ever attained. Ties at the same
// rating resolve to the earliest bout date, so the result is the date the
// peak was first reached. Undated entries count as later than any dated one.
// Output is ordered by peak rating descending, then key ascending.
func Peaks(ledger engine.Ledger) []Record {
	best := make(map[string]appearance)
	// Display names follow the most recent appearance, mirroring the
	// snapshot's last-seen-name policy.
	names := make(map[string]string)

	consider := func(app appearance) {
		if app.name == "" {
			app.name = app.key
		}
		names[app.key] = app.name

		cur, ok := best[app.key]
		if !ok || app.rating > cur.rating || (app.rating == cur.rating && dateBefore(app.date, cur.date)) {
			best[app.key] = app
		}
	}

	for _, rec := range ledger {
		consider(appearance{
			key: rec.KeyA, name: rec.NameA, rating: rec.PostRatingA,
			date: rec.Date, event: rec.Event, label: rec.Label,
		})
		consider(appearance{
			key: rec.KeyB, name: rec.NameB, rating: rec.PostRatingB,
			date: rec.Date, event: rec.Event, label: rec.Label,
		})
	}

	out := make([]Record, 0, len(best))
	for key, app := range best {
		out = append(out, Record{
			Key:    key,
			Name:   names[key],
			Rating: app.rating,
			Date:   app.date,
			Event:  app.event,
			Label:  app.label,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// dateBefore orders dates with the zero (unknown) date after every real one.
func dateBefore(a, b time.Time) bool {
	switch {
	case a.IsZero():
		return false
	case b.IsZero():
		return true
	default:
		return a.Before(b)
	}
}
