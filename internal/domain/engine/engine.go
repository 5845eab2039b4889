// Package engine applies sequential Elo-style rating updates over a
// chronologically ordered bout sequence and emits an append-only audit
// ledger plus an end-of-run ratings snapshot.
package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/okian/fightelo/internal/domain/classify"
	"github.com/okian/fightelo/internal/domain/model"
	"github.com/okian/fightelo/pkg/logger"
	"github.com/okian/fightelo/pkg/metrics"
)

// Default rating configuration constants.
const (
	defaultBaseRating = 1500.0
	defaultKFactor    = 24.0
	defaultScale      = 350.0
)

// AuditRecord captures pre-state, inputs and post-state of one rating
// update. The ledger is the system of record for peak-rating queries and is
// never mutated after being written.
type AuditRecord struct {
	Date  time.Time
	Event string
	Label string

	KeyA  string
	KeyB  string
	NameA string
	NameB string

	PreRatingA float64
	PreRatingB float64
	// WinProbA is the logistic expected score for side A before the update.
	WinProbA float64

	Outcome    model.Outcome
	Category   classify.Category
	Multiplier float64
	// EffectiveK is K scaled by the bout's multiplier; the same value moves
	// both sides, making the update a single zero-sum transfer.
	EffectiveK      float64
	ScheduledRounds int

	Method      string
	Weightclass string
	Referee     string
	URL         string

	PostRatingA float64
	PostRatingB float64
}

// Ledger is the chronological audit log of every rating update.
type Ledger []AuditRecord

// RatingRecord is one competitor's end-of-run rating and aggregates.
// FirstDate/LastDate stay zero when no processed bout carried a parsable
// date.
type RatingRecord struct {
	Key       string
	Name      string
	Rating    float64
	Fights    int
	Wins      int
	Losses    int
	Draws     int
	FirstDate time.Time
	LastDate  time.Time
}

// Snapshot holds one RatingRecord per competitor, rating descending.
type Snapshot []RatingRecord

// Engine runs the rating fold. Processing is strictly sequential: each
// bout's update depends on the store state left by all earlier bouts, so
// reordering inputs changes the result by design.
type Engine struct {
	baseRating float64
	kFactor    float64
	scale      float64
	classifier *classify.Classifier
	log        logger.Logger
}

// New constructs an Engine with default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		baseRating: defaultBaseRating,
		kFactor:    defaultKFactor,
		scale:      defaultScale,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.classifier == nil {
		e.classifier = classify.New()
	}
	return e
}

// Run processes bouts in chronological order and returns the audit ledger
// and the final ratings snapshot. The input slice is not modified. Bouts
// with unresolved outcomes are skipped entirely: no rating change and no
// aggregate counting. Run validates input shape up front and refuses to
// start on the first malformed bout.
func (e *Engine) Run(ctx context.Context, bouts []model.Bout) (Ledger, Snapshot, error) {
	if e.log == nil {
		e.log = logger.Get().Named("engine")
	}
	started := time.Now()

	ordered := make([]model.Bout, len(bouts))
	copy(ordered, bouts)
	sortBouts(ordered)

	if err := validate(ordered); err != nil {
		return nil, nil, err
	}

	acc := newAccumulator(e.baseRating)
	ledger := make(Ledger, 0, len(ordered))
	skipped := 0

	for _, b := range ordered {
		scoreA, scoreB, ok := b.Outcome.Scores()
		if !ok {
			skipped++
			metrics.RecordBoutSkipped()
			continue
		}

		cls := e.classifier.Classify(string(b.Outcome), b.Method, b.Details)
		metrics.RecordClassification(string(cls.Category))

		m := cls.Multiplier
		if !isFinite(m) {
			m = 1.0
		}

		ra := acc.store.Rating(b.KeyA)
		rb := acc.store.Rating(b.KeyB)
		pA := winProbability(ra, rb, e.scale)
		kEff := e.kFactor * m

		// Zero-sum transfer: both sides move by kEff against the same
		// expectation.
		raNew := ra + kEff*(scoreA-pA)
		rbNew := rb + kEff*(scoreB-(1.0-pA))
		acc.store.Replace(b.KeyA, b.KeyB, raNew, rbNew)

		acc.record(b, scoreA, scoreB)
		metrics.RecordBoutProcessed()

		ledger = append(ledger, AuditRecord{
			Date:            b.Date,
			Event:           b.Event,
			Label:           b.Label,
			KeyA:            b.KeyA,
			KeyB:            b.KeyB,
			NameA:           acc.names[b.KeyA],
			NameB:           acc.names[b.KeyB],
			PreRatingA:      ra,
			PreRatingB:      rb,
			WinProbA:        pA,
			Outcome:         b.Outcome,
			Category:        cls.Category,
			Multiplier:      m,
			EffectiveK:      kEff,
			ScheduledRounds: b.ScheduledRounds,
			Method:          classify.Normalize(b.Method),
			Weightclass:     b.Weightclass,
			Referee:         b.Referee,
			URL:             b.URL,
			PostRatingA:     raNew,
			PostRatingB:     rbNew,
		})
	}

	snapshot := acc.snapshot()

	metrics.UpdateCompetitorCount(acc.store.Len())
	metrics.ObserveRunDuration(float64(time.Since(started).Milliseconds()))
	e.log.Info(ctx, "rating run complete",
		logger.Int("bouts", len(ordered)),
		logger.Int("processed", len(ledger)),
		logger.Int("skipped", skipped),
		logger.Int("competitors", acc.store.Len()),
	)

	return ledger, snapshot, nil
}

// winProbability is the logistic expected score for the first competitor.
func winProbability(ra, rb, scale float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (rb-ra)/scale))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// validate rejects bouts whose resolved outcome cannot be attributed to two
// competitors. Unresolved bouts may be incomplete; they are skipped later.
func validate(bouts []model.Bout) error {
	for i, b := range bouts {
		if !b.Outcome.Resolved() {
			continue
		}
		if b.KeyA == "" || b.KeyB == "" {
			return fmt.Errorf("bout %d (%s): %w", i, b.Label, ErrEmptyCompetitor)
		}
	}
	return nil
}

// sortBouts orders bouts by date, then event name, then bout label, keeping
// input order as the final tie-break. Bouts without a parsable date sort
// after all dated bouts.
func sortBouts(bouts []model.Bout) {
	sort.SliceStable(bouts, func(i, j int) bool {
		bi, bj := bouts[i], bouts[j]
		switch {
		case bi.Date.IsZero() != bj.Date.IsZero():
			return !bi.Date.IsZero()
		case !bi.Date.Equal(bj.Date):
			return bi.Date.Before(bj.Date)
		case bi.Event != bj.Event:
			return bi.Event < bj.Event
		default:
			return bi.Label < bj.Label
		}
	})
}

// accumulator threads all per-competitor bookkeeping through one pass over
// the sorted bout sequence.
type accumulator struct {
	store     *Store
	names     map[string]string
	fights    map[string]int
	wins      map[string]int
	losses    map[string]int
	draws     map[string]int
	firstSeen map[string]time.Time
	lastSeen  map[string]time.Time
}

func newAccumulator(base float64) *accumulator {
	return &accumulator{
		store:     NewStore(base),
		names:     make(map[string]string),
		fights:    make(map[string]int),
		wins:      make(map[string]int),
		losses:    make(map[string]int),
		draws:     make(map[string]int),
		firstSeen: make(map[string]time.Time),
		lastSeen:  make(map[string]time.Time),
	}
}

// record updates counters, display names and first/last-seen dates for one
// processed bout.
func (a *accumulator) record(b model.Bout, scoreA, scoreB float64) {
	nameA, nameB := b.NameA, b.NameB
	if nameA == "" {
		nameA = b.KeyA
	}
	if nameB == "" {
		nameB = b.KeyB
	}
	a.names[b.KeyA] = nameA
	a.names[b.KeyB] = nameB

	a.fights[b.KeyA]++
	a.fights[b.KeyB]++
	switch {
	case scoreA == 1.0:
		a.wins[b.KeyA]++
		a.losses[b.KeyB]++
	case scoreB == 1.0:
		a.wins[b.KeyB]++
		a.losses[b.KeyA]++
	default:
		a.draws[b.KeyA]++
		a.draws[b.KeyB]++
	}

	for _, key := range []string{b.KeyA, b.KeyB} {
		if _, ok := a.firstSeen[key]; !ok {
			a.firstSeen[key] = b.Date
		} else if !b.Date.IsZero() && (a.firstSeen[key].IsZero() || b.Date.Before(a.firstSeen[key])) {
			a.firstSeen[key] = b.Date
		}
		if _, ok := a.lastSeen[key]; !ok {
			a.lastSeen[key] = b.Date
		} else if !b.Date.IsZero() && (a.lastSeen[key].IsZero() || b.Date.After(a.lastSeen[key])) {
			a.lastSeen[key] = b.Date
		}
	}
}

// snapshot derives the final per-competitor records, rating descending with
// key-ascending tie-break for determinism.
func (a *accumulator) snapshot() Snapshot {
	out := make(Snapshot, 0, a.store.Len())
	a.store.Each(func(key string, rating float64) {
		out = append(out, RatingRecord{
			Key:       key,
			Name:      a.names[key],
			Rating:    rating,
			Fights:    a.fights[key],
			Wins:      a.wins[key],
			Losses:    a.losses[key],
			Draws:     a.draws[key],
			FirstDate: a.firstSeen[key],
			LastDate:  a.lastSeen[key],
		})
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Key < out[j].Key
	})
	return out
}
