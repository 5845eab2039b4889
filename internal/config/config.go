// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address for the serve command.
	Addr string `koanf:"addr"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit and /peaks?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// BaseRating is the rating every competitor starts from.
	BaseRating float64 `koanf:"base_rating"`

	// KFactor is the base update step before dominance weighting.
	KFactor float64 `koanf:"k_factor"`

	// Scale is the logistic spread of the expected-score curve.
	Scale float64 `koanf:"scale"`

	// MultiplierFinish, MultiplierDominant and MultiplierNormal weight the
	// K factor by how decisively a bout ended.
	MultiplierFinish   float64 `koanf:"multiplier_finish"`
	MultiplierDominant float64 `koanf:"multiplier_dominant"`
	MultiplierNormal   float64 `koanf:"multiplier_normal"`

	// MarginDominantAny marks a decision dominant when any single card
	// reaches this margin. MarginDominantTwo and DominantTwoCount mark it
	// dominant when at least DominantTwoCount cards reach MarginDominantTwo.
	MarginDominantAny int `koanf:"margin_dominant_any"`
	MarginDominantTwo int `koanf:"margin_dominant_two"`
	DominantTwoCount  int `koanf:"dominant_two_count"`

	// Input CSV paths for the prepare step.
	EventsCSV   string `koanf:"events_csv"`
	ResultsCSV  string `koanf:"results_csv"`
	FightersCSV string `koanf:"fighters_csv"`

	// Pipeline artifact paths.
	BoutsCSV         string `koanf:"bouts_csv"`
	ClassifiedCSV    string `koanf:"classified_csv"`
	HistoryCSV       string `koanf:"history_csv"`
	RatingsCSV       string `koanf:"ratings_csv"`
	RatingsSimpleCSV string `koanf:"ratings_simple_csv"`
	PeaksCSV         string `koanf:"peaks_csv"`
	PeaksSimpleCSV   string `koanf:"peaks_simple_csv"`
}

// New creates a Config using historical defaults. Context is accepted first
// to satisfy the project-wide convention; it is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		MaxLeaderboardLimit: 100,

		BaseRating: 1500.0,
		KFactor:    24.0,
		Scale:      350.0,

		MultiplierFinish:   1.20,
		MultiplierDominant: 1.10,
		MultiplierNormal:   1.00,

		MarginDominantAny: 3,
		MarginDominantTwo: 2,
		DominantTwoCount:  2,

		EventsCSV:   "data/ufc_event_details.csv",
		ResultsCSV:  "data/ufc_fight_results.csv",
		FightersCSV: "data/ufc_fighter_tott.csv",

		BoutsCSV:         "build/fights_unified.csv",
		ClassifiedCSV:    "build/fights_classified.csv",
		HistoryCSV:       "build/elo_history.csv",
		RatingsCSV:       "build/elo_ratings_current.csv",
		RatingsSimpleCSV: "build/elo_ratings_simple.csv",
		PeaksCSV:         "build/elo_peak_ratings.csv",
		PeaksSimpleCSV:   "build/elo_peak_ratings_simple.csv",
	}
}
