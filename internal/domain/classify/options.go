package classify

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithFinishMultiplier sets the multiplier applied to stoppage wins.
func WithFinishMultiplier(m float64) Option {
	return func(c *Classifier) {
		if m > 0 {
			c.finishMultiplier = m
		}
	}
}

// WithDominantMultiplier sets the multiplier applied to dominant decisions.
func WithDominantMultiplier(m float64) Option {
	return func(c *Classifier) {
		if m > 0 {
			c.dominantMultiplier = m
		}
	}
}

// WithNormalMultiplier sets the neutral multiplier used for normal
// decisions, draws, no contests and unrecognized methods.
func WithNormalMultiplier(m float64) Option {
	return func(c *Classifier) {
		if m > 0 {
			c.normalMultiplier = m
		}
	}
}

// WithDominanceThresholds sets the scorecard dominance policy: a decision is
// dominant when any card's margin reaches anyCardMargin, or when at least
// wideCardCount cards reach wideCardMargin. The defaults are load-bearing
// for parity with previously published ratings; override with care.
func WithDominanceThresholds(anyCardMargin, wideCardMargin, wideCardCount int) Option {
	return func(c *Classifier) {
		if anyCardMargin > 0 {
			c.anyCardMargin = anyCardMargin
		}
		if wideCardMargin > 0 {
			c.wideCardMargin = wideCardMargin
		}
		if wideCardCount > 0 {
			c.wideCardCount = wideCardCount
		}
	}
}
