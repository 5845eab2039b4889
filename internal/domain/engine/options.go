package engine

import (
	"github.com/okian/fightelo/internal/domain/classify"
	"github.com/okian/fightelo/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithBaseRating sets the rating assigned on a competitor's first
// appearance.
func WithBaseRating(base float64) Option {
	return func(e *Engine) {
		if base > 0 {
			e.baseRating = base
		}
	}
}

// WithKFactor sets the sensitivity coefficient: the maximum rating points
// exchanged per bout before multiplier scaling.
func WithKFactor(k float64) Option {
	return func(e *Engine) {
		if k > 0 {
			e.kFactor = k
		}
	}
}

// WithScale sets the logistic probability scale.
func WithScale(scale float64) Option {
	return func(e *Engine) {
		if scale > 0 {
			e.scale = scale
		}
	}
}

// WithClassifier sets the outcome classifier consulted per bout. Without
// this option the engine uses a classifier with default multipliers.
func WithClassifier(c *classify.Classifier) Option {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}
