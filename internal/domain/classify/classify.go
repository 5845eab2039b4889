// Package classify turns a bout's free-text outcome, method and scorecard
// fields into a category and a dominance-weighted rating multiplier.
//
// Classification is an ordered rule list evaluated in fixed priority order;
// the first matching rule wins and its basis tag records why, so every
// multiplier in the audit ledger can be traced back to a rule.
package classify

import "strings"

// Category tags form a closed set; the engine treats anything that is not a
// finish or dominant decision as neutral.
type Category string

// Categories in precedence order of the rules that produce them.
const (
	CategoryDraw             Category = "draw"
	CategoryNoContest        Category = "nc"
	CategoryFinish           Category = "finish"
	CategoryDecisionDominant Category = "decision_dominant"
	CategoryDecisionNormal   Category = "decision_normal"
	CategoryOther            Category = "other"
)

// Basis tags identify the rule that produced a classification.
const (
	BasisOutcomeDraw        = "outcome_draw"
	BasisOutcomeNoContest   = "outcome_nc"
	BasisMethodFinish       = "method_finish"
	BasisMethodSplit        = "method_split"
	BasisMethodMajority     = "method_majority"
	BasisAnyLargeMargin     = "details_any_margin_ge_3"
	BasisTwoWideCards       = "details_two_cards_ge_2"
	BasisSmallMargins       = "details_small_margins"
	BasisUnanimousNoDetails = "method_unanimous_no_details"
	BasisGenericDecision    = "method_generic_decision"
	BasisFinishFallback     = "method_finish_fallback"
	BasisUnknownMethod      = "unknown_method"
)

// finishTokens mark stoppages. Matching is substring-based on the folded
// method text, so "ko" also matches "knockout".
var finishTokens = []string{
	"ko", "tko", "submission", "sub", "dq", "disqualification",
	"doctor stoppage", "retirement",
}

// Classification is the result of classifying one bout.
type Classification struct {
	Category   Category
	Multiplier float64
	// Basis names the rule that fired, for auditability.
	Basis string
	// Margins holds the absolute judge-score margins extracted from the
	// scorecard text, when any were parsed.
	Margins []int
}

// Default multipliers and dominance thresholds. The thresholds are policy
// chosen for historical parity; they are configurable but their defaults
// must not drift.
const (
	defaultFinishMultiplier   = 1.20
	defaultDominantMultiplier = 1.10
	defaultNormalMultiplier   = 1.00
	defaultAnyCardMargin      = 3
	defaultWideCardMargin     = 2
	defaultWideCardCount      = 2
)

// Classifier applies the rule list. It is stateless across bouts and safe
// for concurrent use.
type Classifier struct {
	finishMultiplier   float64
	dominantMultiplier float64
	normalMultiplier   float64

	// A single card margin at or above anyCardMargin marks dominance, as
	// does wideCardCount or more cards at or above wideCardMargin.
	anyCardMargin  int
	wideCardMargin int
	wideCardCount  int

	rules []rule
}

// rule inspects one bout's folded fields; ok reports whether the rule fired.
type rule func(in input) (Classification, bool)

// input carries pre-normalized, case-folded fields. Details keep their
// original case since margins are numeric.
type input struct {
	outcome string
	method  string
	details string
}

// New creates a Classifier with configuration options.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		finishMultiplier:   defaultFinishMultiplier,
		dominantMultiplier: defaultDominantMultiplier,
		normalMultiplier:   defaultNormalMultiplier,
		anyCardMargin:      defaultAnyCardMargin,
		wideCardMargin:     defaultWideCardMargin,
		wideCardCount:      defaultWideCardCount,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Priority order is load-bearing: outcome labels beat method text, and
	// the finish keyword only wins when "decision" is absent.
	c.rules = []rule{
		c.drawRule,
		c.noContestRule,
		c.finishRule,
		c.decisionRule,
		c.finishFallbackRule,
	}
	return c
}

// Classify maps one bout's raw fields to a category, multiplier, basis tag
// and any judge margins. It never fails: unrecognized input classifies as
// CategoryOther with the neutral multiplier.
func (c *Classifier) Classify(outcome, method, details string) Classification {
	in := input{
		outcome: strings.ToLower(Normalize(outcome)),
		method:  strings.ToLower(Normalize(method)),
		details: Normalize(details),
	}

	for _, r := range c.rules {
		if cls, ok := r(in); ok {
			return cls
		}
	}
	return Classification{Category: CategoryOther, Multiplier: c.normalMultiplier, Basis: BasisUnknownMethod}
}

func (c *Classifier) drawRule(in input) (Classification, bool) {
	if in.outcome != string(CategoryDraw) {
		return Classification{}, false
	}
	return Classification{Category: CategoryDraw, Multiplier: c.normalMultiplier, Basis: BasisOutcomeDraw}, true
}

func (c *Classifier) noContestRule(in input) (Classification, bool) {
	if in.outcome != string(CategoryNoContest) {
		return Classification{}, false
	}
	return Classification{Category: CategoryNoContest, Multiplier: c.normalMultiplier, Basis: BasisOutcomeNoContest}, true
}

func (c *Classifier) finishRule(in input) (Classification, bool) {
	if !containsFinishToken(in.method) || strings.Contains(in.method, "decision") {
		return Classification{}, false
	}
	return Classification{Category: CategoryFinish, Multiplier: c.finishMultiplier, Basis: BasisMethodFinish}, true
}

func (c *Classifier) decisionRule(in input) (Classification, bool) {
	if !strings.Contains(in.method, "decision") {
		return Classification{}, false
	}

	// Split and majority verdicts are close contests by definition; the
	// dominance heuristics never apply to them.
	if strings.Contains(in.method, "split") {
		return Classification{Category: CategoryDecisionNormal, Multiplier: c.normalMultiplier, Basis: BasisMethodSplit}, true
	}
	if strings.Contains(in.method, "majority") {
		return Classification{Category: CategoryDecisionNormal, Multiplier: c.normalMultiplier, Basis: BasisMethodMajority}, true
	}

	// Unanimous or generic decision: prefer scorecard margins when any parse.
	margins := Margins(in.details)
	if len(margins) > 0 {
		for _, m := range margins {
			if m >= c.anyCardMargin {
				return Classification{Category: CategoryDecisionDominant, Multiplier: c.dominantMultiplier, Basis: BasisAnyLargeMargin, Margins: margins}, true
			}
		}
		wide := 0
		for _, m := range margins {
			if m >= c.wideCardMargin {
				wide++
			}
		}
		if wide >= c.wideCardCount {
			return Classification{Category: CategoryDecisionDominant, Multiplier: c.dominantMultiplier, Basis: BasisTwoWideCards, Margins: margins}, true
		}
		// A unanimous verdict on all-narrow cards still reads as a close
		// contest.
		return Classification{Category: CategoryDecisionNormal, Multiplier: c.normalMultiplier, Basis: BasisSmallMargins, Margins: margins}, true
	}

	// No parsable cards: fall back to the method keyword.
	if strings.Contains(in.method, "unanimous") {
		return Classification{Category: CategoryDecisionDominant, Multiplier: c.dominantMultiplier, Basis: BasisUnanimousNoDetails}, true
	}
	return Classification{Category: CategoryDecisionNormal, Multiplier: c.normalMultiplier, Basis: BasisGenericDecision}, true
}

// finishFallbackRule catches finish keywords that co-occur with text the
// primary finish rule rejected.
func (c *Classifier) finishFallbackRule(in input) (Classification, bool) {
	if !containsFinishToken(in.method) {
		return Classification{}, false
	}
	return Classification{Category: CategoryFinish, Multiplier: c.finishMultiplier, Basis: BasisFinishFallback}, true
}

func containsFinishToken(foldedMethod string) bool {
	for _, tok := range finishTokens {
		if strings.Contains(foldedMethod, tok) {
			return true
		}
	}
	return false
}
