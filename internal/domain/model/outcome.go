package model

import "strings"

// Outcome identifies which side of a bout won, if any.
type Outcome string

// Outcome labels. Unresolved outcomes (no contest, unknown) pass through the
// classifier but never update ratings.
const (
	OutcomeAWins     Outcome = "a"
	OutcomeBWins     Outcome = "b"
	OutcomeDraw      Outcome = "draw"
	OutcomeNoContest Outcome = "nc"
	OutcomeUnknown   Outcome = "unknown"
)

// ParseOutcome maps a raw result-sheet OUTCOME string to a label.
// The source encodes the winner positionally: "W/L" means the left-hand
// competitor won, "L/W" the right-hand one. Already-parsed labels ("a",
// "draw", ...) pass through, so prepared CSVs round-trip.
func ParseOutcome(raw string) Outcome {
	o := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	switch {
	case o == "A":
		return OutcomeAWins
	case o == "B":
		return OutcomeBWins
	case strings.Contains(o, "W/L"):
		return OutcomeAWins
	case strings.Contains(o, "L/W"):
		return OutcomeBWins
	case strings.Contains(o, "D/D"), strings.Contains(o, "DRAW"):
		return OutcomeDraw
	case strings.Contains(o, "NC"), strings.Contains(o, "N/C"):
		return OutcomeNoContest
	default:
		return OutcomeUnknown
	}
}

// Scores returns the actual scores for sides A and B. ok is false for
// unresolved outcomes, which contribute no rating update.
func (o Outcome) Scores() (scoreA, scoreB float64, ok bool) {
	switch o {
	case OutcomeAWins:
		return 1.0, 0.0, true
	case OutcomeBWins:
		return 0.0, 1.0, true
	case OutcomeDraw:
		return 0.5, 0.5, true
	default:
		return 0, 0, false
	}
}

// Resolved reports whether the outcome counts toward ratings and records.
func (o Outcome) Resolved() bool {
	_, _, ok := o.Scores()
	return ok
}
