package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// defaultScheduledRounds applies when the time-format text is missing or
// unparsable.
const defaultScheduledRounds = 3

var (
	spacePattern  = regexp.MustCompile(`\s+`)
	roundsPattern = regexp.MustCompile(`(\d+)\s*Rnd`)
)

// Normalize trims the string and collapses runs of whitespace to a single
// space. Case is preserved; callers fold case only for keyword matching.
func Normalize(s string) string {
	return spacePattern.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ScheduledRounds parses the scheduled round count from a time-format string
// such as "5 Rnd (5-5-5-5-5)". Missing or unparsable input defaults to 3.
// The value is informational: the dominance thresholds are round-count
// invariant.
func ScheduledRounds(timeFormat string) int {
	m := roundsPattern.FindStringSubmatch(timeFormat)
	if m == nil {
		return defaultScheduledRounds
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return defaultScheduledRounds
	}
	return n
}

// Margins extracts absolute judge-score margins from free-text scorecard
// detail. Each judge's card is a pair of integers separated by a dash or
// en-dash, e.g. "Mike Bell 48 - 47." -> margin 1. Commas act as separators
// between cards. Non-matching fragments are skipped without aborting the
// scan; empty or fully unparsable input yields no margins, never an error.
func Margins(details string) []int {
	if strings.TrimSpace(details) == "" {
		return nil
	}
	text := []rune(strings.ReplaceAll(details, ",", " "))

	var margins []int
	i := 0
	for i < len(text) {
		if !isDigit(text[i]) {
			i++
			continue
		}

		// First score of a potential pair.
		a, next := scanInt(text, i)

		// Only whitespace may sit between the score and its dash; anything
		// else means this number does not open a pair, so resume scanning
		// right after it.
		j := skipSpaces(text, next)
		if j >= len(text) || !isDash(text[j]) {
			i = next
			continue
		}
		j = skipSpaces(text, j+1)
		if j >= len(text) || !isDigit(text[j]) {
			i = next
			continue
		}
		b, after := scanInt(text, j)

		if a < 0 || b < 0 {
			// Overflowed scores are noise; skip the whole pair.
			i = after
			continue
		}
		d := a - b
		if d < 0 {
			d = -d
		}
		margins = append(margins, d)
		i = after
	}
	return margins
}

// scanInt reads a run of digits starting at i. It returns -1 when the run
// does not fit an int.
func scanInt(text []rune, i int) (value, next int) {
	j := i
	for j < len(text) && isDigit(text[j]) {
		j++
	}
	n, err := strconv.Atoi(string(text[i:j]))
	if err != nil {
		return -1, j
	}
	return n, j
}

func skipSpaces(text []rune, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n' || text[i] == '\r') {
		i++
	}
	return i
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isDash(r rune) bool { return r == '-' || r == '–' }
