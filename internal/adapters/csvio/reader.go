// Package csvio loads the raw UFC Stats exports into domain bouts and
// writes every pipeline artifact back out as CSV. Column names follow the
// source exports for passthrough fields and snake_case for derived ones.
package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/okian/fightelo/internal/domain/classify"
	"github.com/okian/fightelo/internal/domain/model"
	"github.com/okian/fightelo/pkg/logger"
	"github.com/okian/fightelo/pkg/metrics"
)

// boutSeparator splits "Name A vs. Name B" labels, tolerating "vs", "vs."
// and "v" with any surrounding whitespace.
var boutSeparator = regexp.MustCompile(`(?i)\s+vs\.?\s+|\s+v\s+`)

// dateLayouts are tried in order when parsing dates. The first covers the
// pipeline's own output, the rest cover the UFC Stats export styles.
var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
}

// header maps column names to their index in a CSV record.
type header map[string]int

func indexHeader(record []string) header {
	h := make(header, len(record))
	for i, name := range record {
		h[strings.TrimSpace(name)] = i
	}
	return h
}

// require verifies every named column is present, reporting all missing
// columns at once.
func (h header) require(path string, cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := h[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w: %s", path, ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// get returns the named field of a record, or "" when the column is absent
// or the record is short. Raw exports occasionally have ragged rows.
func (h header) get(record []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// readAll loads a whole CSV file, returning its header index and data rows.
func readAll(path string) (header, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	return indexHeader(records[0]), records[1:], nil
}

// parseDate tries the known layouts. The second return reports success;
// unparsable or empty dates come back as the zero time.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// competitorKey derives a stable identity key: the canonical URL when one is
// known, otherwise the lowercase-normalized name.
func competitorKey(name, url string) string {
	if u := classify.Normalize(url); u != "" {
		return u
	}
	return nameKey(name)
}

// nameKey is the lowercase join key used to match names across files.
func nameKey(name string) string {
	return strings.ToLower(classify.Normalize(name))
}

// splitLabel splits a bout label into the two competitor names. When the
// label does not split into exactly two parts, the whole label is returned
// as the first name so the row surfaces in validation instead of vanishing.
func splitLabel(label string) (string, string) {
	norm := classify.Normalize(label)
	parts := boutSeparator.Split(norm, -1)
	if len(parts) != 2 {
		return norm, ""
	}
	return classify.Normalize(parts[0]), classify.Normalize(parts[1])
}

// LoadEvents reads the event details export and returns event dates keyed
// by lowercase-normalized event name. Rows with unparsable dates are kept
// with a zero date so their bouts still join.
func LoadEvents(ctx context.Context, path string) (map[string]time.Time, error) {
	h, rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if err := h.require(path, "EVENT", "DATE"); err != nil {
		return nil, err
	}

	log := logger.Get().Named("csvio")
	dates := make(map[string]time.Time, len(rows))
	for _, rec := range rows {
		event := classify.Normalize(h.get(rec, "EVENT"))
		if event == "" {
			continue
		}
		d, ok := parseDate(h.get(rec, "DATE"))
		if !ok && strings.TrimSpace(h.get(rec, "DATE")) != "" {
			metrics.RecordParseFailure()
			log.Debug(ctx, "unparsable event date",
				logger.String("event", event),
				logger.String("date", h.get(rec, "DATE")),
			)
		}
		dates[nameKey(event)] = d
	}
	return dates, nil
}

// LoadFighterURLs reads the fighter roster export and returns canonical
// profile URLs keyed by lowercase-normalized fighter name.
func LoadFighterURLs(_ context.Context, path string) (map[string]string, error) {
	h, rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if err := h.require(path, "FIGHTER", "URL"); err != nil {
		return nil, err
	}

	urls := make(map[string]string, len(rows))
	for _, rec := range rows {
		key := nameKey(h.get(rec, "FIGHTER"))
		if key == "" {
			continue
		}
		urls[key] = classify.Normalize(h.get(rec, "URL"))
	}
	return urls, nil
}

// resultColumns are required in the fight results export.
var resultColumns = []string{
	"EVENT", "BOUT", "OUTCOME", "WEIGHTCLASS", "METHOD",
	"ROUND", "TIME FORMAT", "REFEREE", "DETAILS", "URL",
}

// BuildBouts joins the fight results export against event dates and,
// optionally, fighter profile URLs (fightersPath may be empty). One Bout is
// produced per result row; rows never drop here, even with unknown outcomes
// or missing dates, so the engine sees the full record.
func BuildBouts(ctx context.Context, eventsPath, resultsPath, fightersPath string) ([]model.Bout, error) {
	events, err := LoadEvents(ctx, eventsPath)
	if err != nil {
		return nil, err
	}

	urls := map[string]string{}
	if fightersPath != "" {
		urls, err = LoadFighterURLs(ctx, fightersPath)
		if err != nil {
			return nil, err
		}
	}

	h, rows, err := readAll(resultsPath)
	if err != nil {
		return nil, err
	}
	if err := h.require(resultsPath, resultColumns...); err != nil {
		return nil, err
	}

	bouts := make([]model.Bout, 0, len(rows))
	for _, rec := range rows {
		event := classify.Normalize(h.get(rec, "EVENT"))
		label := classify.Normalize(h.get(rec, "BOUT"))
		nameA, nameB := splitLabel(label)

		bouts = append(bouts, model.Bout{
			Date:            events[nameKey(event)],
			Event:           event,
			Label:           label,
			KeyA:            competitorKey(nameA, urls[nameKey(nameA)]),
			KeyB:            competitorKey(nameB, urls[nameKey(nameB)]),
			NameA:           nameA,
			NameB:           nameB,
			Outcome:         model.ParseOutcome(h.get(rec, "OUTCOME")),
			Method:          classify.Normalize(h.get(rec, "METHOD")),
			Details:         classify.Normalize(h.get(rec, "DETAILS")),
			TimeFormat:      classify.Normalize(h.get(rec, "TIME FORMAT")),
			ScheduledRounds: classify.ScheduledRounds(h.get(rec, "TIME FORMAT")),
			Weightclass:     classify.Normalize(h.get(rec, "WEIGHTCLASS")),
			Referee:         classify.Normalize(h.get(rec, "REFEREE")),
			URL:             classify.Normalize(h.get(rec, "URL")),
		})
	}

	metrics.RecordRowsIngested(len(bouts))
	logger.Get().Named("csvio").Info(ctx, "bouts built",
		logger.Int("results", len(rows)),
		logger.Int("events", len(events)),
		logger.Int("fighter_urls", len(urls)),
	)
	return bouts, nil
}

// ReadBouts loads the unified bouts CSV written by WriteBouts.
func ReadBouts(ctx context.Context, path string) ([]model.Bout, error) {
	h, rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if err := h.require(path,
		"DATE", "EVENT", "BOUT",
		"fighter_a_name", "fighter_b_name",
		"fighter_a_key", "fighter_b_key",
		"winner_label", "METHOD", "DETAILS", "TIME FORMAT",
	); err != nil {
		return nil, err
	}

	log := logger.Get().Named("csvio")
	bouts := make([]model.Bout, 0, len(rows))
	for _, rec := range rows {
		d, ok := parseDate(h.get(rec, "DATE"))
		if !ok && strings.TrimSpace(h.get(rec, "DATE")) != "" {
			metrics.RecordParseFailure()
			log.Debug(ctx, "unparsable bout date", logger.String("date", h.get(rec, "DATE")))
		}

		rounds, err := strconv.Atoi(strings.TrimSpace(h.get(rec, "rounds_scheduled")))
		if err != nil {
			rounds = classify.ScheduledRounds(h.get(rec, "TIME FORMAT"))
		}

		bouts = append(bouts, model.Bout{
			Date:            d,
			Event:           classify.Normalize(h.get(rec, "EVENT")),
			Label:           classify.Normalize(h.get(rec, "BOUT")),
			KeyA:            classify.Normalize(h.get(rec, "fighter_a_key")),
			KeyB:            classify.Normalize(h.get(rec, "fighter_b_key")),
			NameA:           classify.Normalize(h.get(rec, "fighter_a_name")),
			NameB:           classify.Normalize(h.get(rec, "fighter_b_name")),
			Outcome:         model.ParseOutcome(h.get(rec, "winner_label")),
			Method:          classify.Normalize(h.get(rec, "METHOD")),
			Details:         classify.Normalize(h.get(rec, "DETAILS")),
			TimeFormat:      classify.Normalize(h.get(rec, "TIME FORMAT")),
			ScheduledRounds: rounds,
			Weightclass:     classify.Normalize(h.get(rec, "WEIGHTCLASS")),
			Referee:         classify.Normalize(h.get(rec, "REFEREE")),
			URL:             classify.Normalize(h.get(rec, "URL")),
		})
	}

	metrics.RecordRowsIngested(len(bouts))
	return bouts, nil
}
