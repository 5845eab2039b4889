package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/okian/fightelo/internal/domain/classify"
	"github.com/okian/fightelo/internal/domain/engine"
	"github.com/okian/fightelo/internal/domain/model"
	"github.com/okian/fightelo/internal/domain/peak"
	"github.com/okian/fightelo/pkg/logger"
)

// dateFormat is used for all dates the pipeline writes.
const dateFormat = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// writeCSV writes one header row plus data rows, creating parent
// directories as needed.
func writeCSV(path string, head []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(head); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// sortedBouts returns a copy ordered by date (undated last), event, then
// label, so prepared files are stable across runs.
func sortedBouts(bouts []model.Bout) []model.Bout {
	out := make([]model.Bout, len(bouts))
	copy(out, bouts)
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := out[i], out[j]
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
	return out
}

// WriteBouts writes the unified bouts table produced by ingestion.
// ReadBouts loads the same format back.
func WriteBouts(ctx context.Context, path string, bouts []model.Bout) error {
	head := []string{
		"DATE", "EVENT", "BOUT",
		"fighter_a_name", "fighter_b_name",
		"fighter_a_key", "fighter_b_key",
		"winner_label",
		"WEIGHTCLASS", "METHOD", "TIME FORMAT", "rounds_scheduled",
		"REFEREE", "DETAILS", "URL",
	}

	ordered := sortedBouts(bouts)
	rows := make([][]string, 0, len(ordered))
	for _, b := range ordered {
		rows = append(rows, []string{
			formatDate(b.Date), b.Event, b.Label,
			b.NameA, b.NameB,
			b.KeyA, b.KeyB,
			string(b.Outcome),
			b.Weightclass, b.Method, b.TimeFormat, strconv.Itoa(b.ScheduledRounds),
			b.Referee, b.Details, b.URL,
		})
	}

	if err := writeCSV(path, head, rows); err != nil {
		return err
	}
	logger.Get().Named("csvio").Info(ctx, "bouts written",
		logger.String("path", path), logger.Int("rows", len(rows)))
	return nil
}

// WriteClassified classifies each bout with the given classifier and writes
// the bouts table extended with category, multiplier, basis and parsed
// judge margins.
func WriteClassified(ctx context.Context, path string, bouts []model.Bout, c *classify.Classifier) error {
	head := []string{
		"DATE", "EVENT", "BOUT",
		"fighter_a_name", "fighter_b_name",
		"winner_label",
		"WEIGHTCLASS", "METHOD",
		"method_class", "method_multiplier", "decision_basis", "judge_margins",
		"TIME FORMAT", "rounds_scheduled",
		"REFEREE", "DETAILS", "URL",
	}

	ordered := sortedBouts(bouts)
	rows := make([][]string, 0, len(ordered))
	for _, b := range ordered {
		cls := c.Classify(string(b.Outcome), b.Method, b.Details)
		margins := make([]string, len(cls.Margins))
		for i, m := range cls.Margins {
			margins[i] = strconv.Itoa(m)
		}

		rows = append(rows, []string{
			formatDate(b.Date), b.Event, b.Label,
			b.NameA, b.NameB,
			string(b.Outcome),
			b.Weightclass, b.Method,
			string(cls.Category), formatFloat(cls.Multiplier), cls.Basis, strings.Join(margins, ","),
			b.TimeFormat, strconv.Itoa(b.ScheduledRounds),
			b.Referee, b.Details, b.URL,
		})
	}

	if err := writeCSV(path, head, rows); err != nil {
		return err
	}
	logger.Get().Named("csvio").Info(ctx, "classified bouts written",
		logger.String("path", path), logger.Int("rows", len(rows)))
	return nil
}

// WriteLedger writes the per-bout audit ledger.
func WriteLedger(ctx context.Context, path string, ledger engine.Ledger) error {
	head := []string{
		"DATE", "EVENT", "BOUT",
		"fighter_a_id", "fighter_b_id",
		"fighter_a_name", "fighter_b_name",
		"pre_rating_a", "pre_rating_b", "p_a_win",
		"winner_label", "method_class", "method_multiplier", "k_eff",
		"rounds_scheduled",
		"WEIGHTCLASS", "METHOD", "REFEREE", "URL",
		"post_rating_a", "post_rating_b",
	}

	rows := make([][]string, 0, len(ledger))
	for _, r := range ledger {
		rows = append(rows, []string{
			formatDate(r.Date), r.Event, r.Label,
			r.KeyA, r.KeyB,
			r.NameA, r.NameB,
			formatFloat(r.PreRatingA), formatFloat(r.PreRatingB), formatFloat(r.WinProbA),
			string(r.Outcome), string(r.Category), formatFloat(r.Multiplier), formatFloat(r.EffectiveK),
			strconv.Itoa(r.ScheduledRounds),
			r.Weightclass, r.Method, r.Referee, r.URL,
			formatFloat(r.PostRatingA), formatFloat(r.PostRatingB),
		})
	}

	if err := writeCSV(path, head, rows); err != nil {
		return err
	}
	logger.Get().Named("csvio").Info(ctx, "ledger written",
		logger.String("path", path), logger.Int("rows", len(rows)))
	return nil
}

// ReadLedger loads an audit ledger written by WriteLedger. The peak command
// consumes this to work off a previously computed run.
func ReadLedger(ctx context.Context, path string) (engine.Ledger, error) {
	h, rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if err := h.require(path,
		"DATE", "EVENT", "BOUT",
		"fighter_a_id", "fighter_b_id",
		"fighter_a_name", "fighter_b_name",
		"post_rating_a", "post_rating_b",
	); err != nil {
		return nil, err
	}

	parseF := func(s string) float64 {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		return f
	}

	ledger := make(engine.Ledger, 0, len(rows))
	for _, rec := range rows {
		d, _ := parseDate(h.get(rec, "DATE"))
		ledger = append(ledger, engine.AuditRecord{
			Date:        d,
			Event:       h.get(rec, "EVENT"),
			Label:       h.get(rec, "BOUT"),
			KeyA:        h.get(rec, "fighter_a_id"),
			KeyB:        h.get(rec, "fighter_b_id"),
			NameA:       h.get(rec, "fighter_a_name"),
			NameB:       h.get(rec, "fighter_b_name"),
			PreRatingA:  parseF(h.get(rec, "pre_rating_a")),
			PreRatingB:  parseF(h.get(rec, "pre_rating_b")),
			PostRatingA: parseF(h.get(rec, "post_rating_a")),
			PostRatingB: parseF(h.get(rec, "post_rating_b")),
		})
	}

	logger.Get().Named("csvio").Info(ctx, "ledger loaded",
		logger.String("path", path), logger.Int("rows", len(ledger)))
	return ledger, nil
}

// WriteSnapshot writes the end-of-run ratings snapshot with aggregates.
func WriteSnapshot(ctx context.Context, path string, snap engine.Snapshot) error {
	head := []string{
		"fighter_id", "fighter_name", "rating",
		"fights", "wins", "losses", "draws",
		"first_date", "last_date",
	}

	rows := make([][]string, 0, len(snap))
	for _, r := range snap {
		rows = append(rows, []string{
			r.Key, r.Name, formatFloat(r.Rating),
			strconv.Itoa(r.Fights), strconv.Itoa(r.Wins), strconv.Itoa(r.Losses), strconv.Itoa(r.Draws),
			formatDate(r.FirstDate), formatDate(r.LastDate),
		})
	}

	if err := writeCSV(path, head, rows); err != nil {
		return err
	}
	logger.Get().Named("csvio").Info(ctx, "snapshot written",
		logger.String("path", path), logger.Int("rows", len(rows)))
	return nil
}

// WriteSnapshotSimple writes the two-column name,rating export.
func WriteSnapshotSimple(_ context.Context, path string, snap engine.Snapshot) error {
	rows := make([][]string, 0, len(snap))
	for _, r := range snap {
		rows = append(rows, []string{r.Name, formatFloat(r.Rating)})
	}
	return writeCSV(path, []string{"fighter_name", "rating"}, rows)
}

// ReadSnapshot loads a snapshot written by WriteSnapshot. The serve command
// uses this to populate its standings store.
func ReadSnapshot(ctx context.Context, path string) (engine.Snapshot, error) {
	h, rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if err := h.require(path, "fighter_id", "fighter_name", "rating"); err != nil {
		return nil, err
	}

	parseI := func(s string) int {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0
		}
		return n
	}

	snap := make(engine.Snapshot, 0, len(rows))
	for _, rec := range rows {
		rating, err := strconv.ParseFloat(strings.TrimSpace(h.get(rec, "rating")), 64)
		if err != nil {
			continue
		}
		first, _ := parseDate(h.get(rec, "first_date"))
		last, _ := parseDate(h.get(rec, "last_date"))
		snap = append(snap, engine.RatingRecord{
			Key:       h.get(rec, "fighter_id"),
			Name:      h.get(rec, "fighter_name"),
			Rating:    rating,
			Fights:    parseI(h.get(rec, "fights")),
			Wins:      parseI(h.get(rec, "wins")),
			Losses:    parseI(h.get(rec, "losses")),
			Draws:     parseI(h.get(rec, "draws")),
			FirstDate: first,
			LastDate:  last,
		})
	}

	logger.Get().Named("csvio").Info(ctx, "snapshot loaded",
		logger.String("path", path), logger.Int("rows", len(snap)))
	return snap, nil
}

// WritePeaks writes the detailed peak-rating table.
func WritePeaks(ctx context.Context, path string, peaks []peak.Record) error {
	head := []string{
		"fighter_id", "fighter_name", "peak_rating",
		"peak_date", "peak_event", "peak_bout",
	}

	rows := make([][]string, 0, len(peaks))
	for _, p := range peaks {
		rows = append(rows, []string{
			p.Key, p.Name, formatFloat(p.Rating),
			formatDate(p.Date), p.Event, p.Label,
		})
	}

	if err := writeCSV(path, head, rows); err != nil {
		return err
	}
	logger.Get().Named("csvio").Info(ctx, "peaks written",
		logger.String("path", path), logger.Int("rows", len(rows)))
	return nil
}

// WritePeaksSimple writes the two-column name,peak_rating export.
func WritePeaksSimple(_ context.Context, path string, peaks []peak.Record) error {
	rows := make([][]string, 0, len(peaks))
	for _, p := range peaks {
		rows = append(rows, []string{p.Name, formatFloat(p.Rating)})
	}
	return writeCSV(path, []string{"fighter_name", "peak_rating"}, rows)
}

// ReadPeaks loads a peak table written by WritePeaks. The serve command
// uses this to populate its peak standings store.
func ReadPeaks(ctx context.Context, path string) ([]peak.Record, error) {
	h, rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if err := h.require(path, "fighter_id", "fighter_name", "peak_rating"); err != nil {
		return nil, err
	}

	peaks := make([]peak.Record, 0, len(rows))
	for _, rec := range rows {
		rating, err := strconv.ParseFloat(strings.TrimSpace(h.get(rec, "peak_rating")), 64)
		if err != nil {
			continue
		}
		d, _ := parseDate(h.get(rec, "peak_date"))
		peaks = append(peaks, peak.Record{
			Key:    h.get(rec, "fighter_id"),
			Name:   h.get(rec, "fighter_name"),
			Rating: rating,
			Date:   d,
			Event:  h.get(rec, "peak_event"),
			Label:  h.get(rec, "peak_bout"),
		})
	}

	logger.Get().Named("csvio").Info(ctx, "peaks loaded",
		logger.String("path", path), logger.Int("rows", len(peaks)))
	return peaks, nil
}
