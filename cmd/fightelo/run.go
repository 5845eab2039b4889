package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/fightelo/internal/adapters/csvio"
	"github.com/okian/fightelo/internal/domain/peak"
	"github.com/okian/fightelo/pkg/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the whole pipeline from raw exports to peak ratings",
	Long: `Run chains prepare, classify, rate and peak in one process,
writing every intermediate artifact so each stage can be re-run or
audited on its own.`,
	RunE: runAll,
}

func init() {
	runCmd.Flags().String("events", "", "path to the event details CSV")
	runCmd.Flags().String("results", "", "path to the fight results CSV")
	runCmd.Flags().String("fighters", "", "path to the fighter roster CSV (optional)")
	runCmd.Flags().Float64("base-rating", 0, "starting rating for every competitor")
	runCmd.Flags().Float64("k-factor", 0, "base update step before dominance weighting")
	runCmd.Flags().Float64("scale", 0, "logistic spread of the expected-score curve")
}

func runAll(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	stringFlagOverride(cmd, "events", &cfg.EventsCSV)
	stringFlagOverride(cmd, "results", &cfg.ResultsCSV)
	stringFlagOverride(cmd, "fighters", &cfg.FightersCSV)
	floatFlagOverride(cmd, "base-rating", &cfg.BaseRating)
	floatFlagOverride(cmd, "k-factor", &cfg.KFactor)
	floatFlagOverride(cmd, "scale", &cfg.Scale)

	stage("prepare")
	bouts, err := csvio.BuildBouts(ctx, cfg.EventsCSV, cfg.ResultsCSV, cfg.FightersCSV)
	if err != nil {
		log.Error(ctx, "pipeline failed", logger.Error(err))
		return err
	}
	if err := csvio.WriteBouts(ctx, cfg.BoutsCSV, bouts); err != nil {
		return err
	}

	stage("classify")
	if err := csvio.WriteClassified(ctx, cfg.ClassifiedCSV, bouts, newClassifier(cfg)); err != nil {
		return err
	}

	stage("rate")
	ledger, snapshot, err := newEngine(cfg).Run(ctx, bouts)
	if err != nil {
		log.Error(ctx, "pipeline failed", logger.Error(err))
		return err
	}
	if err := csvio.WriteLedger(ctx, cfg.HistoryCSV, ledger); err != nil {
		return err
	}
	if err := csvio.WriteSnapshot(ctx, cfg.RatingsCSV, snapshot); err != nil {
		return err
	}
	if err := csvio.WriteSnapshotSimple(ctx, cfg.RatingsSimpleCSV, snapshot); err != nil {
		return err
	}

	stage("peak")
	peaks := peak.Peaks(ledger)
	if err := csvio.WritePeaks(ctx, cfg.PeaksCSV, peaks); err != nil {
		return err
	}
	if err := csvio.WritePeaksSimple(ctx, cfg.PeaksSimpleCSV, peaks); err != nil {
		return err
	}

	done("pipeline complete: %d bouts rated, %d competitors, %d peaks",
		len(ledger), len(snapshot), len(peaks))
	return nil
}
