package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/fightelo/internal/adapters/csvio"
	"github.com/okian/fightelo/pkg/logger"
)

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Fold Elo updates over the bout sequence",
	Long: `Rate replays the unified bout table in chronological order,
applying one zero-sum Elo update per decided bout. It writes the
per-bout audit ledger, the final ratings snapshot and the simple
name,rating export.`,
	RunE: runRate,
}

func init() {
	rateCmd.Flags().StringP("input", "i", "", "unified bout table to rate")
	rateCmd.Flags().String("out-history", "", "output path for the audit ledger")
	rateCmd.Flags().String("out-ratings", "", "output path for the ratings snapshot")
	rateCmd.Flags().String("out-ratings-simple", "", "output path for the name,rating export")
	rateCmd.Flags().Float64("base-rating", 0, "starting rating for every competitor")
	rateCmd.Flags().Float64("k-factor", 0, "base update step before dominance weighting")
	rateCmd.Flags().Float64("scale", 0, "logistic spread of the expected-score curve")
}

func runRate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	stringFlagOverride(cmd, "input", &cfg.BoutsCSV)
	stringFlagOverride(cmd, "out-history", &cfg.HistoryCSV)
	stringFlagOverride(cmd, "out-ratings", &cfg.RatingsCSV)
	stringFlagOverride(cmd, "out-ratings-simple", &cfg.RatingsSimpleCSV)
	floatFlagOverride(cmd, "base-rating", &cfg.BaseRating)
	floatFlagOverride(cmd, "k-factor", &cfg.KFactor)
	floatFlagOverride(cmd, "scale", &cfg.Scale)

	stage("rate")
	bouts, err := csvio.ReadBouts(ctx, cfg.BoutsCSV)
	if err != nil {
		log.Error(ctx, "rate failed", logger.Error(err))
		return err
	}

	ledger, snapshot, err := newEngine(cfg).Run(ctx, bouts)
	if err != nil {
		log.Error(ctx, "rate failed", logger.Error(err))
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

	done("rated %d bouts; %d competitors in %s", len(ledger), len(snapshot), cfg.RatingsCSV)
	return nil
}
