package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/fightelo/internal/adapters/csvio"
	"github.com/okian/fightelo/pkg/logger"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Build the unified bout table from raw CSV exports",
	Long: `Prepare joins the fight results export against event dates and,
when a fighter roster is given, canonical profile URLs. The output is the
unified bout table every later stage consumes.`,
	RunE: runPrepare,
}

func init() {
	prepareCmd.Flags().String("events", "", "path to the event details CSV")
	prepareCmd.Flags().String("results", "", "path to the fight results CSV")
	prepareCmd.Flags().String("fighters", "", "path to the fighter roster CSV (optional)")
	prepareCmd.Flags().StringP("output", "o", "", "output path for the unified bout table")
}

func runPrepare(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	stringFlagOverride(cmd, "events", &cfg.EventsCSV)
	stringFlagOverride(cmd, "results", &cfg.ResultsCSV)
	stringFlagOverride(cmd, "fighters", &cfg.FightersCSV)
	stringFlagOverride(cmd, "output", &cfg.BoutsCSV)

	stage("prepare")
	bouts, err := csvio.BuildBouts(ctx, cfg.EventsCSV, cfg.ResultsCSV, cfg.FightersCSV)
	if err != nil {
		log.Error(ctx, "prepare failed", logger.Error(err))
		return err
	}
	if err := csvio.WriteBouts(ctx, cfg.BoutsCSV, bouts); err != nil {
		log.Error(ctx, "prepare failed", logger.Error(err))
		return err
	}

	done("wrote %d bouts to %s", len(bouts), cfg.BoutsCSV)
	return nil
}
