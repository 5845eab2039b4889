package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/fightelo/internal/adapters/csvio"
	"github.com/okian/fightelo/pkg/logger"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Attach outcome categories and rating multipliers to bouts",
	Long: `Classify reads the unified bout table and writes it back with each
bout's category, multiplier, the rule that decided it and any judge
margins parsed from the scorecard text.`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringP("input", "i", "", "unified bout table to classify")
	classifyCmd.Flags().StringP("output", "o", "", "output path for the classified table")
	classifyCmd.Flags().Float64("m-finish", 0, "multiplier for finishes")
	classifyCmd.Flags().Float64("m-dom", 0, "multiplier for dominant decisions")
	classifyCmd.Flags().Float64("m-dec", 0, "multiplier for normal decisions")
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	stringFlagOverride(cmd, "input", &cfg.BoutsCSV)
	stringFlagOverride(cmd, "output", &cfg.ClassifiedCSV)
	floatFlagOverride(cmd, "m-finish", &cfg.MultiplierFinish)
	floatFlagOverride(cmd, "m-dom", &cfg.MultiplierDominant)
	floatFlagOverride(cmd, "m-dec", &cfg.MultiplierNormal)

	stage("classify")
	bouts, err := csvio.ReadBouts(ctx, cfg.BoutsCSV)
	if err != nil {
		log.Error(ctx, "classify failed", logger.Error(err))
		return err
	}
	if err := csvio.WriteClassified(ctx, cfg.ClassifiedCSV, bouts, newClassifier(cfg)); err != nil {
		log.Error(ctx, "classify failed", logger.Error(err))
		return err
	}

	done("wrote %d classified bouts to %s", len(bouts), cfg.ClassifiedCSV)
	return nil
}
