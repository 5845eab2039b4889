package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/fightelo/internal/adapters/csvio"
	"github.com/okian/fightelo/internal/domain/peak"
	"github.com/okian/fightelo/pkg/logger"
)

var peakCmd = &cobra.Command{
	Use:   "peak",
	Short: "Extract each competitor's peak rating from the audit ledger",
	Long: `Peak scans the audit ledger for the highest rating each competitor
ever attained, keeping the earliest bout when the same peak occurs more
than once. It writes the detailed peak table and the simple
name,peak_rating export.`,
	RunE: runPeak,
}

func init() {
	peakCmd.Flags().StringP("input", "i", "", "audit ledger to scan")
	peakCmd.Flags().StringP("output", "o", "", "output path for the peak table")
	peakCmd.Flags().String("out-simple", "", "output path for the name,peak_rating export")
}

func runPeak(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	stringFlagOverride(cmd, "input", &cfg.HistoryCSV)
	stringFlagOverride(cmd, "output", &cfg.PeaksCSV)
	stringFlagOverride(cmd, "out-simple", &cfg.PeaksSimpleCSV)

	stage("peak")
	ledger, err := csvio.ReadLedger(ctx, cfg.HistoryCSV)
	if err != nil {
		log.Error(ctx, "peak failed", logger.Error(err))
		return err
	}

	peaks := peak.Peaks(ledger)
	if err := csvio.WritePeaks(ctx, cfg.PeaksCSV, peaks); err != nil {
		return err
	}
	if err := csvio.WritePeaksSimple(ctx, cfg.PeaksSimpleCSV, peaks); err != nil {
		return err
	}

	done("wrote %d peaks to %s", len(peaks), cfg.PeaksCSV)
	return nil
}
