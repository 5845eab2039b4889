// Command fightelo turns raw UFC Stats exports into Elo ratings: it
// prepares a unified bout table, classifies finishes and dominant
// decisions, folds the rating updates in chronological order, extracts
// career peaks and serves the results over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/fightelo/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "fightelo",
	Short: "Historical Elo ratings for combat sports",
	Long: `fightelo builds dominance-weighted Elo ratings from UFC Stats CSV
exports. Bouts are replayed in chronological order, so the output is
deterministic for a given input.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = "1.0.0"

	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(peakCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().String("config", "", "path to YAML config file (or set FIGHTELO_CONFIG)")
	rootCmd.PersistentFlags().String("log-level", "", "log verbosity (debug|info|warn|error)")

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
