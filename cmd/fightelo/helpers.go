package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/okian/fightelo/internal/config"
	"github.com/okian/fightelo/internal/domain/classify"
	"github.com/okian/fightelo/internal/domain/engine"
	"github.com/okian/fightelo/pkg/logger"
)

// loadConfig layers the config file and environment over defaults, applies
// the log level and tags the logger with a fresh run id.
func loadConfig(cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	ctx := cmd.Context()

	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if flagLevel, err := cmd.Root().PersistentFlags().GetString("log-level"); err == nil && flagLevel != "" {
		level = flagLevel
	}
	log := logger.Get().Named("cli")
	if err := logger.SetLevelString(level); err != nil {
		log.Warn(ctx, "invalid log level; falling back to info",
			logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	log.Info(ctx, "run starting",
		logger.String("run_id", uuid.NewString()),
		logger.String("command", cmd.Name()),
	)
	return cfg, log, nil
}

// newClassifier builds the classifier from configured multipliers and
// dominance thresholds.
func newClassifier(cfg *config.Config) *classify.Classifier {
	return classify.New(
		classify.WithFinishMultiplier(cfg.MultiplierFinish),
		classify.WithDominantMultiplier(cfg.MultiplierDominant),
		classify.WithNormalMultiplier(cfg.MultiplierNormal),
		classify.WithDominanceThresholds(cfg.MarginDominantAny, cfg.MarginDominantTwo, cfg.DominantTwoCount),
	)
}

// newEngine builds the rating engine from configured parameters.
func newEngine(cfg *config.Config) *engine.Engine {
	return engine.New(
		engine.WithBaseRating(cfg.BaseRating),
		engine.WithKFactor(cfg.KFactor),
		engine.WithScale(cfg.Scale),
		engine.WithClassifier(newClassifier(cfg)),
	)
}

// stage prints a colored stage banner to stderr, keeping stdout clean for
// piped output.
func stage(name string) {
	color.New(color.FgCyan, color.Bold).Fprintf(os.Stderr, "==> %s\n", name)
}

// done prints a green completion note to stderr.
func done(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(os.Stderr, format+"\n", args...)
}

// stringFlagOverride copies a changed string flag into dst.
func stringFlagOverride(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		if v, err := cmd.Flags().GetString(name); err == nil {
			*dst = v
		}
	}
}

// floatFlagOverride copies a changed float flag into dst.
func floatFlagOverride(cmd *cobra.Command, name string, dst *float64) {
	if cmd.Flags().Changed(name) {
		if v, err := cmd.Flags().GetFloat64(name); err == nil {
			*dst = v
		}
	}
}
