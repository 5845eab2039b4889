package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/fightelo/internal/adapters/csvio"
	"github.com/okian/fightelo/internal/adapters/http/api"
	"github.com/okian/fightelo/internal/adapters/repository"
	"github.com/okian/fightelo/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve computed standings over HTTP",
	Long: `Serve loads a ratings snapshot and a peak table produced by an
earlier run and answers read-only standings queries: /healthz,
/leaderboard, /rank/{key}, /peaks and /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("ratings", "", "ratings snapshot to serve")
	serveCmd.Flags().String("peaks", "", "peak table to serve")
	serveCmd.Flags().String("addr", "", "HTTP listen address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	stringFlagOverride(cmd, "ratings", &cfg.RatingsCSV)
	stringFlagOverride(cmd, "peaks", &cfg.PeaksCSV)
	stringFlagOverride(cmd, "addr", &cfg.Addr)

	snapshot, err := csvio.ReadSnapshot(ctx, cfg.RatingsCSV)
	if err != nil {
		log.Error(ctx, "serve failed", logger.Error(err))
		return err
	}
	peaks, err := csvio.ReadPeaks(ctx, cfg.PeaksCSV)
	if err != nil {
		log.Error(ctx, "serve failed", logger.Error(err))
		return err
	}

	ratingsStore := repository.NewStandings(ctx, repository.WithMaxLimit(cfg.MaxLeaderboardLimit))
	entries := make([]repository.Entry, len(snapshot))
	for i, r := range snapshot {
		entries[i] = repository.Entry{
			Key:    r.Key,
			Name:   r.Name,
			Rating: r.Rating,
			Fights: r.Fights,
			Wins:   r.Wins,
			Losses: r.Losses,
			Draws:  r.Draws,
		}
	}
	if err := ratingsStore.Load(ctx, entries); err != nil {
		return err
	}

	peaksStore := repository.NewStandings(ctx, repository.WithMaxLimit(cfg.MaxLeaderboardLimit))
	peakEntries := make([]repository.Entry, len(peaks))
	for i, p := range peaks {
		peakEntries[i] = repository.Entry{
			Key:    p.Key,
			Name:   p.Name,
			Rating: p.Rating,
		}
	}
	if err := peaksStore.Load(ctx, peakEntries); err != nil {
		return err
	}

	mux := http.NewServeMux()
	api.NewServer(ratingsStore, peaksStore, cfg.MaxLeaderboardLimit).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.Int("competitors", ratingsStore.Count(ctx)),
			logger.Int("peaks", peaksStore.Count(ctx)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Error(ctx, "HTTP server failed", logger.Error(err))
		return err
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	log.Info(ctx, "server stopped")
	return nil
}
