// Package api declares HTTP contracts and route registration helpers.
//
// The API is read-only: it serves the standings computed by a previous
// pipeline run. Ratings are never mutated through HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/fightelo/internal/adapters/repository"
	"github.com/okian/fightelo/pkg/metrics"
)

// Entry mirrors the read shape returned by standings queries.
type Entry struct {
	Rank   int     `json:"rank"`
	Key    string  `json:"fighter_id"`
	Name   string  `json:"fighter_name"`
	Rating float64 `json:"rating"`
	Fights int     `json:"fights,omitempty"`
	Wins   int     `json:"wins,omitempty"`
	Losses int     `json:"losses,omitempty"`
	Draws  int     `json:"draws,omitempty"`
}

func fromStore(e repository.Entry) Entry {
	return Entry{
		Rank:   e.Rank,
		Key:    e.Key,
		Name:   e.Name,
		Rating: e.Rating,
		Fights: e.Fights,
		Wins:   e.Wins,
		Losses: e.Losses,
		Draws:  e.Draws,
	}
}

// Server wires HTTP routes for the standings API.
type Server struct {
	healthHandler      *HealthHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	peaksHandler       *PeaksHandler
}

// NewServer creates a new API server over the current-ratings and
// peak-ratings stores.
func NewServer(ratings, peaks repository.Store, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(ratings),
		leaderboardHandler: NewLeaderboardHandler(ratings, maxLimit),
		rankHandler:        NewRankHandler(ratings),
		peaksHandler:       NewPeaksHandler(peaks, maxLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/peaks", MetricsMiddleware(s.peaksHandler.HandleGetPeaks, "peaks"))
	mux.Handle("/metrics", metrics.Handler())
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeStoreError translates repository errors to HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
