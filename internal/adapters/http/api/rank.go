package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/fightelo/internal/adapters/repository"
)

// RankDependencies defines the interface for rank lookups.
type RankDependencies interface {
	Rank(ctx context.Context, key string) (repository.Entry, error)
}

// RankHandler handles per-competitor rank requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /rank/{key} requests. Keys may be profile URLs
// whose slashes do not survive as a path segment, so GET /rank/?key={key}
// is accepted as well and takes precedence.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	key := r.URL.Query().Get("key")
	if key == "" {
		raw := strings.TrimPrefix(r.URL.EscapedPath(), "/rank/")
		unescaped, err := url.PathUnescape(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		key = unescaped
	}
	if key == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	entry, err := h.deps.Rank(r.Context(), key)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fromStore(entry))
}
