package api

import (
	"net/http"
)

// PeaksHandler handles peak-ratings leaderboard requests. It reads from its
// own store, so peak queries stay independent of the current standings.
type PeaksHandler struct {
	deps     LeaderboardDependencies
	maxLimit int
}

// NewPeaksHandler creates a new peaks handler.
func NewPeaksHandler(deps LeaderboardDependencies, maxLimit int) *PeaksHandler {
	return &PeaksHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetPeaks handles GET /peaks?limit=N requests.
func (h *PeaksHandler) HandleGetPeaks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n, err := parseLimit(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	entries, err := h.deps.TopN(r.Context(), n)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = fromStore(e)
	}
	writeJSON(w, http.StatusOK, out)
}
