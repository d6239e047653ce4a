package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/findexhq/findex/internal/searchcore"
)

// searchAPI handles GET /api/v1/search - structured JSON search with
// cropping, highlighting, facet distribution and geo sort, per the
// Orchestrator's wire contract.
func (a *API) searchAPI(w http.ResponseWriter, r *http.Request) {
	if a.orchestrator == nil {
		http.Error(w, "search is not available", http.StatusServiceUnavailable)
		return
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var q searchcore.SearchQuery
	if err := dec.Decode(&q); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := a.orchestrator.Search(r.Context(), q)
	if err != nil {
		status := http.StatusInternalServerError

		if errors.Is(err, searchcore.ErrBadFilter) || errors.Is(err, searchcore.ErrBadSort) ||
			errors.Is(err, searchcore.ErrBadRequest) {
			status = http.StatusBadRequest
		}

		slog.ErrorContext(r.Context(), "structured search failed", "error", err)
		http.Error(w, err.Error(), status)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode search response", "error", err)
	}
}
