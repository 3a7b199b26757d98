package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/newsdesk/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready    bool `json:"ready"`
	Articles int  `json:"articles"`
}

// Readyz reports ready once the catalog has been loaded at least once.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready := d.Index.Loaded()

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if ready {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready:    ready,
			Articles: d.Index.Count(),
		})
	}
}
