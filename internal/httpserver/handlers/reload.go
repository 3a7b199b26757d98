package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/newsdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
)

type reloadResponse struct {
	Reload  string `json:"reload"`
	Message string `json:"message"`
}

// Reload queues a catalog reload. The trigger holds one pending reload,
// further calls get 429 until the reloader picks it up.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual catalog reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, reloadResponse{
				Reload:  "queued",
				Message: "Catalog reload triggered.",
			})
		default:
			d.Logger.Warn("catalog reload already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, reloadResponse{
				Reload:  "pending",
				Message: "A reload is already pending, please wait.",
			})
		}
	}
}
