package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/newsdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/newsdesk/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/newsdesk/internal/httpserver/mw"
)

func init() { Register(registerProbes) }

// registerProbes mounts the liveness, readiness and status endpoints.
func registerProbes(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/status", handlers.Status(d))
}
