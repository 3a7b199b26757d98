package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/newsdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/newsdesk/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/newsdesk/internal/httpserver/mw"
)

func init() { Register(registerNews) }

// registerNews mounts the NewsAPI-compatible endpoints.
func registerNews(r chi.Router, d deps.Deps) {
	r.Route("/v2", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Use(mw.RateLimit(mw.RateLimitConfig{
			RPS:        d.RateLimitRPS,
			Burst:      d.RateBurst,
			MaxEntries: 10000,
			TrustProxy: d.TrustProxy,
		}))
		r.Get("/top-headlines", handlers.TopHeadlines(d))
		r.Get("/everything", handlers.Everything(d))
		r.Get("/articles/{id}", handlers.ArticleByID(d))
	})
}
