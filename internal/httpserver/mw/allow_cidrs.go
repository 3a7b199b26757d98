package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/utils"
)

// AllowOnlyCIDRS restricts a route to the listed addresses and networks.
// An empty list leaves the route open. With trustProxy the client address
// comes from proxy headers (see utils.ClientIP).
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		log.Debug("AllowOnlyCIDRS: no rules, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debug("AllowOnlyCIDRS: initialized",
		logger.Strings("rules", allowed),
		logger.Bool("trust_proxy", trustProxy))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if m.Allow(ip) {
				next.ServeHTTP(w, r)
				return
			}

			log.Warn("AllowOnlyCIDRS: address rejected",
				logger.String("ip", ip),
				logger.String("path", r.URL.Path))
			writeError(w, http.StatusForbidden, codeForbidden, "Your address is not allowed to use this endpoint.")
		})
	}
}
