package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/utils"
)

// hostSet holds normalized Host patterns: exact names and "*.suffix" wildcards.
type hostSet struct {
	exact    map[string]struct{}
	suffixes []string // ".example.com" for "*.example.com"
}

func newHostSet(patterns []string) hostSet {
	hs := hostSet{exact: make(map[string]struct{}, len(patterns))}
	for _, p := range patterns {
		p = strings.ToLower(utils.ParseHostNoPort(p))
		switch {
		case p == "":
		case strings.HasPrefix(p, "*."):
			hs.suffixes = append(hs.suffixes, p[1:])
		default:
			hs.exact[p] = struct{}{}
		}
	}
	return hs
}

func (hs hostSet) empty() bool {
	return len(hs.exact) == 0 && len(hs.suffixes) == 0
}

func (hs hostSet) match(host string) bool {
	host = strings.ToLower(utils.ParseHostNoPort(host))
	if _, ok := hs.exact[host]; ok {
		return true
	}
	for _, s := range hs.suffixes {
		if strings.HasSuffix(host, s) {
			return true
		}
	}
	return false
}

// matchHost reports whether host is allowed by a single pattern.
func matchHost(host, pattern string) bool {
	return newHostSet([]string{pattern}).match(host)
}

// EnforceHost rejects requests whose Host header is not listed.
// Patterns may be exact ("news.example.com") or wildcards ("*.example.com");
// ports are ignored on both sides. No patterns means no filtering.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	hs := newHostSet(allowedHosts)
	if hs.empty() {
		log.Debug("EnforceHost: no hosts configured, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debug("EnforceHost: initialized", logger.Strings("hosts", allowedHosts))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hs.match(r.Host) {
				log.Debug("EnforceHost: host rejected", logger.String("host", r.Host))
				writeError(w, http.StatusForbidden, codeForbidden, "Unknown host.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
