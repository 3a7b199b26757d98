package deps

import (
	"time"

	"github.com/MrSnakeDoc/newsdesk/internal/index"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/sources"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time    // for testing, defaults to time.Now
	AllowedHosts  []string            // Host headers allowed to access the server
	AllowedCIDRS  []string            // networks allowed to reach /reload and /metrics
	TrustProxy    bool                // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateLimitRPS  float64             // per-client requests per second on news routes, 0 = unlimited
	RateBurst     int                 // per-client burst on news routes
	CatalogFile   string              // path of the served catalog, empty = embedded default
	Index         *index.ArticleIndex // in-memory article catalog
	Source        sources.Source      // answers /v2 queries, backed by Index
	ReloadTrigger chan struct{}       // channel to trigger a manual catalog reload
}

// Now returns TimeNow() or time.Now() when unset.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
