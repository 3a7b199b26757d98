package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/httpserver/deps"
)

type catalogStatus struct {
	OK         bool           `json:"ok"`
	Source     string         `json:"source"`
	Articles   int            `json:"articles"`
	Categories map[string]int `json:"categories"`
	LastReload string         `json:"last_reload"`
}

type statusResponse struct {
	Mode    string        `json:"mode"`
	Version string        `json:"version,omitempty"`
	Catalog catalogStatus `json:"catalog"`
}

// Status describes the served catalog: size, per-category counts and last reload.
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		count := d.Index.Count()
		lastReload := d.Index.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		source := d.CatalogFile
		if source == "" {
			source = "embedded"
		}

		categories := make(map[string]int)
		for _, c := range domain.Categories() {
			if c.IsGeneral() {
				categories[c.String()] = count
				continue
			}
			categories[c.String()] = 0
		}
		for c, n := range d.Index.CategoryCounts() {
			categories[c.String()] = n
		}

		_ = json.NewEncoder(w).Encode(statusResponse{
			Mode:    determineMode(count),
			Version: d.Version,
			Catalog: catalogStatus{
				OK:         count > 0,
				Source:     source,
				Articles:   count,
				Categories: categories,
				LastReload: lastReloadStr,
			},
		})
	}
}

func determineMode(articles int) string {
	if articles == 0 {
		return "critical" // nothing to serve
	}
	return "serving"
}
