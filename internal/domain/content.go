package domain

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// PlaceholderImageURL replaces missing or unusable article images.
const PlaceholderImageURL = "https://images.unsplash.com/photo-1504711434969-e33886168f5c?w=800&h=400&fit=crop"

var truncationMarker = regexp.MustCompile(`\[\+\d+ chars\]`)

// CleanContent replaces upstream truncation markers ("[+1234 chars]") with "...".
// Example: "Markets rallied [+2113 chars]" -> "Markets rallied ..."
func CleanContent(s string) string {
	return strings.TrimSpace(truncationMarker.ReplaceAllString(s, "..."))
}

// ImageOrPlaceholder returns raw when it is an absolute http(s) URL,
// PlaceholderImageURL otherwise.
func ImageOrPlaceholder(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PlaceholderImageURL
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return PlaceholderImageURL
	}
	return raw
}

// RelativeTime renders the distance between t and now the way news cards show it
// ("less than a minute ago", "5 minutes ago", "about 2 hours ago", "3 days ago").
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	future := d < 0
	if future {
		d = -d
	}

	s := distance(d)
	if future {
		return "in " + s
	}
	return s + " ago"
}

func distance(d time.Duration) string {
	minutes := int(math.Round(d.Minutes()))

	switch {
	case minutes < 1:
		return "less than a minute"
	case minutes < 2:
		return "1 minute"
	case minutes < 45:
		return fmt.Sprintf("%d minutes", minutes)
	case minutes < 90:
		return "about 1 hour"
	case minutes < 24*60:
		return fmt.Sprintf("about %d hours", int(math.Round(float64(minutes)/60)))
	case minutes < 42*60:
		return "1 day"
	case minutes < 30*24*60:
		return fmt.Sprintf("%d days", int(math.Round(float64(minutes)/(24*60))))
	}

	months := int(math.Round(float64(minutes) / (30 * 24 * 60)))
	switch {
	case minutes < 60*24*60:
		if months < 1 {
			months = 1
		}
		if months == 1 {
			return "about 1 month"
		}
		return fmt.Sprintf("about %d months", months)
	case months < 12:
		return fmt.Sprintf("%d months", months)
	}

	years := months / 12
	switch rest := months % 12; {
	case rest < 3:
		return plural("about", years, "year")
	case rest < 9:
		return plural("over", years, "year")
	default:
		return plural("almost", years+1, "year")
	}
}

func plural(prefix string, n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%s 1 %s", prefix, unit)
	}
	return fmt.Sprintf("%s %d %ss", prefix, n, unit)
}
