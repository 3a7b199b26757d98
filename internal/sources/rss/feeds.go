package rss

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
)

// Feed is a single RSS/Atom feed and the category its items belong to
type Feed struct {
	Name     string          `yaml:"name,omitempty"` // overrides the feed title as source name
	URL      string          `yaml:"url"`
	Category domain.Category `yaml:"category"`
}

// FeedsFile represents the top-level structure of the feeds YAML file
type FeedsFile struct {
	Feeds []Feed `yaml:"feeds"`
}

// LoadFeeds reads and validates a feeds file.
// Feeds tagged general only show up in the unfiltered list.
func LoadFeeds(path string) ([]Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}
	return ParseFeeds(data)
}

// ParseFeeds decodes and validates feeds YAML
func ParseFeeds(data []byte) ([]Feed, error) {
	var file FeedsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse feeds yaml: %w", err)
	}

	feeds := make([]Feed, 0, len(file.Feeds))
	for i, f := range file.Feeds {
		f.URL = strings.TrimSpace(f.URL)
		if f.URL == "" {
			return nil, fmt.Errorf("feed #%d: missing url", i+1)
		}
		c, err := domain.ParseCategory(string(f.Category))
		if err != nil {
			return nil, fmt.Errorf("feed #%d (%s): %w", i+1, f.URL, err)
		}
		f.Category = c
		feeds = append(feeds, f)
	}

	if len(feeds) == 0 {
		return nil, fmt.Errorf("no feeds configured")
	}
	return feeds, nil
}

// forCategory returns the feeds serving c, every feed for general
func forCategory(feeds []Feed, c domain.Category) []Feed {
	if c.IsGeneral() {
		return feeds
	}
	out := make([]Feed, 0, len(feeds))
	for _, f := range feeds {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return out
}
