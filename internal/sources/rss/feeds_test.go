package rss

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
)

func TestLoadFeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	content := `feeds:
  - name: BBC Technology
    url: https://feeds.bbci.co.uk/news/technology/rss.xml
    category: technology
  - url: https://feeds.bbci.co.uk/news/rss.xml
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	feeds, err := LoadFeeds(path)
	if err != nil {
		t.Fatalf("LoadFeeds() error = %v", err)
	}
	if len(feeds) != 2 {
		t.Fatalf("LoadFeeds() returned %v feeds, want 2", len(feeds))
	}
	if feeds[0].Category != domain.CategoryTechnology {
		t.Errorf("feeds[0].Category = %q, want technology", feeds[0].Category)
	}
	if feeds[1].Category != domain.CategoryGeneral {
		t.Errorf("missing category should default to general, got %q", feeds[1].Category)
	}
}

func TestParseFeedsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no feeds", "feeds: []"},
		{"missing url", "feeds:\n  - category: sports\n"},
		{"unknown category", "feeds:\n  - url: https://a.example.com\n    category: weather\n"},
		{"invalid yaml", "feeds: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFeeds([]byte(tt.content)); err == nil {
				t.Error("ParseFeeds() should return error")
			}
		})
	}

	_, err := ParseFeeds([]byte("feeds:\n  - url: https://a.example.com\n    category: weather\n"))
	if !errors.Is(err, domain.ErrUnknownCategory) {
		t.Errorf("ParseFeeds() error = %v, want ErrUnknownCategory", err)
	}
}

func TestForCategory(t *testing.T) {
	feeds := []Feed{
		{URL: "a", Category: domain.CategoryTechnology},
		{URL: "b", Category: domain.CategoryGeneral},
	}

	if got := forCategory(feeds, domain.CategoryGeneral); len(got) != 2 {
		t.Errorf("forCategory(general) = %v feeds, want 2", len(got))
	}
	if got := forCategory(feeds, domain.CategoryTechnology); len(got) != 1 || got[0].URL != "a" {
		t.Errorf("forCategory(technology) = %+v", got)
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantText  string
		wantImage string
	}{
		{"empty", "", "", ""},
		{"plain text", "  hello   world ", "hello world", ""},
		{"html", `<p>Hi <b>there</b></p><img src="https://x/a.png"><script>alert(1)</script>`, "Hi there", "https://x/a.png"},
		{"entities", "Fish &amp; Chips", "Fish & Chips", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, image := flatten(tt.input)
			if text != tt.wantText {
				t.Errorf("flatten() text = %q, want %q", text, tt.wantText)
			}
			if image != tt.wantImage {
				t.Errorf("flatten() image = %q, want %q", image, tt.wantImage)
			}
		})
	}
}
