package domain

import (
	"testing"
	"time"
)

func TestCleanContent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single truncation marker",
			input:    "Markets rallied on Monday [+2113 chars]",
			expected: "Markets rallied on Monday ...",
		},
		{
			name:     "no marker",
			input:    "plain text",
			expected: "plain text",
		},
		{
			name:     "multiple markers",
			input:    "a [+1 chars] b [+22 chars]",
			expected: "a ... b ...",
		},
		{
			name:     "bracketed text that is not a marker",
			input:    "see [note] here",
			expected: "see [note] here",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanContent(tt.input); got != tt.expected {
				t.Errorf("CleanContent(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestImageOrPlaceholder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", PlaceholderImageURL},
		{"whitespace", "   ", PlaceholderImageURL},
		{"relative path", "/img/a.png", PlaceholderImageURL},
		{"unsupported scheme", "ftp://example.com/a.png", PlaceholderImageURL},
		{"valid https", "https://example.com/a.png", "https://example.com/a.png"},
		{"valid http", "http://example.com/a.png", "http://example.com/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImageOrPlaceholder(tt.input); got != tt.expected {
				t.Errorf("ImageOrPlaceholder(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ago      time.Duration
		expected string
	}{
		{"seconds", 10 * time.Second, "less than a minute ago"},
		{"one minute", 70 * time.Second, "1 minute ago"},
		{"thirty minutes", 30 * time.Minute, "30 minutes ago"},
		{"ninety minutes", 90 * time.Minute, "about 2 hours ago"},
		{"one hour", 60 * time.Minute, "about 1 hour ago"},
		{"five hours", 5*time.Hour + 30*time.Minute, "about 6 hours ago"},
		{"one day", 30 * time.Hour, "1 day ago"},
		{"three days", 72 * time.Hour, "3 days ago"},
		{"one month", 35 * 24 * time.Hour, "about 1 month ago"},
		{"five months", 150 * 24 * time.Hour, "5 months ago"},
		{"two years", 2 * 365 * 24 * time.Hour, "about 2 years ago"},
		{"one year", 365 * 24 * time.Hour, "about 1 year ago"},
		{"eighteen months", 18 * 30 * 24 * time.Hour, "over 1 year ago"},
		{"twenty-two months", 22 * 30 * 24 * time.Hour, "almost 2 years ago"},
		{"three and a half years", 42 * 30 * 24 * time.Hour, "over 3 years ago"},
		{"future", -10 * time.Minute, "in 10 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativeTime(now.Add(-tt.ago), now)
			if got != tt.expected {
				t.Errorf("RelativeTime(-%v) = %q, want %q", tt.ago, got, tt.expected)
			}
		})
	}
}

func TestRelativeTimeZero(t *testing.T) {
	if got := RelativeTime(time.Time{}, time.Now()); got != "" {
		t.Errorf("RelativeTime(zero) = %q, want empty", got)
	}
}
