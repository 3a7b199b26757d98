package domain

import (
	"strings"
	"unicode"
)

// Query represents parsed search input
type Query struct {
	Raw       string   // Original input, trimmed and lowercased
	Fragments []string // Normalized words, empty ones dropped
}

// ParseQuery parses user input into a structured query
// Examples:
//   - "Climate  Tech" -> ["climate", "tech"]
//   - "AI-breakthrough!" -> ["ai", "breakthrough"]
func ParseQuery(input string) *Query {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return &Query{Raw: input}
	}

	return &Query{
		Raw:       input,
		Fragments: Words(input),
	}
}

// Empty reports whether the query has nothing to match on.
func (q *Query) Empty() bool {
	return q == nil || len(q.Fragments) == 0
}

// Words splits free text into normalized words (letters and digits only).
func Words(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := normalizeFragment(f); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// normalizeFragment normalizes a fragment for matching
func normalizeFragment(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
