package rss

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// flatten turns an HTML fragment into plain text and returns the first image source.
// Example: `<p>Hi <b>there</b></p><img src="a.png">` -> "Hi there", "a.png"
func flatten(fragment string) (text, image string) {
	if strings.TrimSpace(fragment) == "" {
		return "", ""
	}
	if !strings.ContainsAny(fragment, "<&") {
		return collapseSpaces(fragment), ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseSpaces(fragment), ""
	}

	if src, ok := doc.Find("img[src]").First().Attr("src"); ok {
		image = strings.TrimSpace(src)
	}
	doc.Find("script, style").Remove()

	return collapseSpaces(doc.Text()), image
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
