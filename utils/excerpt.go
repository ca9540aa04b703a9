package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Excerpt strips markup from tip content and truncates the plain text to
// max runes for list payloads. Content that is not valid HTML is returned
// trimmed as-is.
func Excerpt(content string, max int) string {
	text := content
	if strings.Contains(content, "<") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err == nil {
			text = doc.Text()
		}
	}
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
