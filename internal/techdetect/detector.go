package techdetect

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"leadforge-worker/pkg/models"
)

// Detect matches the catalog against raw HTML, returning one Technology
// per catalog entry with at least one matching pattern. A malformed or
// empty document produces an empty, never nil-panicking, result;
// detection never fails.
func Detect(html string) []models.Technology {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(html))

	var hits []models.Technology
	for _, e := range catalog {
		if entryMatches(e, html, doc) {
			hits = append(hits, models.Technology{Name: e.name, Category: e.category})
		}
	}

	return dedupe(hits)
}

func entryMatches(e entry, html string, doc *goquery.Document) bool {
	for _, p := range e.patterns {
		if p.matches(html, doc) {
			return true
		}
	}
	return false
}

func dedupe(hits []models.Technology) []models.Technology {
	result := make([]models.Technology, 0, len(hits))

	for _, h := range hits {
		if !containsTechnology(result, h) {
			result = append(result, h)
		}
	}

	return result
}

func containsTechnology(hits []models.Technology, target models.Technology) bool {
	for _, h := range hits {
		if h.Equal(target) {
			return true
		}
	}
	return false
}
