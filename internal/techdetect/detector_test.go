package techdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leadforge-worker/pkg/models"
)

func TestDetectReact(t *testing.T) {
	html := `<script src="/static/js/react.production.min.js"></script>`
	got := Detect(html)
	assert.Contains(t, got, models.Technology{Name: TechReact, Category: "Frontend Framework"})
}

func TestDetectWordPress(t *testing.T) {
	html := `<link rel="stylesheet" href="/wp-content/themes/mytheme/style.css">`
	got := Detect(html)
	assert.Contains(t, got, models.Technology{Name: TechWordPress, Category: "CMS"})
}

func TestDetectWordPressByMetaGenerator(t *testing.T) {
	html := `<meta name="generator" content="WordPress 6.4">`
	got := Detect(html)
	assert.Contains(t, got, models.Technology{Name: TechWordPress, Category: "CMS"})
}

func TestDetectNoMatches(t *testing.T) {
	html := `<html><body><p>nothing interesting here</p></body></html>`
	got := Detect(html)
	assert.Empty(t, got)
}

func TestDetectIsMonotoneInContent(t *testing.T) {
	base := `<html><body><p>hello</p></body></html>`
	before := Detect(base)

	extended := base + `<script src="/static/js/react.production.min.js"></script>`
	after := Detect(extended)

	assert.GreaterOrEqual(t, len(after), len(before))
	for _, tech := range before {
		assert.Contains(t, after, tech)
	}
}

func TestDetectDedupesByNameAndCategory(t *testing.T) {
	html := `<div data-react></div><script src="react.development.min.js"></script>`
	got := Detect(html)

	seen := map[models.Technology]int{}
	for _, tech := range got {
		seen[tech]++
	}
	for tech, count := range seen {
		assert.Equal(t, 1, count, "technology %v should appear once", tech)
	}
}
