// Package audit composes the technology detector and document metadata
// extraction into an AuditResult for one fetched page.
package audit

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"leadforge-worker/internal/techdetect"
	"leadforge-worker/pkg/models"
)

// Audit builds an AuditResult for a fetched URL's raw HTML. SSL is derived
// purely from the URL scheme.
func Audit(url, html string) *models.AuditResult {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(html))

	result := &models.AuditResult{
		URL:          url,
		Technologies: techdetect.Detect(html),
		HasSSL:       strings.HasPrefix(url, "https://"),
		AuditedAt:    time.Now(),
	}

	if doc != nil {
		result.PageTitle = strings.TrimSpace(doc.Find("title").First().Text())
		if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
			result.MetaDescription = strings.TrimSpace(desc)
		}
	}

	return result
}
