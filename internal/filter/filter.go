// Package filter implements the lead eligibility policy: which leads in
// a batch are due for scraping right now.
package filter

import (
	"time"

	"leadforge-worker/pkg/models"
)

const recencyWindow = 24 * time.Hour

// ShouldAudit reports whether a lead is due for scraping. A lead scraped
// or audited within the last 24h is rejected outright. Otherwise: with no
// timestamps at all, accept; with a timestamp outside the window, accept
// only if the lead is missing contact info entirely.
func ShouldAudit(lead *models.Lead) bool {
	now := time.Now()

	if withinWindow(lead.ScrapedAt, now) || withinWindow(lead.AuditedAt, now) {
		return false
	}

	if lead.ScrapedAt == nil && lead.AuditedAt == nil {
		return true
	}

	return !lead.HasContactInfo()
}

func withinWindow(t *time.Time, now time.Time) bool {
	if t == nil {
		return false
	}
	return now.Sub(*t) < recencyWindow
}
