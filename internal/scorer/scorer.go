// Package scorer implements the Hot/Warm/Cold lead classification.
package scorer

import (
	"leadforge-worker/internal/extract"
	"leadforge-worker/pkg/models"
)

var modernTechnologies = []string{"React", "Vue.js", "Next.js", "Nuxt.js", "Svelte"}

// Score classifies a lead's scraped data and (optional) audit result.
// auditResult may be nil when no HTML was available to audit.
func Score(scraped *models.ScrapedData, auditResult *models.AuditResult) models.LeadScore {
	hasPersonalEmail := hasPersonalEmail(scraped)
	hasPhone := len(scraped.Phones) > 0
	hasModernTech := hasModernTech(auditResult)
	hasSSL := auditResult != nil && auditResult.HasSSL

	if hasPersonalEmail && hasPhone && hasModernTech && hasSSL {
		return models.ScoreHot
	}

	if hasPersonalEmail || hasPhone {
		return models.ScoreWarm
	}

	return models.ScoreCold
}

func hasPersonalEmail(scraped *models.ScrapedData) bool {
	for _, email := range scraped.Emails {
		if !extract.IsGenericEmail(email) {
			return true
		}
	}
	return false
}

func hasModernTech(auditResult *models.AuditResult) bool {
	if auditResult == nil {
		return false
	}
	for _, name := range modernTechnologies {
		if auditResult.HasTechnology(name) {
			return true
		}
	}
	return false
}
