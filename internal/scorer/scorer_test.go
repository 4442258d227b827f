package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leadforge-worker/pkg/models"
)

func TestScoreHot(t *testing.T) {
	scraped := &models.ScrapedData{
		Emails: []string{"jane@company.io"},
		Phones: []string{"+33123456789"},
	}
	audit := &models.AuditResult{
		Technologies: []models.Technology{{Name: "React", Category: "Frontend Framework"}},
		HasSSL:       true,
	}

	assert.Equal(t, models.ScoreHot, Score(scraped, audit))
}

func TestScoreWarmGenericEmailWithPhone(t *testing.T) {
	scraped := &models.ScrapedData{
		Emails: []string{"info@company.io"},
		Phones: []string{"+33123456789"},
	}

	assert.Equal(t, models.ScoreWarm, Score(scraped, nil))
}

func TestScoreWarmPersonalEmailNoPhone(t *testing.T) {
	scraped := &models.ScrapedData{
		Emails: []string{"jane@company.io"},
	}

	assert.Equal(t, models.ScoreWarm, Score(scraped, nil))
}

func TestScoreColdGenericEmailNoPhoneNoAudit(t *testing.T) {
	scraped := &models.ScrapedData{
		Emails: []string{"info@company.io"},
	}

	assert.Equal(t, models.ScoreCold, Score(scraped, nil))
}

func TestScoreColdNothingFound(t *testing.T) {
	scraped := &models.ScrapedData{}
	assert.Equal(t, models.ScoreCold, Score(scraped, nil))
}

func TestScoreMissingSSLIsWarmNotHot(t *testing.T) {
	scraped := &models.ScrapedData{
		Emails: []string{"jane@company.io"},
		Phones: []string{"+33123456789"},
	}
	audit := &models.AuditResult{
		Technologies: []models.Technology{{Name: "React", Category: "Frontend Framework"}},
		HasSSL:       false,
	}

	assert.Equal(t, models.ScoreWarm, Score(scraped, audit))
}
