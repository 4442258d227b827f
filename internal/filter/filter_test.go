package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"leadforge-worker/pkg/models"
)

func TestShouldAuditNeverProcessed(t *testing.T) {
	lead := &models.Lead{ID: "1", Domain: "example.com"}
	assert.True(t, ShouldAudit(lead))
}

func TestShouldAuditRecentlyScraped(t *testing.T) {
	now := time.Now()
	lead := &models.Lead{ID: "1", Domain: "example.com", ScrapedAt: &now}
	assert.False(t, ShouldAudit(lead))
}

func TestShouldAuditRecentlyAudited(t *testing.T) {
	now := time.Now()
	lead := &models.Lead{ID: "1", Domain: "example.com", AuditedAt: &now}
	assert.False(t, ShouldAudit(lead))
}

func TestShouldAuditOldTimestampWithContactInfo(t *testing.T) {
	old := time.Now().Add(-48 * time.Hour)
	lead := &models.Lead{ID: "1", Domain: "example.com", ScrapedAt: &old, Email: "jane@example.com"}
	assert.False(t, ShouldAudit(lead))
}

func TestShouldAuditOldTimestampMissingContactInfo(t *testing.T) {
	old := time.Now().Add(-48 * time.Hour)
	lead := &models.Lead{ID: "1", Domain: "example.com", ScrapedAt: &old}
	assert.True(t, ShouldAudit(lead))
}

func TestShouldAuditIsMonotoneInRecency(t *testing.T) {
	old := time.Now().Add(-48 * time.Hour)
	lead := &models.Lead{ID: "1", Domain: "example.com", ScrapedAt: &old}
	before := ShouldAudit(lead)

	recent := time.Now()
	lead.ScrapedAt = &recent
	after := ShouldAudit(lead)

	if before {
		assert.False(t, after, "adding a recent scrapedAt must not turn false back to true")
	} else {
		assert.Equal(t, before, after)
	}
}
