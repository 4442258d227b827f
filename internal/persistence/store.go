// Package persistence defines the worker's read/merge/write contract
// against the relational store that owns Lead records. PostgresStore is
// a concrete adapter exercising the interface, with no schema or
// migration concerns attached.
package persistence

import (
	"context"

	"leadforge-worker/pkg/models"
)

// LeadStore is the persistence boundary the processor depends on. It
// never owns schema or migrations; those are an external concern.
type LeadStore interface {
	// AuditSessionUser resolves an audit session id to its owning user id.
	AuditSessionUser(ctx context.Context, auditSessionID string) (string, error)

	// ListAuditableLeads returns every lead owned by userID that has a
	// non-null domain.
	ListAuditableLeads(ctx context.Context, userID string) ([]*models.Lead, error)

	// MergeLeadEnrichment writes the scrape/audit enrichment fields back
	// onto a single lead.
	MergeLeadEnrichment(ctx context.Context, leadID string, enrichment Enrichment) error
}

// Enrichment is the set of fields the processor writes back for one
// lead after scraping and auditing it.
type Enrichment struct {
	ScrapedEmails  []string
	ScrapedPhones  []string
	Technologies   []models.Technology
	HasSSL         bool
	HasAuditResult bool
}
