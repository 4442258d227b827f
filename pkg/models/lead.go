package models

import "time"

// Lead is an enrichment target owned by an external writer. The worker
// only ever touches the fields listed in the persistence contract (see
// internal/persistence); everything else about a lead's lifecycle belongs
// to the system that created it.
type Lead struct {
	ID               string
	Domain           string
	Email            string
	AdditionalEmails []string
	PhoneNumbers     []string
	ScrapedAt        *time.Time
	AuditedAt        *time.Time
}

// HasContactInfo reports whether the lead already carries any contact
// details.
func (l *Lead) HasContactInfo() bool {
	return l.Email != "" || len(l.AdditionalEmails) > 0 || len(l.PhoneNumbers) > 0
}
