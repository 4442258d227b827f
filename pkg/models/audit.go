package models

import "time"

// AuditResult is the per-URL output of auditing a fetched document.
type AuditResult struct {
	URL             string
	Technologies    []Technology
	HasSSL          bool
	PageTitle       string
	MetaDescription string
	AuditedAt       time.Time
}

// HasTechnology reports whether the audit detected the named technology,
// regardless of category.
func (a *AuditResult) HasTechnology(name string) bool {
	for _, t := range a.Technologies {
		if t.Name == name {
			return true
		}
	}
	return false
}
