package persistence

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"leadforge-worker/internal/apperrors"
	"leadforge-worker/pkg/models"
)

// PostgresStore implements LeadStore against a Postgres database via
// pgx's connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore opens a pooled connection to databaseURL.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, apperrors.Fatal("persistence: failed to create connection pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, apperrors.Fatal("persistence: failed to reach database", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// AuditSessionUser resolves an audit session to its owning user.
func (s *PostgresStore) AuditSessionUser(ctx context.Context, auditSessionID string) (string, error) {
	var userID string
	err := s.pool.QueryRow(ctx,
		`SELECT "userId" FROM "AuditSession" WHERE id = $1`, auditSessionID,
	).Scan(&userID)
	if err != nil {
		return "", apperrors.Malformed("persistence: unknown audit session", err)
	}
	return userID, nil
}

// ListAuditableLeads returns every lead owned by userID with a non-null
// domain.
func (s *PostgresStore) ListAuditableLeads(ctx context.Context, userID string) ([]*models.Lead, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, domain, COALESCE(email, ''), "additionalEmails", "phoneNumbers", "scrapedAt", "auditedAt"
		FROM "Lead"
		WHERE "userId" = $1 AND domain IS NOT NULL
	`, userID)
	if err != nil {
		return nil, apperrors.Transient("persistence: failed to list leads", err)
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		lead := &models.Lead{}
		if err := rows.Scan(
			&lead.ID, &lead.Domain, &lead.Email, &lead.AdditionalEmails,
			&lead.PhoneNumbers, &lead.ScrapedAt, &lead.AuditedAt,
		); err != nil {
			return nil, apperrors.Transient("persistence: failed to scan lead row", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Transient("persistence: error iterating lead rows", err)
	}

	return leads, nil
}

// websiteAudit is the JSON shape persisted for an audited lead's
// technology and SSL findings.
type websiteAudit struct {
	Technologies []technologyJSON `json:"technologies"`
	SSL          sslJSON          `json:"ssl"`
}

type technologyJSON struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Version  string `json:"version,omitempty"`
}

type sslJSON struct {
	HasSSL bool `json:"hasSSL"`
}

// MergeLeadEnrichment promotes the first scraped email to primary when
// absent, unions/dedupes/sorts additional emails and phone numbers
// against what is already stored, and writes the technology/audit blob
// when an audit ran.
func (s *PostgresStore) MergeLeadEnrichment(ctx context.Context, leadID string, enrichment Enrichment) error {
	var existingEmail string
	var existingAdditional, existingPhones []string

	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(email, ''), "additionalEmails", "phoneNumbers" FROM "Lead" WHERE id = $1`, leadID,
	).Scan(&existingEmail, &existingAdditional, &existingPhones)
	if err != nil {
		return apperrors.Transient("persistence: failed to read lead for merge", err)
	}

	primary := existingEmail
	if primary == "" && len(enrichment.ScrapedEmails) > 0 {
		primary = enrichment.ScrapedEmails[0]
	}

	additional := unionDedupSorted(existingAdditional, enrichment.ScrapedEmails)
	additional = removeValue(additional, primary)

	phones := unionDedupSorted(existingPhones, enrichment.ScrapedPhones)

	var technologies []string
	var auditBlob []byte
	if enrichment.HasAuditResult {
		technologies = make([]string, 0, len(enrichment.Technologies))
		for _, t := range enrichment.Technologies {
			technologies = append(technologies, t.Name)
		}

		techJSON := make([]technologyJSON, 0, len(enrichment.Technologies))
		for _, t := range enrichment.Technologies {
			techJSON = append(techJSON, technologyJSON{Name: t.Name, Category: t.Category})
		}

		blob, err := json.Marshal(websiteAudit{
			Technologies: techJSON,
			SSL:          sslJSON{HasSSL: enrichment.HasSSL},
		})
		if err != nil {
			return apperrors.Malformed("persistence: failed to marshal website audit blob", err)
		}
		auditBlob = blob
	}

	_, err = s.pool.Exec(ctx, `
		UPDATE "Lead"
		SET email = $1, "additionalEmails" = $2, "phoneNumbers" = $3,
		    technologies = COALESCE($4, technologies), "websiteAudit" = COALESCE($5, "websiteAudit"),
		    "scrapedAt" = now(), "auditedAt" = now()
		WHERE id = $6
	`, primary, additional, phones, technologies, auditBlob, leadID)
	if err != nil {
		return apperrors.Transient("persistence: failed to write lead enrichment", err)
	}

	return nil
}

// unionDedupSorted merges two string slices, dedupes, and sorts. Applying
// it twice with the same fresh set is a no-op, which keeps repeated
// merges of additionalEmails and phoneNumbers idempotent.
func unionDedupSorted(existing, fresh []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(fresh))
	var out []string

	for _, v := range existing {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, v := range fresh {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	sort.Strings(out)
	return out
}

func removeValue(values []string, target string) []string {
	if target == "" {
		return values
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
