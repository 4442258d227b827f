// Package processor orchestrates one job: resolving its lead batch,
// running each lead through the scrape → audit → score → persist →
// broadcast pipeline, and reporting progress.
package processor

import (
	"context"

	"github.com/google/uuid"

	"leadforge-worker/internal/apperrors"
	"leadforge-worker/internal/audit"
	"leadforge-worker/internal/broadcast"
	"leadforge-worker/internal/filter"
	"leadforge-worker/internal/logging"
	"leadforge-worker/internal/persistence"
	"leadforge-worker/internal/scorer"
	"leadforge-worker/internal/scraper"
	"leadforge-worker/pkg/models"
)

const progressLogInterval = 10

// AcceptedJobName is the only job-name tag this worker processes;
// anything else is requeued untouched.
const AcceptedJobName = "lead-audit"

// Processor wires one job's dependencies together.
type Processor struct {
	store     persistence.LeadStore
	scraper   *scraper.Scraper
	broadcast *broadcast.Client
}

// New builds a Processor over the worker's shared collaborators.
func New(store persistence.LeadStore, scr *scraper.Scraper, bc *broadcast.Client) *Processor {
	return &Processor{store: store, scraper: scr, broadcast: bc}
}

// Process runs the full per-job pipeline.
func (p *Processor) Process(ctx context.Context, job *models.BullMQJob) error {
	correlationID := uuid.New().String()
	log := logging.GetGlobalLogger()

	userID, err := p.store.AuditSessionUser(ctx, job.Data.AuditSessionID)
	if err != nil {
		return err
	}

	leads, err := p.store.ListAuditableLeads(ctx, userID)
	if err != nil {
		return err
	}

	var due []*models.Lead
	for _, lead := range leads {
		if filter.ShouldAudit(lead) {
			due = append(due, lead)
		}
	}

	log.Info("processing audit session", map[string]interface{}{
		"correlation_id":   correlationID,
		"audit_session_id": job.Data.AuditSessionID,
		"user_id":          userID,
		"leads_total":      len(leads),
		"leads_due":        len(due),
	})

	processed := 0
	for _, lead := range due {
		p.processLead(ctx, userID, lead, correlationID)
		processed++

		p.broadcast.AuditProgress(ctx, userID, lead.ID)

		if processed%progressLogInterval == 0 {
			log.Info("audit progress", map[string]interface{}{
				"correlation_id": correlationID,
				"processed":      processed,
				"total":          len(due),
			})
		}
	}

	p.broadcast.AuditComplete(ctx, userID, job.Data.AuditSessionID, processed, len(due))
	p.broadcast.StatsChanged(ctx, userID, job.Data.AuditSessionID)

	return nil
}

// processLead scrapes, audits, scores, and persists a single lead. Any
// failure is logged and the batch continues; a single bad domain must
// not abort the job.
func (p *Processor) processLead(ctx context.Context, userID string, lead *models.Lead, correlationID string) {
	log := logging.GetGlobalLogger()

	scraped, err := p.scraper.Scrape(ctx, lead.Domain)
	if err != nil {
		log.Warn("lead scrape failed, skipping", map[string]interface{}{
			"correlation_id": correlationID,
			"lead_id":        lead.ID,
			"domain":         lead.Domain,
			"error":          err.Error(),
		})
		return
	}

	var auditResult *models.AuditResult
	if scraped.HTML != "" {
		auditResult = audit.Audit(scraped.URL, scraped.HTML)
	}

	// Computed for observability only: the persistence contract has no
	// score column, so this never reaches storage.
	leadScore := scorer.Score(scraped, auditResult)
	log.Debug("lead scored", map[string]interface{}{
		"correlation_id": correlationID,
		"lead_id":        lead.ID,
		"score":          string(leadScore),
	})

	enrichment := persistence.Enrichment{
		ScrapedEmails: scraped.Emails,
		ScrapedPhones: scraped.Phones,
	}
	if auditResult != nil {
		enrichment.HasAuditResult = true
		enrichment.Technologies = auditResult.Technologies
		enrichment.HasSSL = auditResult.HasSSL
	}

	if err := p.store.MergeLeadEnrichment(ctx, lead.ID, enrichment); err != nil {
		log.Warn("lead enrichment write failed, skipping", map[string]interface{}{
			"correlation_id": correlationID,
			"lead_id":        lead.ID,
			"error":          err.Error(),
		})
	}
}

// IsAccepted reports whether a job's name tag is one this worker
// processes.
func IsAccepted(job *models.BullMQJob) bool {
	return job.Name == AcceptedJobName
}

// RejectedErr is returned by callers that need a typed policy-rejection
// error for a job whose name tag this worker does not accept.
func RejectedErr(job *models.BullMQJob) error {
	return apperrors.PolicyRejection("processor: job name " + job.Name + " is not accepted by this worker")
}
