// Package worker runs the single-flight outer loop that fetches jobs
// from the queue and dispatches them to a Processor.
package worker

import (
	"context"
	"time"

	"leadforge-worker/internal/apperrors"
	"leadforge-worker/internal/logging"
	"leadforge-worker/internal/processor"
	"leadforge-worker/internal/queue"
)

const transientBackoff = 5 * time.Second

// Worker wraps one Processor per job, obtaining jobs from the queue
// adapter. Exactly one job is processed at a time.
type Worker struct {
	queue     *queue.Queue
	processor *processor.Processor
}

// New builds a Worker bound to q and p.
func New(q *queue.Queue, p *processor.Processor) *Worker {
	return &Worker{queue: q, processor: p}
}

// Run loops until ctx is cancelled: fetch one job; requeue it untouched
// if its name tag isn't accepted; otherwise process it and acknowledge
// on success. Transient queue errors back off 5s before retrying.
func (w *Worker) Run(ctx context.Context) error {
	log := logging.GetGlobalLogger()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		job, err := w.queue.FetchNext(ctx)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindFatal {
				log.Error("queue fetch failed fatally, stopping worker", map[string]interface{}{"error": err.Error()})
				return err
			}

			log.Error("queue fetch failed, backing off", map[string]interface{}{"error": err.Error()})
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(transientBackoff):
			}
			continue
		}

		if job == nil {
			continue
		}

		if !processor.IsAccepted(job) {
			log.Debug("requeuing rejected job", map[string]interface{}{
				"job_id": job.ID, "job_name": job.Name, "reason": processor.RejectedErr(job).Error(),
			})
			if err := w.queue.Requeue(ctx, job.ID); err != nil {
				log.Error("failed to requeue rejected job", map[string]interface{}{
					"job_id": job.ID, "error": err.Error(),
				})
			}
			continue
		}

		if err := w.processor.Process(ctx, job); err != nil {
			log.Error("job processing failed, leaving job active", map[string]interface{}{
				"job_id": job.ID, "error": err.Error(),
			})
			continue
		}

		if err := w.queue.Acknowledge(ctx, job.ID); err != nil {
			log.Error("failed to acknowledge completed job", map[string]interface{}{
				"job_id": job.ID, "error": err.Error(),
			})
		}
	}
}
