package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
	"github.com/subtrack/backend/internal/infra/metrics"
	"github.com/subtrack/backend/internal/integration/email/templates"
)

// renewalReminderTemplate is the template name for renewal-reminder emails.
const renewalReminderTemplate = "renewal_reminder"

// Worker processes the reminder queue and sends renewal-reminder emails.
type Worker struct {
	queue        adapter.ReminderQueueRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	pollInterval time.Duration
	batchSize    int
}

// WorkerConfig holds configuration for the reminder worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
	}
}

// NewWorker creates a new reminder worker.
func NewWorker(queue adapter.ReminderQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Reminder worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Process immediately on start, then on ticker
	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reminder worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// processBatch fetches and processes a batch of pending reminders.
func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending reminder jobs", "error", err)
		return
	}

	if len(jobs) == 0 {
		return
	}

	slog.Debug("Processing reminder batch", "count", len(jobs))

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
			w.processJob(ctx, job)
		}
	}
}

// processJob processes a single reminder job.
func (w *Worker) processJob(ctx context.Context, job *entity.ReminderJob) {
	logger := slog.With(
		"job_id", job.ID,
		"subscription", job.SubscriptionName,
		"recipient", job.RecipientEmail,
	)

	job.MarkProcessing()
	if err := w.queue.UpdateStatus(ctx, job); err != nil {
		logger.Error("Failed to mark reminder as processing", "error", err)
		return
	}

	html, text, err := w.renderer.Render(renewalReminderTemplate, templates.RenewalReminderData{
		SubscriptionName: job.SubscriptionName,
		BillingDate:      job.BillingDate.Format("January 2, 2006"),
	})
	if err != nil {
		logger.Error("Failed to render reminder template", "error", err)
		w.handleFailure(ctx, job, err, true) // Template errors are permanent
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Subject: job.SubscriptionName + " renews soon",
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("Failed to send reminder email", "error", err)

		var reminderErr *domainerror.ReminderError
		isPermanent := errors.As(err, &reminderErr) && reminderErr.Code == domainerror.ErrCodePermanentEmailFailure

		w.handleFailure(ctx, job, err, isPermanent)
		return
	}

	job.MarkSent(result.ID)
	if err := w.queue.UpdateStatus(ctx, job); err != nil {
		logger.Error("Failed to mark reminder as sent", "error", err)
		return
	}

	metrics.RecordReminderSent()
	logger.Info("Reminder sent", "resend_id", result.ID)
}

// handleFailure handles a failed reminder job.
func (w *Worker) handleFailure(ctx context.Context, job *entity.ReminderJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.UpdateStatus(ctx, job); updateErr != nil {
		slog.Error("Failed to update reminder after failure",
			"job_id", job.ID,
			"error", updateErr,
		)
	}

	if job.Status == entity.ReminderStatusFailed {
		slog.Warn("Reminder permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
	} else {
		slog.Info("Reminder scheduled for retry",
			"job_id", job.ID,
			"attempts", job.Attempts,
		)
	}
}

// ProcessNow processes all pending reminders immediately (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}
