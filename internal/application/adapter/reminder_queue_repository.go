// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/domain/entity"
)

// ReminderQueueRepository defines the interface for the renewal-reminder queue.
type ReminderQueueRepository interface {
	// Enqueue stores a new reminder job.
	Enqueue(ctx context.Context, job *entity.ReminderJob) error

	// GetPendingJobs retrieves up to limit pending jobs, oldest first.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.ReminderJob, error)

	// UpdateStatus persists the job's current status fields.
	UpdateStatus(ctx context.Context, job *entity.ReminderJob) error

	// ExistsFor reports whether a reminder was already enqueued for the
	// subscription and billing date, regardless of its status.
	ExistsFor(ctx context.Context, subscriptionID uuid.UUID, billingDate time.Time) (bool, error)
}

// SendEmailInput holds the fields of an outgoing email.
type SendEmailInput struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult holds the provider's response for a sent email.
type SendEmailResult struct {
	ID string
}

// EmailSender sends emails through an external provider.
type EmailSender interface {
	// Send sends a single email.
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}
