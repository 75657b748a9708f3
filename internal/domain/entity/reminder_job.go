// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReminderStatus represents the status of a renewal reminder in the queue.
type ReminderStatus string

const (
	ReminderStatusPending    ReminderStatus = "pending"
	ReminderStatusProcessing ReminderStatus = "processing"
	ReminderStatusSent       ReminderStatus = "sent"
	ReminderStatusFailed     ReminderStatus = "failed"
)

// ReminderJob represents a renewal-reminder email waiting to be sent. One job is
// enqueued per subscription and billing date, so a subscription is reminded about
// at most once per renewal.
type ReminderJob struct {
	ID               uuid.UUID
	SubscriptionID   uuid.UUID
	SubscriptionName string
	BillingDate      time.Time
	RecipientEmail   string
	Status           ReminderStatus
	Attempts         int
	MaxAttempts      int
	LastError        string
	ResendID         string
	CreatedAt        time.Time
	ProcessedAt      *time.Time
}

// NewReminderJob creates a new pending ReminderJob.
func NewReminderJob(subscriptionID uuid.UUID, subscriptionName string, billingDate time.Time, recipientEmail string) *ReminderJob {
	return &ReminderJob{
		ID:               uuid.New(),
		SubscriptionID:   subscriptionID,
		SubscriptionName: subscriptionName,
		BillingDate:      billingDate,
		RecipientEmail:   recipientEmail,
		Status:           ReminderStatusPending,
		MaxAttempts:      3,
		CreatedAt:        time.Now().UTC(),
	}
}

// MarkProcessing marks the reminder as currently being processed.
func (r *ReminderJob) MarkProcessing() {
	r.Status = ReminderStatusProcessing
}

// MarkSent marks the reminder as successfully sent.
func (r *ReminderJob) MarkSent(resendID string) {
	r.Status = ReminderStatusSent
	r.ResendID = resendID
	now := time.Now().UTC()
	r.ProcessedAt = &now
}

// MarkFailed records a failed attempt. The job goes back to pending until its
// attempts are exhausted; permanent failures stop retrying immediately.
func (r *ReminderJob) MarkFailed(err error, permanent bool) {
	r.Attempts++
	r.LastError = err.Error()
	if permanent || r.Attempts >= r.MaxAttempts {
		r.Status = ReminderStatusFailed
		now := time.Now().UTC()
		r.ProcessedAt = &now
		return
	}
	r.Status = ReminderStatusPending
}
