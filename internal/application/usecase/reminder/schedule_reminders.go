// Package reminder contains renewal-reminder scheduling use cases.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
)

// DefaultReminderWindowDays is how far ahead of a billing date reminders are
// scheduled.
const DefaultReminderWindowDays = 3

// ScheduleRemindersInput represents the input for a scheduling run.
type ScheduleRemindersInput struct {
	RecipientEmail string
	WindowDays     int
}

// ScheduleRemindersOutput represents the output of a scheduling run.
type ScheduleRemindersOutput struct {
	Enqueued int
	Skipped  int
}

// ScheduleRemindersUseCase scans active subscriptions and enqueues one reminder
// per upcoming billing date. Runs are idempotent: a billing date already in the
// queue is skipped.
type ScheduleRemindersUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	queueRepo        adapter.ReminderQueueRepository
	now              func() time.Time
}

// NewScheduleRemindersUseCase creates a new ScheduleRemindersUseCase instance.
func NewScheduleRemindersUseCase(
	subscriptionRepo adapter.SubscriptionRepository,
	queueRepo adapter.ReminderQueueRepository,
) *ScheduleRemindersUseCase {
	return &ScheduleRemindersUseCase{
		subscriptionRepo: subscriptionRepo,
		queueRepo:        queueRepo,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// Execute performs a scheduling run.
func (uc *ScheduleRemindersUseCase) Execute(ctx context.Context, input ScheduleRemindersInput) (*ScheduleRemindersOutput, error) {
	windowDays := input.WindowDays
	if windowDays <= 0 {
		windowDays = DefaultReminderWindowDays
	}

	subscriptions, err := uc.subscriptionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	now := uc.now()
	windowEnd := now.AddDate(0, 0, windowDays)
	output := &ScheduleRemindersOutput{}

	for _, subscription := range subscriptions {
		if !subscription.IsActive {
			continue
		}
		billingDate := subscription.NextBillingDate
		if billingDate.Before(now) || billingDate.After(windowEnd) {
			continue
		}

		exists, err := uc.queueRepo.ExistsFor(ctx, subscription.ID, billingDate)
		if err != nil {
			return nil, fmt.Errorf("failed to check reminder queue: %w", err)
		}
		if exists {
			output.Skipped++
			continue
		}

		job := entity.NewReminderJob(subscription.ID, subscription.Name, billingDate, input.RecipientEmail)
		if err := uc.queueRepo.Enqueue(ctx, job); err != nil {
			return nil, fmt.Errorf("failed to enqueue reminder: %w", err)
		}
		output.Enqueued++
	}

	slog.Info("Reminder scheduling run completed",
		"enqueued", output.Enqueued,
		"skipped", output.Skipped,
		"windowDays", windowDays)

	return output, nil
}
