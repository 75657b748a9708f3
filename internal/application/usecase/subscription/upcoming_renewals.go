// Package subscription contains subscription-related use cases.
package subscription

import (
	"context"
	"sort"
	"time"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
)

// DefaultUpcomingWindowDays is the default forward-looking window for renewals.
const DefaultUpcomingWindowDays = 7

// UpcomingRenewalsInput represents the input for listing upcoming renewals.
type UpcomingRenewalsInput struct {
	WithinDays int // zero or negative means the default window
}

// UpcomingRenewalsOutput represents the output of listing upcoming renewals.
type UpcomingRenewalsOutput struct {
	Subscriptions []*SubscriptionOutput
}

// UpcomingRenewalsUseCase lists active subscriptions billing within a window.
type UpcomingRenewalsUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	now              func() time.Time
}

// NewUpcomingRenewalsUseCase creates a new UpcomingRenewalsUseCase instance.
func NewUpcomingRenewalsUseCase(subscriptionRepo adapter.SubscriptionRepository) *UpcomingRenewalsUseCase {
	return &UpcomingRenewalsUseCase{
		subscriptionRepo: subscriptionRepo,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// Execute returns active subscriptions whose next billing date falls within
// [now, now+withinDays], both ends inclusive, ascending by billing date.
func (uc *UpcomingRenewalsUseCase) Execute(ctx context.Context, input UpcomingRenewalsInput) (*UpcomingRenewalsOutput, error) {
	withinDays := input.WithinDays
	if withinDays <= 0 {
		withinDays = DefaultUpcomingWindowDays
	}

	subscriptions, err := uc.subscriptionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	start := uc.now()
	end := start.AddDate(0, 0, withinDays)

	upcoming := UpcomingWithin(subscriptions, start, end)

	output := &UpcomingRenewalsOutput{
		Subscriptions: make([]*SubscriptionOutput, len(upcoming)),
	}
	for i, sub := range upcoming {
		output.Subscriptions[i] = toSubscriptionOutput(sub)
	}

	return output, nil
}

// UpcomingWithin selects active subscriptions billing inside [start, end]
// inclusive and orders them ascending by billing date. The input slice is not
// modified.
func UpcomingWithin(subscriptions []*entity.Subscription, start, end time.Time) []*entity.Subscription {
	upcoming := make([]*entity.Subscription, 0)
	for _, sub := range subscriptions {
		if !sub.IsActive {
			continue
		}
		if sub.NextBillingDate.Before(start) || sub.NextBillingDate.After(end) {
			continue
		}
		upcoming = append(upcoming, sub)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].NextBillingDate.Before(upcoming[j].NextBillingDate)
	})

	return upcoming
}
