// Package subscription contains subscription-related use cases.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/application/adapter"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

// ToggleSubscriptionInput represents the input for toggling a subscription's
// active status.
type ToggleSubscriptionInput struct {
	SubscriptionID uuid.UUID
}

// ToggleSubscriptionOutput represents the output of the toggle operation.
type ToggleSubscriptionOutput struct {
	Subscription *SubscriptionOutput
}

// ToggleSubscriptionUseCase flips a subscription between active and paused.
type ToggleSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewToggleSubscriptionUseCase creates a new ToggleSubscriptionUseCase instance.
func NewToggleSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository) *ToggleSubscriptionUseCase {
	return &ToggleSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute flips the subscription's active flag and refreshes its update timestamp.
func (uc *ToggleSubscriptionUseCase) Execute(ctx context.Context, input ToggleSubscriptionInput) (*ToggleSubscriptionOutput, error) {
	subscription, err := uc.subscriptionRepo.FindByID(ctx, input.SubscriptionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSubscriptionNotFound) {
			return nil, notFoundError(input.SubscriptionID)
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	subscription.IsActive = !subscription.IsActive
	subscription.UpdatedAt = time.Now().UTC()

	if err := uc.subscriptionRepo.Update(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to toggle subscription: %w", err)
	}

	return &ToggleSubscriptionOutput{
		Subscription: toSubscriptionOutput(subscription),
	}, nil
}
