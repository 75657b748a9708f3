// Package subscription contains subscription-related use cases.
package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/application/adapter"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

// DeleteSubscriptionInput represents the input for subscription deletion.
type DeleteSubscriptionInput struct {
	SubscriptionID uuid.UUID
}

// DeleteSubscriptionUseCase handles subscription deletion logic.
type DeleteSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewDeleteSubscriptionUseCase creates a new DeleteSubscriptionUseCase instance.
func NewDeleteSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository) *DeleteSubscriptionUseCase {
	return &DeleteSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute performs the subscription deletion. Deleting an unknown id fails with
// a not-found error and leaves the collection unchanged.
func (uc *DeleteSubscriptionUseCase) Execute(ctx context.Context, input DeleteSubscriptionInput) error {
	if err := uc.subscriptionRepo.Delete(ctx, input.SubscriptionID); err != nil {
		if errors.Is(err, domainerror.ErrSubscriptionNotFound) {
			return notFoundError(input.SubscriptionID)
		}
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}
