// Package subscription contains subscription-related use cases.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

// UpdateSubscriptionInput represents the input for subscription update.
// Nil fields are left unchanged: this is a partial update, not a replace.
type UpdateSubscriptionInput struct {
	SubscriptionID  uuid.UUID
	Name            *string
	Description     *string
	Category        *entity.Category
	Price           *decimal.Decimal
	Currency        *string
	BillingCycle    *entity.BillingCycle
	NextBillingDate *time.Time
	IsCryptoEnabled *bool
	CryptoToken     *string
	CryptoAmount    *decimal.Decimal
}

// UpdateSubscriptionOutput represents the output of subscription update.
type UpdateSubscriptionOutput struct {
	Subscription *SubscriptionOutput
}

// UpdateSubscriptionUseCase handles subscription update logic.
type UpdateSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewUpdateSubscriptionUseCase creates a new UpdateSubscriptionUseCase instance.
func NewUpdateSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute performs the subscription update.
func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, input UpdateSubscriptionInput) (*UpdateSubscriptionOutput, error) {
	subscription, err := uc.subscriptionRepo.FindByID(ctx, input.SubscriptionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSubscriptionNotFound) {
			return nil, notFoundError(input.SubscriptionID)
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			return nil, err
		}
		subscription.Name = strings.TrimSpace(*input.Name)
	}

	if input.Description != nil {
		if len(*input.Description) > MaxDescriptionLength {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeDescriptionTooLong,
				fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
				domainerror.ErrDescriptionTooLong,
			)
		}
		subscription.Description = *input.Description
	}

	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeInvalidCategory,
				fmt.Sprintf("unknown category %q", *input.Category),
				domainerror.ErrInvalidCategory,
			)
		}
		subscription.Category = *input.Category
	}

	if input.Price != nil {
		if !input.Price.IsPositive() {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeInvalidSubscriptionPrice,
				"price must be greater than zero",
				domainerror.ErrInvalidSubscriptionPrice,
			)
		}
		subscription.Price = *input.Price
	}

	if input.Currency != nil {
		if strings.TrimSpace(*input.Currency) == "" {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeInvalidCurrency,
				"currency code is required",
				domainerror.ErrInvalidCurrency,
			)
		}
		subscription.Currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}

	if input.BillingCycle != nil {
		if !input.BillingCycle.IsValid() {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeInvalidBillingCycle,
				fmt.Sprintf("unknown billing cycle %q", *input.BillingCycle),
				domainerror.ErrInvalidBillingCycle,
			)
		}
		subscription.BillingCycle = *input.BillingCycle
	}

	if input.NextBillingDate != nil {
		subscription.NextBillingDate = *input.NextBillingDate
	}

	if input.IsCryptoEnabled != nil {
		subscription.IsCryptoEnabled = *input.IsCryptoEnabled
	}

	if input.CryptoToken != nil {
		subscription.CryptoToken = *input.CryptoToken
	}

	if input.CryptoAmount != nil {
		amount := *input.CryptoAmount
		subscription.CryptoAmount = &amount
	}

	subscription.UpdatedAt = time.Now().UTC()

	if err := uc.subscriptionRepo.Update(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	return &UpdateSubscriptionOutput{
		Subscription: toSubscriptionOutput(subscription),
	}, nil
}

// notFoundError wraps the not-found sentinel with its code for a given id.
func notFoundError(id uuid.UUID) error {
	return domainerror.NewSubscriptionError(
		domainerror.ErrCodeSubscriptionNotFound,
		fmt.Sprintf("subscription %s not found", id),
		domainerror.ErrSubscriptionNotFound,
	)
}
