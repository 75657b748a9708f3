// Package subscription contains subscription-related use cases.
package subscription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

const (
	// MaxNameLength is the maximum allowed length for subscription names.
	MaxNameLength = 100
	// MaxDescriptionLength is the maximum allowed length for subscription descriptions.
	MaxDescriptionLength = 500
)

// CreateSubscriptionInput represents the input for subscription creation.
type CreateSubscriptionInput struct {
	Name            string
	Description     string
	Category        entity.Category
	Price           decimal.Decimal
	Currency        string
	BillingCycle    entity.BillingCycle
	NextBillingDate time.Time
	IsCryptoEnabled bool
	CryptoToken     string
	CryptoAmount    *decimal.Decimal
}

// CreateSubscriptionOutput represents the output of subscription creation.
type CreateSubscriptionOutput struct {
	Subscription *SubscriptionOutput
}

// CreateSubscriptionUseCase handles subscription creation logic.
type CreateSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewCreateSubscriptionUseCase creates a new CreateSubscriptionUseCase instance.
func NewCreateSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute performs the subscription creation.
func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, input CreateSubscriptionInput) (*CreateSubscriptionOutput, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}

	if !input.Price.IsPositive() {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeInvalidSubscriptionPrice,
			"price must be greater than zero",
			domainerror.ErrInvalidSubscriptionPrice,
		)
	}

	if !input.Category.IsValid() {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeInvalidCategory,
			fmt.Sprintf("unknown category %q", input.Category),
			domainerror.ErrInvalidCategory,
		)
	}

	if !input.BillingCycle.IsValid() {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeInvalidBillingCycle,
			fmt.Sprintf("unknown billing cycle %q", input.BillingCycle),
			domainerror.ErrInvalidBillingCycle,
		)
	}

	if strings.TrimSpace(input.Currency) == "" {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeInvalidCurrency,
			"currency code is required",
			domainerror.ErrInvalidCurrency,
		)
	}

	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	subscription := entity.NewSubscription(
		strings.TrimSpace(input.Name),
		input.Description,
		input.Category,
		input.Price,
		strings.ToUpper(strings.TrimSpace(input.Currency)),
		input.BillingCycle,
		input.NextBillingDate,
		input.IsCryptoEnabled,
		input.CryptoToken,
		input.CryptoAmount,
	)

	if err := uc.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return &CreateSubscriptionOutput{
		Subscription: toSubscriptionOutput(subscription),
	}, nil
}

// validateName rejects blank or oversized subscription names.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domainerror.NewSubscriptionError(
			domainerror.ErrCodeInvalidSubscriptionName,
			"name must not be blank",
			domainerror.ErrInvalidSubscriptionName,
		)
	}
	if len(name) > MaxNameLength {
		return domainerror.NewSubscriptionError(
			domainerror.ErrCodeInvalidSubscriptionName,
			fmt.Sprintf("name must not exceed %d characters", MaxNameLength),
			domainerror.ErrInvalidSubscriptionName,
		)
	}
	return nil
}
