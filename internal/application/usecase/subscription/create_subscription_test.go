package subscription

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
	"github.com/subtrack/backend/internal/integration/persistence/memory"
)

func validCreateInput() CreateSubscriptionInput {
	return CreateSubscriptionInput{
		Name:            "Netflix",
		Description:     "family plan",
		Category:        entity.CategoryStreaming,
		Price:           decimal.RequireFromString("15.99"),
		Currency:        "usd",
		BillingCycle:    entity.BillingCycleMonthly,
		NextBillingDate: time.Now().UTC().AddDate(0, 0, 14),
	}
}

func TestCreateSubscription(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active subscription with normalized fields", func(t *testing.T) {
		repo := memory.NewSubscriptionRepository()
		uc := NewCreateSubscriptionUseCase(repo)

		input := validCreateInput()
		input.Name = "  Netflix  "

		output, err := uc.Execute(ctx, input)
		if err != nil {
			t.Fatalf("execute: %v", err)
		}

		if output.Subscription.Name != "Netflix" {
			t.Errorf("expected trimmed name, got %q", output.Subscription.Name)
		}
		if output.Subscription.Currency != "USD" {
			t.Errorf("expected uppercased currency, got %q", output.Subscription.Currency)
		}
		if !output.Subscription.IsActive {
			t.Error("new subscriptions must start active")
		}

		stored, err := repo.FindByID(ctx, output.Subscription.ID)
		if err != nil {
			t.Fatalf("created subscription not persisted: %v", err)
		}
		if stored.Name != "Netflix" {
			t.Errorf("persisted name mismatch: %q", stored.Name)
		}
	})

	validationTests := []struct {
		name     string
		mutate   func(*CreateSubscriptionInput)
		expected domainerror.SubscriptionErrorCode
	}{
		{
			name:     "blank name",
			mutate:   func(in *CreateSubscriptionInput) { in.Name = "   " },
			expected: domainerror.ErrCodeInvalidSubscriptionName,
		},
		{
			name:     "oversized name",
			mutate:   func(in *CreateSubscriptionInput) { in.Name = strings.Repeat("x", MaxNameLength+1) },
			expected: domainerror.ErrCodeInvalidSubscriptionName,
		},
		{
			name:     "zero price",
			mutate:   func(in *CreateSubscriptionInput) { in.Price = decimal.Zero },
			expected: domainerror.ErrCodeInvalidSubscriptionPrice,
		},
		{
			name:     "negative price",
			mutate:   func(in *CreateSubscriptionInput) { in.Price = decimal.RequireFromString("-1") },
			expected: domainerror.ErrCodeInvalidSubscriptionPrice,
		},
		{
			name:     "unknown category",
			mutate:   func(in *CreateSubscriptionInput) { in.Category = entity.Category("pets") },
			expected: domainerror.ErrCodeInvalidCategory,
		},
		{
			name:     "unknown billing cycle",
			mutate:   func(in *CreateSubscriptionInput) { in.BillingCycle = entity.BillingCycle("daily") },
			expected: domainerror.ErrCodeInvalidBillingCycle,
		},
		{
			name:     "blank currency",
			mutate:   func(in *CreateSubscriptionInput) { in.Currency = "  " },
			expected: domainerror.ErrCodeInvalidCurrency,
		},
		{
			name:     "oversized description",
			mutate:   func(in *CreateSubscriptionInput) { in.Description = strings.Repeat("x", MaxDescriptionLength+1) },
			expected: domainerror.ErrCodeDescriptionTooLong,
		},
	}

	for _, tt := range validationTests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			repo := memory.NewSubscriptionRepository()
			uc := NewCreateSubscriptionUseCase(repo)

			input := validCreateInput()
			tt.mutate(&input)

			_, err := uc.Execute(ctx, input)
			assertSubscriptionErrorCode(t, err, tt.expected)

			all, findErr := repo.FindAll(ctx)
			if findErr != nil {
				t.Fatalf("find all: %v", findErr)
			}
			if len(all) != 0 {
				t.Error("rejected input must not be persisted")
			}
		})
	}
}
