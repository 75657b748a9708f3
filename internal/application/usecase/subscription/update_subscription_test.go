package subscription

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
	"github.com/subtrack/backend/internal/integration/persistence/memory"
)

func TestUpdateSubscription(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*memory.SubscriptionRepository, *entity.Subscription) {
		t.Helper()
		repo := memory.NewSubscriptionRepository()
		sub := fixtureSubscription("Netflix", "family plan", entity.CategoryStreaming, "15.99", entity.BillingCycleMonthly)
		if err := repo.Create(ctx, sub); err != nil {
			t.Fatalf("seed: %v", err)
		}
		return repo, sub
	}

	t.Run("partial update changes only the provided fields", func(t *testing.T) {
		repo, sub := seed(t)
		uc := NewUpdateSubscriptionUseCase(repo)

		newPrice := decimal.RequireFromString("19.99")
		output, err := uc.Execute(ctx, UpdateSubscriptionInput{
			SubscriptionID: sub.ID,
			Price:          &newPrice,
		})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}

		if !output.Subscription.Price.Equal(newPrice) {
			t.Errorf("expected price 19.99, got %s", output.Subscription.Price)
		}
		if output.Subscription.Name != "Netflix" {
			t.Errorf("untouched name changed: %q", output.Subscription.Name)
		}
		if output.Subscription.Description != "family plan" {
			t.Errorf("untouched description changed: %q", output.Subscription.Description)
		}
		if output.Subscription.Category != entity.CategoryStreaming {
			t.Errorf("untouched category changed: %q", output.Subscription.Category)
		}

		stored, err := repo.FindByID(ctx, sub.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if !stored.Price.Equal(newPrice) {
			t.Errorf("update not persisted: %s", stored.Price)
		}
	})

	t.Run("normalizes name and currency like create", func(t *testing.T) {
		repo, sub := seed(t)
		uc := NewUpdateSubscriptionUseCase(repo)

		name := "  Disney+  "
		currency := "eur"
		output, err := uc.Execute(ctx, UpdateSubscriptionInput{
			SubscriptionID: sub.ID,
			Name:           &name,
			Currency:       &currency,
		})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}

		if output.Subscription.Name != "Disney+" {
			t.Errorf("expected trimmed name, got %q", output.Subscription.Name)
		}
		if output.Subscription.Currency != "EUR" {
			t.Errorf("expected uppercased currency, got %q", output.Subscription.Currency)
		}
	})

	t.Run("rejects invalid values without persisting", func(t *testing.T) {
		repo, sub := seed(t)
		uc := NewUpdateSubscriptionUseCase(repo)

		badPrice := decimal.Zero
		_, err := uc.Execute(ctx, UpdateSubscriptionInput{
			SubscriptionID: sub.ID,
			Price:          &badPrice,
		})
		assertSubscriptionErrorCode(t, err, domainerror.ErrCodeInvalidSubscriptionPrice)

		stored, findErr := repo.FindByID(ctx, sub.ID)
		if findErr != nil {
			t.Fatalf("find: %v", findErr)
		}
		if !stored.Price.Equal(decimal.RequireFromString("15.99")) {
			t.Errorf("rejected update leaked into storage: %s", stored.Price)
		}
	})

	t.Run("rejects an oversized description", func(t *testing.T) {
		repo, sub := seed(t)
		uc := NewUpdateSubscriptionUseCase(repo)

		long := strings.Repeat("x", MaxDescriptionLength+1)
		_, err := uc.Execute(ctx, UpdateSubscriptionInput{
			SubscriptionID: sub.ID,
			Description:    &long,
		})
		assertSubscriptionErrorCode(t, err, domainerror.ErrCodeDescriptionTooLong)
	})

	t.Run("unknown id fails with not found", func(t *testing.T) {
		repo, _ := seed(t)
		uc := NewUpdateSubscriptionUseCase(repo)

		name := "ghost"
		_, err := uc.Execute(ctx, UpdateSubscriptionInput{
			SubscriptionID: uuid.New(),
			Name:           &name,
		})
		assertSubscriptionErrorCode(t, err, domainerror.ErrCodeSubscriptionNotFound)
	})
}

func TestToggleSubscription(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSubscriptionRepository()
	sub := fixtureSubscription("Netflix", "", entity.CategoryStreaming, "15.99", entity.BillingCycleMonthly)
	if err := repo.Create(ctx, sub); err != nil {
		t.Fatalf("seed: %v", err)
	}

	uc := NewToggleSubscriptionUseCase(repo)

	output, err := uc.Execute(ctx, ToggleSubscriptionInput{SubscriptionID: sub.ID})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if output.Subscription.IsActive {
		t.Error("expected subscription paused after first toggle")
	}

	output, err = uc.Execute(ctx, ToggleSubscriptionInput{SubscriptionID: sub.ID})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !output.Subscription.IsActive {
		t.Error("expected subscription active after second toggle")
	}

	_, err = uc.Execute(ctx, ToggleSubscriptionInput{SubscriptionID: uuid.New()})
	assertSubscriptionErrorCode(t, err, domainerror.ErrCodeSubscriptionNotFound)
}

func TestDeleteSubscription(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSubscriptionRepository()
	sub := fixtureSubscription("Netflix", "", entity.CategoryStreaming, "15.99", entity.BillingCycleMonthly)
	if err := repo.Create(ctx, sub); err != nil {
		t.Fatalf("seed: %v", err)
	}

	uc := NewDeleteSubscriptionUseCase(repo)

	t.Run("deleting an unknown id fails and leaves the collection unchanged", func(t *testing.T) {
		err := uc.Execute(ctx, DeleteSubscriptionInput{SubscriptionID: uuid.New()})
		assertSubscriptionErrorCode(t, err, domainerror.ErrCodeSubscriptionNotFound)

		all, findErr := repo.FindAll(ctx)
		if findErr != nil {
			t.Fatalf("find all: %v", findErr)
		}
		if len(all) != 1 {
			t.Errorf("expected 1 subscription, got %d", len(all))
		}
	})

	t.Run("deletes an existing subscription", func(t *testing.T) {
		if err := uc.Execute(ctx, DeleteSubscriptionInput{SubscriptionID: sub.ID}); err != nil {
			t.Fatalf("execute: %v", err)
		}

		_, err := repo.FindByID(ctx, sub.ID)
		if err == nil {
			t.Error("deleted subscription still findable")
		}
	})
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSubscriptionRepository()

	paused := fixtureSubscription("Gym", "", entity.CategoryFitness, "30.00", entity.BillingCycleMonthly)
	paused.IsActive = false
	for _, sub := range []*entity.Subscription{
		fixtureSubscription("Netflix", "", entity.CategoryStreaming, "9.99", entity.BillingCycleMonthly),
		fixtureSubscription("Notion", "", entity.CategoryProductivity, "99.00", entity.BillingCycleYearly),
		fixtureSubscription("Patreon", "", entity.CategoryOther, "4.00", entity.BillingCycleWeekly),
		paused,
	} {
		if err := repo.Create(ctx, sub); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	uc := NewGetStatsUseCase(repo)
	output, err := uc.Execute(ctx)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if output.Stats.TotalActive != 3 {
		t.Errorf("expected 3 active, got %d", output.Stats.TotalActive)
	}
	if !output.Stats.TotalMonthlySpend.Equal(decimal.RequireFromString("34.24")) {
		t.Errorf("expected monthly spend 34.24, got %s", output.Stats.TotalMonthlySpend)
	}
	if !output.Stats.TotalYearlySpend.Equal(decimal.RequireFromString("426.88")) {
		t.Errorf("expected yearly spend 426.88, got %s", output.Stats.TotalYearlySpend)
	}
	if output.Stats.CategoryBreakdown[entity.CategoryFitness] != 0 {
		t.Error("paused subscription counted in breakdown")
	}

	t.Run("empty collection yields zeroed stats", func(t *testing.T) {
		uc := NewGetStatsUseCase(memory.NewSubscriptionRepository())
		output, err := uc.Execute(ctx)
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if output.Stats.TotalActive != 0 || !output.Stats.TotalMonthlySpend.IsZero() {
			t.Errorf("expected zeroed stats, got %+v", output.Stats)
		}
	})
}
