package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
	"github.com/subtrack/backend/internal/integration/persistence/memory"
)

func TestFilterSubscriptions(t *testing.T) {
	netflix := fixtureSubscription("Netflix", "streaming video", entity.CategoryStreaming, "15.99", entity.BillingCycleMonthly)
	spotify := fixtureSubscription("Spotify", "music", entity.CategoryStreaming, "9.99", entity.BillingCycleMonthly)
	notion := fixtureSubscription("Notion", "notes and docs", entity.CategoryProductivity, "96.00", entity.BillingCycleYearly)
	gym := fixtureSubscription("Gym", "", entity.CategoryFitness, "4.00", entity.BillingCycleWeekly)
	gym.IsActive = false
	crypto := fixtureSubscription("VPN", "", entity.CategorySoftware, "5.00", entity.BillingCycleMonthly)
	crypto.IsCryptoEnabled = true

	all := []*entity.Subscription{netflix, spotify, notion, gym, crypto}

	tests := []struct {
		name     string
		criteria FilterCriteria
		expected []string
	}{
		{
			name:     "empty criteria matches everything",
			criteria: FilterCriteria{},
			expected: []string{"Netflix", "Spotify", "Notion", "Gym", "VPN"},
		},
		{
			name:     "search matches name case-insensitively",
			criteria: FilterCriteria{Search: "netFLIX"},
			expected: []string{"Netflix"},
		},
		{
			name:     "search matches description",
			criteria: FilterCriteria{Search: "docs"},
			expected: []string{"Notion"},
		},
		{
			name:     "category filter",
			criteria: FilterCriteria{Categories: []entity.Category{entity.CategoryStreaming}},
			expected: []string{"Netflix", "Spotify"},
		},
		{
			name:     "billing cycle filter",
			criteria: FilterCriteria{BillingCycles: []entity.BillingCycle{entity.BillingCycleYearly, entity.BillingCycleWeekly}},
			expected: []string{"Notion", "Gym"},
		},
		{
			name: "price bounds are inclusive",
			criteria: FilterCriteria{
				MinPrice: decimalPtr("5.00"),
				MaxPrice: decimalPtr("15.99"),
			},
			expected: []string{"Netflix", "Spotify", "VPN"},
		},
		{
			name:     "active only excludes paused",
			criteria: FilterCriteria{ActiveOnly: true},
			expected: []string{"Netflix", "Spotify", "Notion", "VPN"},
		},
		{
			name:     "crypto only",
			criteria: FilterCriteria{CryptoOnly: true},
			expected: []string{"VPN"},
		},
		{
			name: "predicates are conjoined",
			criteria: FilterCriteria{
				Search:     "s",
				Categories: []entity.Category{entity.CategoryStreaming},
				MinPrice:   decimalPtr("10.00"),
			},
			expected: []string{"Netflix"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSubscriptions(all, tt.criteria)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d results, got %d: %v", len(tt.expected), len(got), names(got))
			}
			for i, name := range tt.expected {
				if got[i].Name != name {
					t.Errorf("position %d: expected %s, got %s", i, name, got[i].Name)
				}
			}
		})
	}
}

func TestSortSubscriptions(t *testing.T) {
	t.Run("sorts by price ascending", func(t *testing.T) {
		subs := []*entity.Subscription{
			fixtureSubscription("b", "", entity.CategoryOther, "20.00", entity.BillingCycleMonthly),
			fixtureSubscription("a", "", entity.CategoryOther, "5.00", entity.BillingCycleMonthly),
			fixtureSubscription("c", "", entity.CategoryOther, "10.00", entity.BillingCycleMonthly),
		}

		SortSubscriptions(subs, SortByPrice, SortAscending)

		if got := names(subs); got[0] != "a" || got[1] != "c" || got[2] != "b" {
			t.Errorf("unexpected order: %v", got)
		}
	})

	t.Run("name sort is case-insensitive", func(t *testing.T) {
		subs := []*entity.Subscription{
			fixtureSubscription("zoom", "", entity.CategoryOther, "1.00", entity.BillingCycleMonthly),
			fixtureSubscription("Apple", "", entity.CategoryOther, "1.00", entity.BillingCycleMonthly),
		}

		SortSubscriptions(subs, SortByName, SortAscending)

		if subs[0].Name != "Apple" {
			t.Errorf("expected Apple first, got %s", subs[0].Name)
		}
	})

	t.Run("ties keep input order in both directions", func(t *testing.T) {
		build := func() []*entity.Subscription {
			return []*entity.Subscription{
				fixtureSubscription("first", "", entity.CategoryOther, "9.99", entity.BillingCycleMonthly),
				fixtureSubscription("second", "", entity.CategoryOther, "9.99", entity.BillingCycleMonthly),
				fixtureSubscription("third", "", entity.CategoryOther, "9.99", entity.BillingCycleMonthly),
			}
		}

		asc := build()
		SortSubscriptions(asc, SortByPrice, SortAscending)
		desc := build()
		SortSubscriptions(desc, SortByPrice, SortDescending)

		for i, name := range []string{"first", "second", "third"} {
			if asc[i].Name != name {
				t.Errorf("ascending tie broke input order at %d: %v", i, names(asc))
			}
			if desc[i].Name != name {
				t.Errorf("descending tie broke input order at %d: %v", i, names(desc))
			}
		}
	})

	t.Run("descending flips distinct keys", func(t *testing.T) {
		subs := []*entity.Subscription{
			fixtureSubscription("cheap", "", entity.CategoryOther, "1.00", entity.BillingCycleMonthly),
			fixtureSubscription("pricey", "", entity.CategoryOther, "99.00", entity.BillingCycleMonthly),
		}

		SortSubscriptions(subs, SortByPrice, SortDescending)

		if subs[0].Name != "pricey" {
			t.Errorf("expected pricey first, got %s", subs[0].Name)
		}
	})

	t.Run("empty field leaves order untouched", func(t *testing.T) {
		subs := []*entity.Subscription{
			fixtureSubscription("z", "", entity.CategoryOther, "2.00", entity.BillingCycleMonthly),
			fixtureSubscription("a", "", entity.CategoryOther, "1.00", entity.BillingCycleMonthly),
		}

		SortSubscriptions(subs, "", SortAscending)

		if subs[0].Name != "z" {
			t.Errorf("expected input order preserved, got %v", names(subs))
		}
	})
}

func TestListSubscriptionsUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects inverted price range", func(t *testing.T) {
		uc := NewListSubscriptionsUseCase(memory.NewSubscriptionRepository())

		_, err := uc.Execute(ctx, ListSubscriptionsInput{Criteria: FilterCriteria{
			MinPrice: decimalPtr("10.00"),
			MaxPrice: decimalPtr("5.00"),
		}})

		assertSubscriptionErrorCode(t, err, domainerror.ErrCodeInvalidPriceRange)
	})

	t.Run("rejects unknown sort field", func(t *testing.T) {
		uc := NewListSubscriptionsUseCase(memory.NewSubscriptionRepository())

		_, err := uc.Execute(ctx, ListSubscriptionsInput{Criteria: FilterCriteria{
			SortBy: SortField("bogus"),
		}})

		assertSubscriptionErrorCode(t, err, domainerror.ErrCodeInvalidSortField)
	})

	t.Run("returns filtered collection with monthly projection", func(t *testing.T) {
		repo := memory.NewSubscriptionRepository()
		yearly := fixtureSubscription("Notion", "", entity.CategoryProductivity, "96.00", entity.BillingCycleYearly)
		if err := repo.Create(ctx, yearly); err != nil {
			t.Fatalf("create: %v", err)
		}

		uc := NewListSubscriptionsUseCase(repo)
		output, err := uc.Execute(ctx, ListSubscriptionsInput{})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}

		if output.Total != 1 || len(output.Subscriptions) != 1 {
			t.Fatalf("expected 1 subscription, got %d", output.Total)
		}
		if !output.Subscriptions[0].MonthlyAmount.Equal(decimal.RequireFromString("8")) {
			t.Errorf("expected monthly amount 8, got %s", output.Subscriptions[0].MonthlyAmount)
		}
	})
}

// assertSubscriptionErrorCode fails the test unless err carries the given code.
func assertSubscriptionErrorCode(t *testing.T, err error, code domainerror.SubscriptionErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	var subErr *domainerror.SubscriptionError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubscriptionError, got %T: %v", err, err)
	}
	if subErr.Code != code {
		t.Errorf("expected code %s, got %s", code, subErr.Code)
	}
}

func fixtureSubscription(name, description string, category entity.Category, price string, cycle entity.BillingCycle) *entity.Subscription {
	return entity.NewSubscription(
		name, description, category,
		decimal.RequireFromString(price), "USD",
		cycle, time.Now().UTC().AddDate(0, 0, 14),
		false, "", nil,
	)
}

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func names(subs []*entity.Subscription) []string {
	result := make([]string, len(subs))
	for i, sub := range subs {
		result[i] = sub.Name
	}
	return result
}
