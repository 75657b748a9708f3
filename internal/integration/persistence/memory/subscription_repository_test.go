package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

func TestSubscriptionRepositoryInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository()

	names := []string{"Netflix", "Spotify", "Notion"}
	for _, name := range names {
		if err := repo.Create(ctx, newStoredSubscription(name)); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != len(names) {
		t.Fatalf("expected %d subscriptions, got %d", len(names), len(all))
	}
	for i, name := range names {
		if all[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, all[i].Name)
		}
	}
}

func TestSubscriptionRepositorySnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository()

	sub := newStoredSubscription("Netflix")
	if err := repo.Create(ctx, sub); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mutating the entity handed to Create must not affect the store.
	sub.Name = "mutated after create"

	// Mutating a read result must not affect the store either.
	fetched, err := repo.FindByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	fetched.Name = "mutated after read"

	stored, err := repo.FindByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Name != "Netflix" {
		t.Errorf("stored record was mutated through a handed-out entity: %s", stored.Name)
	}
}

func TestSubscriptionRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository()

	if err := repo.Create(ctx, newStoredSubscription("Netflix")); err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("find unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		if !errors.Is(err, domainerror.ErrSubscriptionNotFound) {
			t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
		}
	})

	t.Run("update unknown id", func(t *testing.T) {
		err := repo.Update(ctx, newStoredSubscription("ghost"))
		if !errors.Is(err, domainerror.ErrSubscriptionNotFound) {
			t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
		}
	})

	t.Run("delete unknown id leaves collection unchanged", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		if !errors.Is(err, domainerror.ErrSubscriptionNotFound) {
			t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
		}

		all, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("expected collection untouched with 1 record, got %d", len(all))
		}
	})
}

func TestSubscriptionRepositoryDeletePreservesOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository()

	first := newStoredSubscription("first")
	second := newStoredSubscription("second")
	third := newStoredSubscription("third")
	for _, sub := range []*entity.Subscription{first, second, third} {
		if err := repo.Create(ctx, sub); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := repo.Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 2 || all[0].Name != "first" || all[1].Name != "third" {
		t.Errorf("unexpected collection after delete: %+v", all)
	}
}

func TestSubscriptionRepositoryReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository()

	if err := repo.Create(ctx, newStoredSubscription("old")); err != nil {
		t.Fatalf("create: %v", err)
	}

	replacement := []*entity.Subscription{
		newStoredSubscription("synced-a"),
		newStoredSubscription("synced-b"),
	}
	if err := repo.ReplaceAll(ctx, replacement); err != nil {
		t.Fatalf("replace all: %v", err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 subscriptions after replace, got %d", len(all))
	}
	if all[0].Name != "synced-a" || all[1].Name != "synced-b" {
		t.Errorf("replacement order not preserved: %s, %s", all[0].Name, all[1].Name)
	}

	if _, err := repo.FindByID(ctx, replacement[0].ID); err != nil {
		t.Errorf("replaced record not findable: %v", err)
	}
}

func TestReminderQueueRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderQueueRepository()

	billingDate := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	subscriptionID := uuid.New()
	job := entity.NewReminderJob(subscriptionID, "Netflix", billingDate, "user@example.com")

	if err := repo.Enqueue(ctx, job); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	t.Run("pending jobs come back oldest first up to the limit", func(t *testing.T) {
		second := entity.NewReminderJob(uuid.New(), "Spotify", billingDate, "user@example.com")
		if err := repo.Enqueue(ctx, second); err != nil {
			t.Fatalf("enqueue: %v", err)
		}

		pending, err := repo.GetPendingJobs(ctx, 1)
		if err != nil {
			t.Fatalf("get pending: %v", err)
		}
		if len(pending) != 1 || pending[0].SubscriptionName != "Netflix" {
			t.Errorf("expected oldest job first, got %+v", pending)
		}
	})

	t.Run("exists for matches subscription and billing date", func(t *testing.T) {
		exists, err := repo.ExistsFor(ctx, subscriptionID, billingDate)
		if err != nil {
			t.Fatalf("exists for: %v", err)
		}
		if !exists {
			t.Error("expected reminder to exist for enqueued subscription and date")
		}

		exists, err = repo.ExistsFor(ctx, subscriptionID, billingDate.AddDate(0, 1, 0))
		if err != nil {
			t.Fatalf("exists for: %v", err)
		}
		if exists {
			t.Error("expected no reminder for a different billing date")
		}
	})

	t.Run("sent jobs stop being pending", func(t *testing.T) {
		job.MarkSent("resend-123")
		if err := repo.UpdateStatus(ctx, job); err != nil {
			t.Fatalf("update status: %v", err)
		}

		pending, err := repo.GetPendingJobs(ctx, 10)
		if err != nil {
			t.Fatalf("get pending: %v", err)
		}
		for _, p := range pending {
			if p.ID == job.ID {
				t.Error("sent job still returned as pending")
			}
		}
	})

	t.Run("updating an unknown job fails", func(t *testing.T) {
		ghost := entity.NewReminderJob(uuid.New(), "ghost", billingDate, "user@example.com")
		err := repo.UpdateStatus(ctx, ghost)
		if !errors.Is(err, domainerror.ErrReminderJobNotFound) {
			t.Errorf("expected ErrReminderJobNotFound, got %v", err)
		}
	})
}

// newStoredSubscription builds a subscription fixture for repository tests.
func newStoredSubscription(name string) *entity.Subscription {
	return entity.NewSubscription(
		name, "", entity.CategoryStreaming,
		decimal.RequireFromString("9.99"), "USD",
		entity.BillingCycleMonthly, time.Now().UTC().AddDate(0, 0, 14),
		false, "", nil,
	)
}
