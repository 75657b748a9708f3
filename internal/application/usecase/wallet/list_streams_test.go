package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/domain/entity"
	"github.com/subtrack/backend/internal/integration/persistence/memory"
)

func storedStream(t *testing.T, repo *memory.PaymentStreamRepository, subscriptionID uuid.UUID, active bool) *entity.PaymentStream {
	t.Helper()
	stream := entity.NewPaymentStream(
		subscriptionID, entity.StreamProtocolSuperfluid, "USDC",
		decimal.RequireFromString("10"), "3",
		"0x1111111111111111111111111111111111111111", 8453,
		time.Now().UTC(), nil, uuid.NewString(),
	)
	stream.IsActive = active
	if err := repo.Create(context.Background(), stream); err != nil {
		t.Fatalf("store stream: %v", err)
	}
	return stream
}

func TestListStreams(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPaymentStreamRepository()

	subA := uuid.New()
	subB := uuid.New()
	first := storedStream(t, repo, subA, true)
	second := storedStream(t, repo, subB, true)
	third := storedStream(t, repo, subA, false)

	uc := NewListStreamsUseCase(repo)

	t.Run("lists all streams in insertion order", func(t *testing.T) {
		output, err := uc.Execute(ctx, ListStreamsInput{})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if len(output.Streams) != 3 {
			t.Fatalf("expected 3 streams, got %d", len(output.Streams))
		}
		got := []uuid.UUID{output.Streams[0].ID, output.Streams[1].ID, output.Streams[2].ID}
		want := []uuid.UUID{first.ID, second.ID, third.ID}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
			}
		}
	})

	t.Run("scopes to one subscription", func(t *testing.T) {
		output, err := uc.Execute(ctx, ListStreamsInput{SubscriptionID: &subA})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if len(output.Streams) != 2 {
			t.Fatalf("expected 2 streams for subscription, got %d", len(output.Streams))
		}
		for _, stream := range output.Streams {
			if stream.SubscriptionID != subA {
				t.Errorf("stream %s belongs to %s", stream.ID, stream.SubscriptionID)
			}
		}
	})

	t.Run("active only drops cancelled streams", func(t *testing.T) {
		output, err := uc.Execute(ctx, ListStreamsInput{ActiveOnly: true})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if len(output.Streams) != 2 {
			t.Fatalf("expected 2 active streams, got %d", len(output.Streams))
		}
		for _, stream := range output.Streams {
			if !stream.IsActive {
				t.Errorf("inactive stream %s in active-only listing", stream.ID)
			}
		}
	})

	t.Run("subscription scope combined with active only", func(t *testing.T) {
		output, err := uc.Execute(ctx, ListStreamsInput{SubscriptionID: &subA, ActiveOnly: true})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if len(output.Streams) != 1 || output.Streams[0].ID != first.ID {
			t.Errorf("unexpected streams: %+v", output.Streams)
		}
	})

	t.Run("unknown subscription yields an empty list", func(t *testing.T) {
		unknown := uuid.New()
		output, err := uc.Execute(ctx, ListStreamsInput{SubscriptionID: &unknown})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if len(output.Streams) != 0 {
			t.Errorf("expected no streams, got %d", len(output.Streams))
		}
	})
}
