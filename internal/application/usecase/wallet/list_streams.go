package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
)

// ListStreamsInput represents the input for listing payment streams. A nil
// SubscriptionID lists every stream.
type ListStreamsInput struct {
	SubscriptionID *uuid.UUID
	ActiveOnly     bool
}

// ListStreamsOutput represents the output of listing payment streams.
type ListStreamsOutput struct {
	Streams []*entity.PaymentStream
}

// ListStreamsUseCase lists payment streams, optionally scoped to one
// subscription.
type ListStreamsUseCase struct {
	streamRepo adapter.PaymentStreamRepository
}

// NewListStreamsUseCase creates a new ListStreamsUseCase instance.
func NewListStreamsUseCase(streamRepo adapter.PaymentStreamRepository) *ListStreamsUseCase {
	return &ListStreamsUseCase{streamRepo: streamRepo}
}

// Execute performs the listing.
func (uc *ListStreamsUseCase) Execute(ctx context.Context, input ListStreamsInput) (*ListStreamsOutput, error) {
	var (
		streams []*entity.PaymentStream
		err     error
	)

	if input.SubscriptionID != nil {
		streams, err = uc.streamRepo.FindBySubscription(ctx, *input.SubscriptionID)
	} else {
		streams, err = uc.streamRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list payment streams: %w", err)
	}

	if input.ActiveOnly {
		active := make([]*entity.PaymentStream, 0, len(streams))
		for _, stream := range streams {
			if stream.IsActive {
				active = append(active, stream)
			}
		}
		streams = active
	}

	return &ListStreamsOutput{Streams: streams}, nil
}
