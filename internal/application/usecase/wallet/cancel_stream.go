package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

// CancelStreamInput represents the input for cancelling a payment stream.
type CancelStreamInput struct {
	StreamID uuid.UUID
}

// CancelStreamOutput represents the output of cancelling a payment stream.
type CancelStreamOutput struct {
	Stream *entity.PaymentStream
}

// CancelStreamUseCase closes a payment stream on its protocol and unlinks it
// from the subscription.
type CancelStreamUseCase struct {
	streamRepo       adapter.PaymentStreamRepository
	subscriptionRepo adapter.SubscriptionRepository
	services         map[entity.StreamProtocol]adapter.StreamService
}

// NewCancelStreamUseCase creates a new CancelStreamUseCase instance.
func NewCancelStreamUseCase(
	streamRepo adapter.PaymentStreamRepository,
	subscriptionRepo adapter.SubscriptionRepository,
	services ...adapter.StreamService,
) *CancelStreamUseCase {
	byProtocol := make(map[entity.StreamProtocol]adapter.StreamService, len(services))
	for _, svc := range services {
		byProtocol[svc.Protocol()] = svc
	}

	return &CancelStreamUseCase{
		streamRepo:       streamRepo,
		subscriptionRepo: subscriptionRepo,
		services:         byProtocol,
	}
}

// Execute cancels the stream.
func (uc *CancelStreamUseCase) Execute(ctx context.Context, input CancelStreamInput) (*CancelStreamOutput, error) {
	stream, err := uc.streamRepo.FindByID(ctx, input.StreamID)
	if err != nil {
		if errors.Is(err, domainerror.ErrStreamNotFound) {
			return nil, domainerror.NewWalletError(
				domainerror.ErrCodeStreamNotFound,
				fmt.Sprintf("Payment stream with id %s not found", input.StreamID),
				err,
			)
		}
		return nil, fmt.Errorf("failed to find payment stream: %w", err)
	}

	if !stream.IsActive {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeStreamAlreadyCancelled,
			fmt.Sprintf("Payment stream %s is already cancelled", input.StreamID),
			domainerror.ErrStreamAlreadyCancelled,
		)
	}

	service, ok := uc.services[stream.Protocol]
	if !ok {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeInvalidStreamProtocol,
			fmt.Sprintf("Stream protocol %s is not configured", stream.Protocol),
			domainerror.ErrInvalidStreamProtocol,
		)
	}

	if err := service.CancelStream(ctx, stream.ExternalID); err != nil {
		return nil, fmt.Errorf("failed to cancel %s stream: %w", stream.Protocol, err)
	}

	stream.IsActive = false
	stream.UpdatedAt = time.Now().UTC()

	if err := uc.streamRepo.Update(ctx, stream); err != nil {
		return nil, fmt.Errorf("failed to update payment stream: %w", err)
	}

	uc.unlinkSubscription(ctx, stream)

	slog.Info("Payment stream cancelled",
		"streamId", stream.ID,
		"subscriptionId", stream.SubscriptionID,
		"protocol", stream.Protocol)

	return &CancelStreamOutput{Stream: stream}, nil
}

// unlinkSubscription clears the crypto fields of the linked subscription. The
// stream itself is already cancelled, so a missing subscription is not an error.
func (uc *CancelStreamUseCase) unlinkSubscription(ctx context.Context, stream *entity.PaymentStream) {
	subscription, err := uc.subscriptionRepo.FindByID(ctx, stream.SubscriptionID)
	if err != nil {
		slog.Warn("Cancelled stream has no linked subscription",
			"streamId", stream.ID,
			"subscriptionId", stream.SubscriptionID)
		return
	}

	subscription.IsCryptoEnabled = false
	subscription.CryptoToken = ""
	subscription.CryptoAmount = nil
	subscription.CryptoStreamID = nil
	subscription.UpdatedAt = time.Now().UTC()

	if err := uc.subscriptionRepo.Update(ctx, subscription); err != nil {
		slog.Error("Failed to unlink stream from subscription",
			"streamId", stream.ID,
			"subscriptionId", stream.SubscriptionID,
			"error", err)
	}
}
