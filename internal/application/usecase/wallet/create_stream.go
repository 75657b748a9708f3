package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

// StablecoinDecimals is the decimal precision used for streamed stablecoins.
const StablecoinDecimals = 6

// CreateStreamInput represents the input for opening a payment stream.
type CreateStreamInput struct {
	SubscriptionID uuid.UUID
	Protocol       entity.StreamProtocol
	Token          string
	Amount         decimal.Decimal // token amount per month
	Recipient      string
	ChainID        int64
	EndDate        *time.Time
}

// CreateStreamOutput represents the output of opening a payment stream.
type CreateStreamOutput struct {
	Stream *entity.PaymentStream
}

// CreateStreamUseCase opens a payment stream for a subscription and records it.
type CreateStreamUseCase struct {
	streamRepo       adapter.PaymentStreamRepository
	subscriptionRepo adapter.SubscriptionRepository
	services         map[entity.StreamProtocol]adapter.StreamService
}

// NewCreateStreamUseCase creates a new CreateStreamUseCase instance.
func NewCreateStreamUseCase(
	streamRepo adapter.PaymentStreamRepository,
	subscriptionRepo adapter.SubscriptionRepository,
	services ...adapter.StreamService,
) *CreateStreamUseCase {
	byProtocol := make(map[entity.StreamProtocol]adapter.StreamService, len(services))
	for _, svc := range services {
		byProtocol[svc.Protocol()] = svc
	}

	return &CreateStreamUseCase{
		streamRepo:       streamRepo,
		subscriptionRepo: subscriptionRepo,
		services:         byProtocol,
	}
}

// Execute validates the request, opens the stream on the selected protocol and
// links it to the subscription.
func (uc *CreateStreamUseCase) Execute(ctx context.Context, input CreateStreamInput) (*CreateStreamOutput, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	subscription, err := uc.subscriptionRepo.FindByID(ctx, input.SubscriptionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSubscriptionNotFound) {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeSubscriptionNotFound,
				fmt.Sprintf("Subscription with id %s not found", input.SubscriptionID),
				err,
			)
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	service := uc.services[input.Protocol]
	flowRate := entity.CalculateFlowRate(input.Amount, StablecoinDecimals)
	startDate := time.Now().UTC()

	externalID, err := service.CreateStream(ctx, adapter.CreateStreamRequest{
		Token:     input.Token,
		Amount:    input.Amount,
		FlowRate:  flowRate,
		Recipient: input.Recipient,
		ChainID:   input.ChainID,
		StartDate: startDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s stream: %w", input.Protocol, err)
	}

	stream := entity.NewPaymentStream(
		input.SubscriptionID,
		input.Protocol,
		input.Token,
		input.Amount,
		flowRate,
		input.Recipient,
		input.ChainID,
		startDate,
		input.EndDate,
		externalID,
	)

	if err := uc.streamRepo.Create(ctx, stream); err != nil {
		return nil, fmt.Errorf("failed to persist payment stream: %w", err)
	}

	subscription.IsCryptoEnabled = true
	subscription.CryptoToken = input.Token
	subscription.CryptoAmount = &input.Amount
	subscription.CryptoStreamID = &stream.ID
	subscription.UpdatedAt = time.Now().UTC()

	if err := uc.subscriptionRepo.Update(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to link stream to subscription: %w", err)
	}

	slog.Info("Payment stream created",
		"streamId", stream.ID,
		"subscriptionId", input.SubscriptionID,
		"protocol", input.Protocol,
		"flowRate", flowRate)

	return &CreateStreamOutput{Stream: stream}, nil
}

func (uc *CreateStreamUseCase) validate(input CreateStreamInput) error {
	if !input.Protocol.IsValid() {
		return domainerror.NewWalletError(
			domainerror.ErrCodeInvalidStreamProtocol,
			fmt.Sprintf("Unknown stream protocol: %s", input.Protocol),
			domainerror.ErrInvalidStreamProtocol,
		)
	}
	if _, ok := uc.services[input.Protocol]; !ok {
		return domainerror.NewWalletError(
			domainerror.ErrCodeInvalidStreamProtocol,
			fmt.Sprintf("Stream protocol %s is not configured", input.Protocol),
			domainerror.ErrInvalidStreamProtocol,
		)
	}
	if !input.Amount.IsPositive() {
		return domainerror.NewWalletError(
			domainerror.ErrCodeInvalidStreamAmount,
			"Stream amount must be greater than zero",
			domainerror.ErrInvalidStreamAmount,
		)
	}
	return nil
}
