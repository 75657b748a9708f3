package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
)

// Streaming-protocol adapters. Until on-chain execution ships these simulate
// the protocol round trip and mint locally unique stream identifiers, keeping
// the rest of the system honest about latency and cancellation semantics.

// superfluidService implements adapter.StreamService for Superfluid CFA streams.
type superfluidService struct {
	delay time.Duration
}

// NewSuperfluidService creates a Superfluid stream service.
func NewSuperfluidService(delay time.Duration) adapter.StreamService {
	return &superfluidService{delay: delay}
}

// Protocol identifies the protocol this service drives.
func (s *superfluidService) Protocol() entity.StreamProtocol {
	return entity.StreamProtocolSuperfluid
}

// CreateStream opens a constant flow to the recipient.
func (s *superfluidService) CreateStream(ctx context.Context, req adapter.CreateStreamRequest) (string, error) {
	if err := wait(ctx, s.delay); err != nil {
		return "", err
	}
	externalID := fmt.Sprintf("stream_%d", time.Now().UnixMilli())
	slog.Info("Superfluid stream opened",
		"externalId", externalID,
		"token", req.Token,
		"flowRate", req.FlowRate,
		"chainId", req.ChainID)
	return externalID, nil
}

// CancelStream deletes the flow.
func (s *superfluidService) CancelStream(ctx context.Context, externalID string) error {
	if err := wait(ctx, s.delay); err != nil {
		return err
	}
	slog.Info("Superfluid stream closed", "externalId", externalID)
	return nil
}

// sablierService implements adapter.StreamService for Sablier lockup streams.
type sablierService struct {
	delay time.Duration
}

// NewSablierService creates a Sablier stream service.
func NewSablierService(delay time.Duration) adapter.StreamService {
	return &sablierService{delay: delay}
}

// Protocol identifies the protocol this service drives.
func (s *sablierService) Protocol() entity.StreamProtocol {
	return entity.StreamProtocolSablier
}

// CreateStream locks the amount and streams it linearly until the end date.
func (s *sablierService) CreateStream(ctx context.Context, req adapter.CreateStreamRequest) (string, error) {
	if err := wait(ctx, s.delay); err != nil {
		return "", err
	}
	externalID := fmt.Sprintf("sablier_%d", time.Now().UnixMilli())
	slog.Info("Sablier stream opened",
		"externalId", externalID,
		"token", req.Token,
		"amount", req.Amount,
		"chainId", req.ChainID)
	return externalID, nil
}

// CancelStream cancels the lockup and refunds the unstreamed remainder.
func (s *sablierService) CancelStream(ctx context.Context, externalID string) error {
	if err := wait(ctx, s.delay); err != nil {
		return err
	}
	slog.Info("Sablier stream cancelled", "externalId", externalID)
	return nil
}

// wait sleeps for the simulated protocol latency, honoring cancellation.
func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
