package wallet

import (
	"context"
	"fmt"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
)

// EstimateGasInput represents the input for a transfer gas estimate.
type EstimateGasInput struct {
	ChainID int64
	From    string
	To      string
}

// EstimateGasOutput represents the output of a transfer gas estimate.
type EstimateGasOutput struct {
	Estimate entity.GasEstimate
}

// EstimateGasUseCase estimates the cost of a plain value transfer on a chain.
type EstimateGasUseCase struct {
	chainClient adapter.ChainClient
}

// NewEstimateGasUseCase creates a new EstimateGasUseCase instance.
func NewEstimateGasUseCase(chainClient adapter.ChainClient) *EstimateGasUseCase {
	return &EstimateGasUseCase{chainClient: chainClient}
}

// Execute performs the gas estimation.
func (uc *EstimateGasUseCase) Execute(ctx context.Context, input EstimateGasInput) (*EstimateGasOutput, error) {
	estimate, err := uc.chainClient.EstimateTransferGas(ctx, input.ChainID, input.From, input.To)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate transfer gas: %w", err)
	}

	return &EstimateGasOutput{Estimate: *estimate}, nil
}
