// Package entity defines the core business entities for the domain layer.
package entity

// TokenBalance represents the balance of one token held by a wallet address.
type TokenBalance struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Balance  string `json:"balance"`
	Decimals int32  `json:"decimals"`
}

// GasEstimate represents the estimated cost of a simple transfer.
type GasEstimate struct {
	GasLimit      string // units of gas
	GasPrice      string // gwei
	EstimatedCost string // native token (ether-denominated)
}

// ChainInfo describes a supported EVM chain.
type ChainInfo struct {
	ID           int64
	Name         string
	RPCURL       string
	NativeSymbol string
	NativeName   string
	USDCAddress  string // empty when USDC is not tracked on the chain
}

// Chain IDs supported by the wallet service.
const (
	ChainEthereum int64 = 1
	ChainOptimism int64 = 10
	ChainPolygon  int64 = 137
	ChainBase     int64 = 8453
	ChainArbitrum int64 = 42161
)
