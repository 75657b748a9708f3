package adapters

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

const (
	// transferGasLimit is the fixed gas cost of a plain value transfer.
	transferGasLimit = 21000

	// nativeDecimals is the decimal precision of EVM native tokens.
	nativeDecimals = 18

	// usdcDecimals is the decimal precision of USDC on every supported chain.
	usdcDecimals = 6

	// balanceOfSelector is the 4-byte selector of ERC-20 balanceOf(address).
	balanceOfSelector = "0x70a08231"
)

// ethereumClient implements the adapter.ChainClient interface with one lazily
// dialed ethclient per supported chain.
type ethereumClient struct {
	chains map[int64]entity.ChainInfo

	mu      sync.Mutex
	clients map[int64]*ethclient.Client
}

// NewEthereumClient creates a chain client over the given chains. RPC
// connections are dialed on first use per chain.
func NewEthereumClient(chains []entity.ChainInfo) adapter.ChainClient {
	byID := make(map[int64]entity.ChainInfo, len(chains))
	for _, chain := range chains {
		byID[chain.ID] = chain
	}
	return &ethereumClient{
		chains:  byID,
		clients: make(map[int64]*ethclient.Client),
	}
}

// SupportedChains returns the configured chains.
func (c *ethereumClient) SupportedChains() []entity.ChainInfo {
	chains := make([]entity.ChainInfo, 0, len(c.chains))
	for _, id := range []int64{entity.ChainEthereum, entity.ChainOptimism, entity.ChainPolygon, entity.ChainBase, entity.ChainArbitrum} {
		if chain, ok := c.chains[id]; ok {
			chains = append(chains, chain)
		}
	}
	return chains
}

// GetTokenBalances returns the native and USDC balances of an address.
func (c *ethereumClient) GetTokenBalances(ctx context.Context, chainID int64, address string) ([]entity.TokenBalance, error) {
	chain, client, err := c.clientFor(chainID)
	if err != nil {
		return nil, err
	}
	if !common.IsHexAddress(address) {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeInvalidWalletAddress,
			fmt.Sprintf("Invalid wallet address: %s", address),
			domainerror.ErrInvalidWalletAddress,
		)
	}
	account := common.HexToAddress(address)

	nativeWei, err := client.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, c.unavailable(chain, err)
	}

	balances := []entity.TokenBalance{
		{
			Symbol:   chain.NativeSymbol,
			Name:     chain.NativeName,
			Address:  "",
			Balance:  formatUnits(nativeWei, nativeDecimals),
			Decimals: nativeDecimals,
		},
	}

	if chain.USDCAddress != "" {
		usdcUnits, err := c.erc20BalanceOf(ctx, client, chain.USDCAddress, account)
		if err != nil {
			return nil, c.unavailable(chain, err)
		}
		balances = append(balances, entity.TokenBalance{
			Symbol:   "USDC",
			Name:     "USD Coin",
			Address:  chain.USDCAddress,
			Balance:  formatUnits(usdcUnits, usdcDecimals),
			Decimals: usdcDecimals,
		})
	}

	return balances, nil
}

// EstimateTransferGas estimates the cost of a plain value transfer.
func (c *ethereumClient) EstimateTransferGas(ctx context.Context, chainID int64, from, to string) (*entity.GasEstimate, error) {
	chain, client, err := c.clientFor(chainID)
	if err != nil {
		return nil, err
	}
	if !common.IsHexAddress(from) || !common.IsHexAddress(to) {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeInvalidWalletAddress,
			"Invalid transfer address",
			domainerror.ErrInvalidWalletAddress,
		)
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, c.unavailable(chain, err)
	}

	cost := new(big.Int).Mul(gasPrice, big.NewInt(transferGasLimit))

	return &entity.GasEstimate{
		GasLimit:      fmt.Sprintf("%d", transferGasLimit),
		GasPrice:      formatUnits(gasPrice, 9), // wei to gwei
		EstimatedCost: formatUnits(cost, nativeDecimals),
	}, nil
}

// erc20BalanceOf calls balanceOf(address) on an ERC-20 contract.
func (c *ethereumClient) erc20BalanceOf(ctx context.Context, client *ethclient.Client, contract string, account common.Address) (*big.Int, error) {
	contractAddress := common.HexToAddress(contract)

	data := common.FromHex(balanceOfSelector)
	data = append(data, common.LeftPadBytes(account.Bytes(), 32)...)

	result, err := client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddress,
		Data: data,
	}, nil)
	if err != nil {
		return nil, err
	}

	return new(big.Int).SetBytes(result), nil
}

// clientFor returns the chain info and a (possibly cached) RPC client.
func (c *ethereumClient) clientFor(chainID int64) (entity.ChainInfo, *ethclient.Client, error) {
	chain, ok := c.chains[chainID]
	if !ok {
		return entity.ChainInfo{}, nil, domainerror.NewWalletError(
			domainerror.ErrCodeUnsupportedChain,
			fmt.Sprintf("Chain %d is not supported", chainID),
			domainerror.ErrUnsupportedChain,
		)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[chainID]; ok {
		return chain, client, nil
	}

	client, err := ethclient.Dial(chain.RPCURL)
	if err != nil {
		return entity.ChainInfo{}, nil, c.unavailable(chain, err)
	}
	c.clients[chainID] = client
	return chain, client, nil
}

func (c *ethereumClient) unavailable(chain entity.ChainInfo, err error) error {
	return domainerror.NewWalletError(
		domainerror.ErrCodeChainUnavailable,
		fmt.Sprintf("%s RPC is unavailable", chain.Name),
		err,
	)
}

// formatUnits renders an integer token amount with the given decimal shift,
// trimming trailing zeros the way wallets display balances.
func formatUnits(units *big.Int, decimals int32) string {
	value := decimal.NewFromBigInt(units, -decimals)
	formatted := value.StringFixed(decimals)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimSuffix(formatted, ".")
	if formatted == "" {
		return "0"
	}
	return formatted
}
