package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/application/usecase/wallet"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
	"github.com/subtrack/backend/internal/infra/metrics"
	"github.com/subtrack/backend/internal/integration/entrypoint/dto"
)

// WalletController handles wallet and payment-stream endpoints.
type WalletController struct {
	balancesUseCase     *wallet.GetBalancesUseCase
	estimateGasUseCase  *wallet.EstimateGasUseCase
	createStreamUseCase *wallet.CreateStreamUseCase
	cancelStreamUseCase *wallet.CancelStreamUseCase
	listStreamsUseCase  *wallet.ListStreamsUseCase
	chainClient         adapter.ChainClient
}

// NewWalletController creates a new wallet controller instance.
func NewWalletController(
	balancesUseCase *wallet.GetBalancesUseCase,
	estimateGasUseCase *wallet.EstimateGasUseCase,
	createStreamUseCase *wallet.CreateStreamUseCase,
	cancelStreamUseCase *wallet.CancelStreamUseCase,
	listStreamsUseCase *wallet.ListStreamsUseCase,
	chainClient adapter.ChainClient,
) *WalletController {
	return &WalletController{
		balancesUseCase:     balancesUseCase,
		estimateGasUseCase:  estimateGasUseCase,
		createStreamUseCase: createStreamUseCase,
		cancelStreamUseCase: cancelStreamUseCase,
		listStreamsUseCase:  listStreamsUseCase,
		chainClient:         chainClient,
	}
}

// Chains handles GET /wallet/chains requests.
func (c *WalletController) Chains(ctx *gin.Context) {
	chains := c.chainClient.SupportedChains()
	responses := make([]dto.ChainResponse, len(chains))
	for i, chain := range chains {
		responses[i] = dto.ChainResponse{
			ID:           chain.ID,
			Name:         chain.Name,
			NativeSymbol: chain.NativeSymbol,
			USDCAddress:  chain.USDCAddress,
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"chains": responses})
}

// Balances handles GET /wallet/balances/:chainId/:address requests.
func (c *WalletController) Balances(ctx *gin.Context) {
	chainID, err := strconv.ParseInt(ctx.Param("chainId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid chain ID",
		})
		return
	}
	address := ctx.Param("address")

	output, err := c.balancesUseCase.Execute(ctx.Request.Context(), wallet.GetBalancesInput{
		ChainID: chainID,
		Address: address,
	})
	if err != nil {
		c.handleWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BalancesResponse{
		ChainID:  chainID,
		Address:  address,
		Balances: dto.ToTokenBalanceResponses(output.Balances),
		Cached:   output.Cached,
	})
}

// EstimateGas handles GET /wallet/gas/:chainId requests.
func (c *WalletController) EstimateGas(ctx *gin.Context) {
	chainID, err := strconv.ParseInt(ctx.Param("chainId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid chain ID",
		})
		return
	}

	output, err := c.estimateGasUseCase.Execute(ctx.Request.Context(), wallet.EstimateGasInput{
		ChainID: chainID,
		From:    ctx.Query("from"),
		To:      ctx.Query("to"),
	})
	if err != nil {
		c.handleWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GasEstimateResponse{
		GasLimit:      output.Estimate.GasLimit,
		GasPrice:      output.Estimate.GasPrice,
		EstimatedCost: output.Estimate.EstimatedCost,
	})
}

// CreateStream handles POST /wallet/streams requests.
func (c *WalletController) CreateStream(ctx *gin.Context) {
	var req dto.CreateStreamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	subscriptionID, err := uuid.Parse(req.SubscriptionID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid subscription ID format",
		})
		return
	}

	input := wallet.CreateStreamInput{
		SubscriptionID: subscriptionID,
		Protocol:       entity.StreamProtocol(req.Protocol),
		Token:          req.Token,
		Amount:         decimal.NewFromFloat(req.Amount),
		Recipient:      req.Recipient,
		ChainID:        req.ChainID,
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end date format. Use YYYY-MM-DD",
			})
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.createStreamUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleWalletError(ctx, err)
		return
	}
	metrics.RecordStreamOpened(req.Protocol)

	ctx.JSON(http.StatusCreated, dto.ToPaymentStreamResponse(output.Stream))
}

// CancelStream handles DELETE /wallet/streams/:id requests.
func (c *WalletController) CancelStream(ctx *gin.Context) {
	streamID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid stream ID format",
		})
		return
	}

	output, err := c.cancelStreamUseCase.Execute(ctx.Request.Context(), wallet.CancelStreamInput{StreamID: streamID})
	if err != nil {
		c.handleWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentStreamResponse(output.Stream))
}

// ListStreams handles GET /wallet/streams requests.
func (c *WalletController) ListStreams(ctx *gin.Context) {
	input := wallet.ListStreamsInput{
		ActiveOnly: ctx.Query("activeOnly") == "true",
	}
	if subIDStr := ctx.Query("subscriptionId"); subIDStr != "" {
		subscriptionID, err := uuid.Parse(subIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid subscription ID format",
			})
			return
		}
		input.SubscriptionID = &subscriptionID
	}

	output, err := c.listStreamsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleWalletError(ctx, err)
		return
	}

	streams := make([]dto.PaymentStreamResponse, len(output.Streams))
	for i, stream := range output.Streams {
		streams[i] = dto.ToPaymentStreamResponse(stream)
	}
	ctx.JSON(http.StatusOK, dto.StreamListResponse{Streams: streams})
}

// handleWalletError handles wallet errors and returns appropriate HTTP responses.
func (c *WalletController) handleWalletError(ctx *gin.Context, err error) {
	var walletErr *domainerror.WalletError
	if errors.As(err, &walletErr) {
		ctx.JSON(c.getStatusCodeForWalletError(walletErr.Code), dto.ErrorResponse{
			Error: walletErr.Message,
			Code:  string(walletErr.Code),
		})
		return
	}

	var subErr *domainerror.SubscriptionError
	if errors.As(err, &subErr) && subErr.Code == domainerror.ErrCodeSubscriptionNotFound {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: subErr.Message,
			Code:  string(subErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForWalletError maps wallet error codes to HTTP status codes.
func (c *WalletController) getStatusCodeForWalletError(code domainerror.WalletErrorCode) int {
	switch code {
	case domainerror.ErrCodeStreamNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnsupportedChain,
		domainerror.ErrCodeInvalidWalletAddress,
		domainerror.ErrCodeInvalidStreamProtocol,
		domainerror.ErrCodeInvalidStreamAmount:
		return http.StatusBadRequest
	case domainerror.ErrCodeStreamAlreadyCancelled:
		return http.StatusConflict
	case domainerror.ErrCodeChainUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
