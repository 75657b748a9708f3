package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/application/usecase/subscription"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
	"github.com/subtrack/backend/internal/infra/metrics"
	"github.com/subtrack/backend/internal/integration/entrypoint/dto"
	"github.com/subtrack/backend/internal/integration/export"
)

// SubscriptionController handles subscription endpoints.
type SubscriptionController struct {
	listUseCase     *subscription.ListSubscriptionsUseCase
	createUseCase   *subscription.CreateSubscriptionUseCase
	updateUseCase   *subscription.UpdateSubscriptionUseCase
	deleteUseCase   *subscription.DeleteSubscriptionUseCase
	toggleUseCase   *subscription.ToggleSubscriptionUseCase
	statsUseCase    *subscription.GetStatsUseCase
	upcomingUseCase *subscription.UpcomingRenewalsUseCase
	syncUseCase     *subscription.SyncSubscriptionsUseCase

	// Export reads a raw snapshot; rendering needs entities, not outputs.
	subscriptionRepo adapter.SubscriptionRepository
}

// NewSubscriptionController creates a new subscription controller instance.
func NewSubscriptionController(
	listUseCase *subscription.ListSubscriptionsUseCase,
	createUseCase *subscription.CreateSubscriptionUseCase,
	updateUseCase *subscription.UpdateSubscriptionUseCase,
	deleteUseCase *subscription.DeleteSubscriptionUseCase,
	toggleUseCase *subscription.ToggleSubscriptionUseCase,
	statsUseCase *subscription.GetStatsUseCase,
	upcomingUseCase *subscription.UpcomingRenewalsUseCase,
	syncUseCase *subscription.SyncSubscriptionsUseCase,
	subscriptionRepo adapter.SubscriptionRepository,
) *SubscriptionController {
	return &SubscriptionController{
		listUseCase:      listUseCase,
		createUseCase:    createUseCase,
		updateUseCase:    updateUseCase,
		deleteUseCase:    deleteUseCase,
		toggleUseCase:    toggleUseCase,
		statsUseCase:     statsUseCase,
		upcomingUseCase:  upcomingUseCase,
		syncUseCase:      syncUseCase,
		subscriptionRepo: subscriptionRepo,
	}
}

// List handles GET /subscriptions requests.
func (c *SubscriptionController) List(ctx *gin.Context) {
	criteria := subscription.FilterCriteria{
		Search:    ctx.Query("search"),
		SortBy:    subscription.SortField(ctx.Query("sortBy")),
		SortOrder: subscription.SortOrder(ctx.DefaultQuery("sortOrder", "asc")),
	}

	if categoriesStr := ctx.Query("categories"); categoriesStr != "" {
		for _, raw := range strings.Split(categoriesStr, ",") {
			criteria.Categories = append(criteria.Categories, entity.Category(strings.TrimSpace(raw)))
		}
	}
	if cyclesStr := ctx.Query("billingCycles"); cyclesStr != "" {
		for _, raw := range strings.Split(cyclesStr, ",") {
			criteria.BillingCycles = append(criteria.BillingCycles, entity.BillingCycle(strings.TrimSpace(raw)))
		}
	}
	if minStr := ctx.Query("minPrice"); minStr != "" {
		if min, err := decimal.NewFromString(minStr); err == nil {
			criteria.MinPrice = &min
		}
	}
	if maxStr := ctx.Query("maxPrice"); maxStr != "" {
		if max, err := decimal.NewFromString(maxStr); err == nil {
			criteria.MaxPrice = &max
		}
	}
	criteria.ActiveOnly = ctx.Query("activeOnly") == "true"
	criteria.CryptoOnly = ctx.Query("cryptoOnly") == "true"

	output, err := c.listUseCase.Execute(ctx.Request.Context(), subscription.ListSubscriptionsInput{Criteria: criteria})
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubscriptionListResponse(output))
}

// Create handles POST /subscriptions requests.
func (c *SubscriptionController) Create(ctx *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingSubscriptionFields),
		})
		return
	}

	nextBillingDate, err := time.Parse("2006-01-02", req.NextBillingDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid next billing date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeMissingSubscriptionFields),
		})
		return
	}

	input := subscription.CreateSubscriptionInput{
		Name:            req.Name,
		Description:     req.Description,
		Category:        entity.Category(req.Category),
		Price:           decimal.NewFromFloat(req.Price),
		Currency:        req.Currency,
		BillingCycle:    entity.BillingCycle(req.BillingCycle),
		NextBillingDate: nextBillingDate,
		IsCryptoEnabled: req.IsCryptoEnabled,
		CryptoToken:     req.CryptoToken,
	}
	if req.CryptoAmount != nil {
		amount := decimal.NewFromFloat(*req.CryptoAmount)
		input.CryptoAmount = &amount
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSubscriptionResponse(output.Subscription))
}

// Update handles PATCH /subscriptions/:id requests.
func (c *SubscriptionController) Update(ctx *gin.Context) {
	subscriptionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid subscription ID format",
		})
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingSubscriptionFields),
		})
		return
	}

	input := subscription.UpdateSubscriptionInput{
		SubscriptionID:  subscriptionID,
		Name:            req.Name,
		Description:     req.Description,
		Currency:        req.Currency,
		IsCryptoEnabled: req.IsCryptoEnabled,
		CryptoToken:     req.CryptoToken,
	}
	if req.Category != nil {
		category := entity.Category(*req.Category)
		input.Category = &category
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		input.Price = &price
	}
	if req.BillingCycle != nil {
		cycle := entity.BillingCycle(*req.BillingCycle)
		input.BillingCycle = &cycle
	}
	if req.NextBillingDate != nil {
		nextBillingDate, err := time.Parse("2006-01-02", *req.NextBillingDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid next billing date format. Use YYYY-MM-DD",
			})
			return
		}
		input.NextBillingDate = &nextBillingDate
	}
	if req.CryptoAmount != nil {
		amount := decimal.NewFromFloat(*req.CryptoAmount)
		input.CryptoAmount = &amount
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubscriptionResponse(output.Subscription))
}

// Delete handles DELETE /subscriptions/:id requests.
func (c *SubscriptionController) Delete(ctx *gin.Context) {
	subscriptionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid subscription ID format",
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), subscription.DeleteSubscriptionInput{SubscriptionID: subscriptionID}); err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Toggle handles POST /subscriptions/:id/toggle requests.
func (c *SubscriptionController) Toggle(ctx *gin.Context) {
	subscriptionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid subscription ID format",
		})
		return
	}

	output, err := c.toggleUseCase.Execute(ctx.Request.Context(), subscription.ToggleSubscriptionInput{SubscriptionID: subscriptionID})
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubscriptionResponse(output.Subscription))
}

// Stats handles GET /subscriptions/stats requests.
func (c *SubscriptionController) Stats(ctx *gin.Context) {
	output, err := c.statsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubscriptionStatsResponse(output.Stats))
}

// Upcoming handles GET /subscriptions/upcoming requests.
func (c *SubscriptionController) Upcoming(ctx *gin.Context) {
	input := subscription.UpcomingRenewalsInput{}
	if daysStr := ctx.Query("days"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil {
			input.WithinDays = days
		}
	}

	output, err := c.upcomingUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	subscriptions := make([]dto.SubscriptionResponse, len(output.Subscriptions))
	for i, sub := range output.Subscriptions {
		subscriptions[i] = dto.ToSubscriptionResponse(sub)
	}
	ctx.JSON(http.StatusOK, dto.SubscriptionListResponse{
		Subscriptions: subscriptions,
		Total:         len(subscriptions),
	})
}

// Sync handles POST /subscriptions/sync requests.
func (c *SubscriptionController) Sync(ctx *gin.Context) {
	output, err := c.syncUseCase.Execute(ctx.Request.Context())
	if err != nil {
		metrics.RecordSyncRun(false)
		c.handleSubscriptionError(ctx, err)
		return
	}

	metrics.RecordSyncRun(true)
	ctx.JSON(http.StatusOK, dto.SyncResponse{Count: output.Count})
}

// Export handles GET /subscriptions/export requests. It streams the collection
// as an XLSX workbook.
func (c *SubscriptionController) Export(ctx *gin.Context) {
	subscriptions, err := c.subscriptionRepo.FindAll(ctx.Request.Context())
	if err != nil {
		c.handleSubscriptionError(ctx, err)
		return
	}

	stats := entity.ComputeSubscriptionStats(subscriptions)
	workbook, err := export.BuildSubscriptionXLSX(subscriptions, stats)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to build export",
		})
		return
	}

	filename := fmt.Sprintf("subscriptions-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// handleSubscriptionError handles subscription errors and returns appropriate HTTP responses.
func (c *SubscriptionController) handleSubscriptionError(ctx *gin.Context, err error) {
	var subErr *domainerror.SubscriptionError
	if errors.As(err, &subErr) {
		ctx.JSON(c.getStatusCodeForSubscriptionError(subErr.Code), dto.ErrorResponse{
			Error: subErr.Message,
			Code:  string(subErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForSubscriptionError maps subscription error codes to HTTP status codes.
func (c *SubscriptionController) getStatusCodeForSubscriptionError(code domainerror.SubscriptionErrorCode) int {
	switch code {
	case domainerror.ErrCodeSubscriptionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidSubscriptionName,
		domainerror.ErrCodeInvalidSubscriptionPrice,
		domainerror.ErrCodeInvalidCategory,
		domainerror.ErrCodeInvalidBillingCycle,
		domainerror.ErrCodeInvalidCurrency,
		domainerror.ErrCodeMissingSubscriptionFields,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeInvalidPriceRange,
		domainerror.ErrCodeInvalidSortField:
		return http.StatusBadRequest
	case domainerror.ErrCodeSyncProviderUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeSyncFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
