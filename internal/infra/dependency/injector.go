// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/subtrack/backend/config"
	applicationadapter "github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/application/usecase/auth"
	"github.com/subtrack/backend/internal/application/usecase/reminder"
	"github.com/subtrack/backend/internal/application/usecase/subscription"
	"github.com/subtrack/backend/internal/application/usecase/wallet"
	"github.com/subtrack/backend/internal/domain/entity"
	"github.com/subtrack/backend/internal/infra/metrics"
	"github.com/subtrack/backend/internal/infra/server/router"
	"github.com/subtrack/backend/internal/integration/adapters"
	"github.com/subtrack/backend/internal/integration/email"
	"github.com/subtrack/backend/internal/integration/email/templates"
	"github.com/subtrack/backend/internal/integration/entrypoint/controller"
	"github.com/subtrack/backend/internal/integration/entrypoint/middleware"
	"github.com/subtrack/backend/internal/integration/persistence"
	"github.com/subtrack/backend/internal/integration/persistence/memory"
	"github.com/subtrack/backend/internal/integration/provider"
)

// Stream service fakes simulate on-chain settlement delay.
const (
	superfluidSettleDelay = 2 * time.Second
	sablierSettleDelay    = 1500 * time.Millisecond
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	// ReminderWorker drains the reminder queue; nil when the worker is disabled.
	ReminderWorker *email.Worker
	// ScheduleReminders enqueues upcoming-renewal reminders.
	ScheduleReminders *reminder.ScheduleRemindersUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil db selects the in-memory repositories.
func NewInjector(cfg *config.Config, db *gorm.DB) *Injector {
	metrics.Init()

	// Repositories: PostgreSQL when a database is connected, in-memory otherwise
	var (
		subscriptionRepo applicationadapter.SubscriptionRepository
		streamRepo       applicationadapter.PaymentStreamRepository
		deviceRepo       applicationadapter.DeviceRepository
		queueRepo        applicationadapter.ReminderQueueRepository
	)
	if db != nil {
		subscriptionRepo = persistence.NewSubscriptionRepository(db)
		streamRepo = persistence.NewPaymentStreamRepository(db)
		deviceRepo = persistence.NewDeviceRepository(db)
		queueRepo = persistence.NewReminderQueueRepository(db)
	} else {
		slog.Info("No database configured, using in-memory storage")
		subscriptionRepo = memory.NewSubscriptionRepository()
		streamRepo = memory.NewPaymentStreamRepository()
		deviceRepo = memory.NewDeviceRepository()
		queueRepo = memory.NewReminderQueueRepository()
	}

	// Adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.DeviceTokenExpiry)

	chains := make([]entity.ChainInfo, 0, len(cfg.Chains.Chains))
	for _, c := range cfg.Chains.Chains {
		chains = append(chains, entity.ChainInfo{
			ID:           c.ID,
			Name:         c.Name,
			RPCURL:       c.RPCURL,
			NativeSymbol: c.NativeSymbol,
			NativeName:   c.NativeName,
			USDCAddress:  c.USDCAddress,
		})
	}
	chainClient := adapters.NewEthereumClient(chains)

	var balanceCache applicationadapter.BalanceCache
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			slog.Warn("Invalid REDIS_URL, balance caching disabled", "error", err)
		} else {
			if cfg.Redis.Password != "" {
				opts.Password = cfg.Redis.Password
			}
			balanceCache = adapters.NewRedisBalanceCache(redis.NewClient(opts), cfg.Redis.BalanceTTL)
		}
	}

	superfluid := adapters.NewSuperfluidService(superfluidSettleDelay)
	sablier := adapters.NewSablierService(sablierSettleDelay)

	var subscriptionProvider applicationadapter.SubscriptionProvider
	if cfg.Sync.ProviderURL != "" {
		subscriptionProvider = provider.NewHTTPProvider(cfg.Sync.ProviderURL, cfg.Sync.Timeout)
	}

	// Auth use cases
	registerDeviceUseCase := auth.NewRegisterDeviceUseCase(deviceRepo, tokenService)

	// Subscription use cases
	listUseCase := subscription.NewListSubscriptionsUseCase(subscriptionRepo)
	createUseCase := subscription.NewCreateSubscriptionUseCase(subscriptionRepo)
	updateUseCase := subscription.NewUpdateSubscriptionUseCase(subscriptionRepo)
	deleteUseCase := subscription.NewDeleteSubscriptionUseCase(subscriptionRepo)
	toggleUseCase := subscription.NewToggleSubscriptionUseCase(subscriptionRepo)
	statsUseCase := subscription.NewGetStatsUseCase(subscriptionRepo)
	upcomingUseCase := subscription.NewUpcomingRenewalsUseCase(subscriptionRepo)
	syncUseCase := subscription.NewSyncSubscriptionsUseCase(subscriptionRepo, subscriptionProvider)

	// Wallet use cases
	balancesUseCase := wallet.NewGetBalancesUseCase(chainClient, balanceCache)
	estimateGasUseCase := wallet.NewEstimateGasUseCase(chainClient)
	createStreamUseCase := wallet.NewCreateStreamUseCase(streamRepo, subscriptionRepo, superfluid, sablier)
	cancelStreamUseCase := wallet.NewCancelStreamUseCase(streamRepo, subscriptionRepo, superfluid, sablier)
	listStreamsUseCase := wallet.NewListStreamsUseCase(streamRepo)

	// Reminder scheduling and delivery
	scheduleReminders := reminder.NewScheduleRemindersUseCase(subscriptionRepo, queueRepo)

	var reminderWorker *email.Worker
	if cfg.Reminder.WorkerEnabled && cfg.Reminder.ResendAPIKey != "" {
		renderer, err := templates.NewRenderer()
		if err != nil {
			slog.Error("Failed to load email templates, reminder worker disabled", "error", err)
		} else {
			sender := email.NewResendClient(cfg.Reminder.ResendAPIKey, cfg.Reminder.FromName, cfg.Reminder.FromEmail)
			reminderWorker = email.NewWorker(queueRepo, sender, renderer, email.WorkerConfig{
				PollInterval: cfg.Reminder.PollInterval,
				BatchSize:    cfg.Reminder.BatchSize,
			})
		}
	}

	// Controllers
	var healthChecker func() bool
	if db != nil {
		healthChecker = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}
	healthController := controller.NewHealthController(healthChecker)

	authController := controller.NewAuthController(registerDeviceUseCase)

	subscriptionController := controller.NewSubscriptionController(
		listUseCase,
		createUseCase,
		updateUseCase,
		deleteUseCase,
		toggleUseCase,
		statsUseCase,
		upcomingUseCase,
		syncUseCase,
		subscriptionRepo,
	)

	walletController := controller.NewWalletController(
		balancesUseCase,
		estimateGasUseCase,
		createStreamUseCase,
		cancelStreamUseCase,
		listStreamsUseCase,
		chainClient,
	)

	// Middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var registerRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		registerRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		registerRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		subscriptionController,
		walletController,
		registerRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:            cfg,
		DB:                db,
		Router:            r,
		ReminderWorker:    reminderWorker,
		ScheduleReminders: scheduleReminders,
	}
}
