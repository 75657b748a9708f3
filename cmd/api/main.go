// Package main is the entry point for the SubTrack API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/subtrack/backend/config"
	"github.com/subtrack/backend/internal/application/usecase/reminder"
	"github.com/subtrack/backend/internal/infra/db"
	"github.com/subtrack/backend/internal/infra/dependency"
	"github.com/subtrack/backend/internal/integration/persistence/model"
)

// reminderScanInterval is how often upcoming renewals are scanned for reminders.
const reminderScanInterval = 1 * time.Hour

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting SubTrack API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection. Without DATABASE_URL the ledger runs
	// on in-memory storage.
	var gormDB *gorm.DB
	if cfg.Database.URL != "" {
		database, err := db.NewPostgresConnection(&cfg.Database)
		if err != nil {
			slog.Error("Database connection failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()

		if err := database.AutoMigrate(
			&model.SubscriptionModel{},
			&model.PaymentStreamModel{},
			&model.DeviceModel{},
			&model.ReminderJobModel{},
		); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		gormDB = database.DB()
	}

	// Wire dependencies
	injector := dependency.NewInjector(cfg, gormDB)
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Background reminder pipeline
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	if injector.ReminderWorker != nil {
		go injector.ReminderWorker.Start(workerCtx)
		if cfg.Reminder.RecipientEmail != "" {
			go runReminderScheduler(workerCtx, injector.ScheduleReminders, cfg.Reminder)
		} else {
			slog.Warn("REMINDER_RECIPIENT_EMAIL not set, reminder scheduling disabled")
		}
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// runReminderScheduler periodically enqueues reminders for renewals that fall
// inside the configured window.
func runReminderScheduler(ctx context.Context, schedule *reminder.ScheduleRemindersUseCase, cfg config.ReminderConfig) {
	scan := func() {
		output, err := schedule.Execute(ctx, reminder.ScheduleRemindersInput{
			RecipientEmail: cfg.RecipientEmail,
			WindowDays:     cfg.WindowDays,
		})
		if err != nil {
			slog.Error("Reminder scheduling failed", "error", err)
			return
		}
		if output.Enqueued > 0 || output.Skipped > 0 {
			slog.Info("Reminder scan completed",
				"enqueued", output.Enqueued,
				"skipped", output.Skipped,
			)
		}
	}

	scan()
	ticker := time.NewTicker(reminderScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			scan()
		}
	}
}
