// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Chains   ChainsConfig
	Sync     SyncConfig
	Reminder ReminderConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// DatabaseConfig holds PostgreSQL configuration. An empty URL means the
// application runs with in-memory storage instead.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration. An empty URL disables the
// balance cache.
type RedisConfig struct {
	URL        string
	Password   string
	DB         int
	BalanceTTL time.Duration
}

// JWTConfig holds device token configuration.
type JWTConfig struct {
	Secret            string
	DeviceTokenExpiry time.Duration
}

// ChainConfig holds per-chain RPC configuration.
type ChainConfig struct {
	ID           int64
	Name         string
	RPCURL       string
	NativeSymbol string
	NativeName   string
	USDCAddress  string
}

// ChainsConfig holds the set of supported EVM chains.
type ChainsConfig struct {
	Chains []ChainConfig
}

// SyncConfig holds remote subscription provider configuration.
type SyncConfig struct {
	ProviderURL string
	Timeout     time.Duration
}

// ReminderConfig holds renewal reminder configuration.
type ReminderConfig struct {
	ResendAPIKey   string
	FromName       string
	FromEmail      string
	RecipientEmail string
	WindowDays     int
	WorkerEnabled  bool
	PollInterval   time.Duration
	BatchSize      int
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:        getEnv("REDIS_URL", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			BalanceTTL: getEnvAsDuration("BALANCE_CACHE_TTL", 60*time.Second),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "change-me-in-production"),
			DeviceTokenExpiry: getEnvAsDuration("DEVICE_TOKEN_EXPIRY", 30*24*time.Hour),
		},
		Chains: ChainsConfig{
			Chains: []ChainConfig{
				{
					ID:           1,
					Name:         "Ethereum",
					RPCURL:       getEnv("ETH_RPC_URL", "https://eth.llamarpc.com"),
					NativeSymbol: "ETH",
					NativeName:   "Ether",
					USDCAddress:  getEnv("ETH_USDC_ADDRESS", "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
				},
				{
					ID:           10,
					Name:         "Optimism",
					RPCURL:       getEnv("OPTIMISM_RPC_URL", "https://mainnet.optimism.io"),
					NativeSymbol: "ETH",
					NativeName:   "Ether",
					USDCAddress:  getEnv("OPTIMISM_USDC_ADDRESS", "0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85"),
				},
				{
					ID:           137,
					Name:         "Polygon",
					RPCURL:       getEnv("POLYGON_RPC_URL", "https://polygon-rpc.com"),
					NativeSymbol: "POL",
					NativeName:   "Polygon",
					USDCAddress:  getEnv("POLYGON_USDC_ADDRESS", "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"),
				},
				{
					ID:           8453,
					Name:         "Base",
					RPCURL:       getEnv("BASE_RPC_URL", "https://mainnet.base.org"),
					NativeSymbol: "ETH",
					NativeName:   "Ether",
					USDCAddress:  getEnv("BASE_USDC_ADDRESS", "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"),
				},
				{
					ID:           42161,
					Name:         "Arbitrum One",
					RPCURL:       getEnv("ARBITRUM_RPC_URL", "https://arb1.arbitrum.io/rpc"),
					NativeSymbol: "ETH",
					NativeName:   "Ether",
					USDCAddress:  getEnv("ARBITRUM_USDC_ADDRESS", "0xaf88d065e77c8cC2239327C5EDb3A432268e5831"),
				},
			},
		},
		Sync: SyncConfig{
			ProviderURL: getEnv("SYNC_PROVIDER_URL", ""),
			Timeout:     getEnvAsDuration("SYNC_TIMEOUT", 10*time.Second),
		},
		Reminder: ReminderConfig{
			ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
			FromName:       getEnv("RESEND_FROM_NAME", "SubTrack"),
			FromEmail:      getEnv("RESEND_FROM_EMAIL", "onboarding@resend.dev"),
			RecipientEmail: getEnv("REMINDER_RECIPIENT_EMAIL", ""),
			WindowDays:     getEnvAsInt("REMINDER_WINDOW_DAYS", 3),
			WorkerEnabled:  getEnvAsBool("REMINDER_WORKER_ENABLED", true),
			PollInterval:   getEnvAsDuration("REMINDER_WORKER_POLL_INTERVAL", 5*time.Second),
			BatchSize:      getEnvAsInt("REMINDER_WORKER_BATCH_SIZE", 10),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
