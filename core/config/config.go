package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tnb-api/core/logger"
)

type (
	Config struct {
		Server   ServerConfig
		Database DatabaseConfig
		Redis    RedisConfig
		Stripe   StripeConfig
		Auth     AuthConfig
		Admin    AdminConfig
	}

	ServerConfig struct {
		Host      string
		Port      int
		BaseURL   string // public site URL used for checkout redirects
		LogLevel  string
		LogPretty bool
	}

	DatabaseConfig struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	StripeConfig struct {
		SecretKey     string
		WebhookSecret string
		Currency      string
	}

	AuthConfig struct {
		JWTSecret       string
		TokenTTLMinutes int
	}

	// AdminConfig holds the single salon-operator account used by the admin
	// endpoints. PasswordHash is a bcrypt hash, never the plain password.
	AdminConfig struct {
		Email        string
		PasswordHash string
	}
)

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads configuration from the environment (with .env fallback for local
// development) and caches it for the lifetime of the process.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("config: no .env file found, using environment only")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("BASE_URL", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "tnb")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("STRIPE_CURRENCY", "gbp")

	v.SetDefault("JWT_TOKEN_TTL_MINUTES", 60)

	cfg := &Config{
		Server: ServerConfig{
			Host:      v.GetString("SERVER_HOST"),
			Port:      v.GetInt("SERVER_PORT"),
			BaseURL:   v.GetString("BASE_URL"),
			LogLevel:  v.GetString("LOG_LEVEL"),
			LogPretty: v.GetBool("LOG_PRETTY"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Stripe: StripeConfig{
			SecretKey:     v.GetString("STRIPE_SECRET_KEY"),
			WebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),
			Currency:      v.GetString("STRIPE_CURRENCY"),
		},
		Auth: AuthConfig{
			JWTSecret:       v.GetString("JWT_SECRET"),
			TokenTTLMinutes: v.GetInt("JWT_TOKEN_TTL_MINUTES"),
		},
		Admin: AdminConfig{
			Email:        v.GetString("ADMIN_EMAIL"),
			PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		},
	}

	if cfg.Stripe.SecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.Stripe.WebhookSecret == "" {
		return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	instance = cfg
	return cfg, nil
}

// Get returns the loaded config. Panics if Load was never called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: Get called before Load")
	}
	return instance
}

// GetSafe returns the loaded config and whether it has been initialized.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
