package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса и клиента мастера бронирования
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Payments PaymentsConfig `toml:"payments"`
	Wizard   WizardConfig   `toml:"wizard"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	URL            string `toml:"url"`
	IdempotencyTTL int    `toml:"idempotency_ttl"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret       string  `toml:"jwt_secret"`
	TokenTTLHours   int     `toml:"token_ttl_hours"`
	RateLimitPerSec float64 `toml:"rate_limit_per_sec"`
	RateLimitBurst  int     `toml:"rate_limit_burst"`
	BcryptCost      int     `toml:"bcrypt_cost"`
}

type PaymentsConfig struct {
	// Provider "stripe" или "fake"; пустая строка означает, что оплата не настроена
	Provider      string `toml:"provider"`
	StripeAPIKey  string `toml:"stripe_api_key"`
	WebhookSecret string `toml:"webhook_secret"`
	Currency      string `toml:"currency"`
	PublicBaseURL string `toml:"public_base_url"`
}

type WizardConfig struct {
	BackendURL     string `toml:"backend_url"`
	OriginURL      string `toml:"origin_url"`
	RequestTimeout int    `toml:"request_timeout"`  // секунды
	PollInterval   int    `toml:"poll_interval_ms"` // миллисекунды
	PollAttempts   int    `toml:"poll_attempts"`
	SessionFile    string `toml:"session_file"`
}

// PollIntervalDuration интервал опроса статуса оплаты
func (w WizardConfig) PollIntervalDuration() time.Duration {
	return time.Duration(w.PollInterval) * time.Millisecond
}

// Load читает .env (если есть), затем toml-файл, затем переопределяет секреты из окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8001,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			IdempotencyTTL: 86400,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "cleaning-booking",
		},
		Auth: AuthConfig{
			TokenTTLHours:   24,
			RateLimitPerSec: 5,
			RateLimitBurst:  10,
			BcryptCost:      10,
		},
		Payments: PaymentsConfig{
			Currency: "usd",
		},
		Wizard: WizardConfig{
			BackendURL:     "http://localhost:8001",
			OriginURL:      "http://localhost:3000",
			RequestTimeout: 10,
			PollInterval:   2000,
			PollAttempts:   10,
			SessionFile:    ".cleaning-session",
		},
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("STRIPE_API_KEY"); v != "" {
		cfg.Payments.StripeAPIKey = v
	}
	if v := os.Getenv("STRIPE_WEBHOOK_SECRET"); v != "" {
		cfg.Payments.WebhookSecret = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.Wizard.BackendURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		cfg.Server.HTTPPort = port
	}
	return nil
}
