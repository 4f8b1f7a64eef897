package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration for both binaries.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Admission AdmissionConfig `mapstructure:"admission"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Risk      RiskConfig      `mapstructure:"risk"`
	Aml       AmlConfig       `mapstructure:"aml"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AdmissionConfig tunes the idempotency gate and limits service.
type AdmissionConfig struct {
	IdempotencyTTL      time.Duration `mapstructure:"idempotency_ttl"`
	PolicyCacheTTL      time.Duration `mapstructure:"policy_cache_ttl"`
	SupportedCurrencies []string      `mapstructure:"supported_currencies"`
}

// SupportedCurrencySet returns the supported currencies as a lookup set.
func (a AdmissionConfig) SupportedCurrencySet() map[string]struct{} {
	set := make(map[string]struct{}, len(a.SupportedCurrencies))
	for _, c := range a.SupportedCurrencies {
		set[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
	}
	return set
}

// RateLimitConfig holds per-dimension fixed-window limits.
type RateLimitConfig struct {
	MerchantLimit int           `mapstructure:"merchant_limit"`
	CustomerLimit int           `mapstructure:"customer_limit"`
	AccountLimit  int           `mapstructure:"account_limit"`
	Window        time.Duration `mapstructure:"window"`
}

type RiskConfig struct {
	ReviewThreshold int `mapstructure:"review_threshold"`
	BlockThreshold  int `mapstructure:"block_threshold"`
}

type AmlConfig struct {
	TotalWindow               time.Duration `mapstructure:"total_window"`
	TotalThresholdAmount      string        `mapstructure:"total_threshold_amount"`
	StructuringWindow         time.Duration `mapstructure:"structuring_window"`
	StructuringCountThreshold int           `mapstructure:"structuring_count_threshold"`
	BlocklistDestinations     []string      `mapstructure:"blocklist_destinations"`
	HistoryMaxItems           int           `mapstructure:"history_max_items"`
}

// BlocklistSet returns the blocklisted destinations as a lookup set.
func (a AmlConfig) BlocklistSet() map[string]struct{} {
	set := make(map[string]struct{}, len(a.BlocklistDestinations))
	for _, d := range a.BlocklistDestinations {
		if trimmed := strings.TrimSpace(d); trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return set
}

type WorkerConfig struct {
	BatchSize        int           `mapstructure:"batch_size"`
	PollInterval     time.Duration `mapstructure:"poll_interval"`
	MaxEventAttempts int           `mapstructure:"max_event_attempts"`
}

type ProviderConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	BulkheadLimit    int           `mapstructure:"bulkhead_limit"`
	BreakerThreshold int           `mapstructure:"breaker_threshold"`
	BreakerRecovery  time.Duration `mapstructure:"breaker_recovery"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PAY_.
// Nested keys use underscore: PAY_DATABASE_HOST, PAY_WORKER_BATCH_SIZE, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "payments")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("admission.idempotency_ttl", "5m")
	v.SetDefault("admission.policy_cache_ttl", "60s")
	v.SetDefault("admission.supported_currencies", []string{"BRL", "USD"})
	v.SetDefault("rate_limit.merchant_limit", 120)
	v.SetDefault("rate_limit.customer_limit", 80)
	v.SetDefault("rate_limit.account_limit", 80)
	v.SetDefault("rate_limit.window", "60s")
	v.SetDefault("risk.review_threshold", 50)
	v.SetDefault("risk.block_threshold", 80)
	v.SetDefault("aml.total_window", "10m")
	v.SetDefault("aml.total_threshold_amount", "5000.00")
	v.SetDefault("aml.structuring_window", "15m")
	v.SetDefault("aml.structuring_count_threshold", 3)
	v.SetDefault("aml.blocklist_destinations", []string{"dest-blocked-001", "dest-blocked-002"})
	v.SetDefault("aml.history_max_items", 500)
	v.SetDefault("worker.batch_size", 20)
	v.SetDefault("worker.poll_interval", "1s")
	v.SetDefault("worker.max_event_attempts", 5)
	v.SetDefault("provider.base_url", "http://localhost:9090")
	v.SetDefault("provider.timeout", "5s")
	v.SetDefault("provider.bulkhead_limit", 10)
	v.SetDefault("provider.breaker_threshold", 3)
	v.SetDefault("provider.breaker_recovery", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PAY_DATABASE_HOST -> database.host
	v.SetEnvPrefix("PAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
