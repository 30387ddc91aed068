package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config is the full runtime configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Outbox   OutboxConfig   `mapstructure:"outbox"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Returns  ReturnsConfig  `mapstructure:"returns"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

// IsDevelopment reports whether the console logger and dev fallbacks apply.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds the postgres connection URL.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type HTTPConfig struct {
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type OutboxConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	ClaimLease   time.Duration `mapstructure:"claim_lease"`
}

type PaymentConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Mock    bool          `mapstructure:"mock"`
}

// ReturnsConfig tunes the returns workflow.
type ReturnsConfig struct {
	SweepInterval        time.Duration `mapstructure:"sweep_interval"`
	SweepBatchSize       int           `mapstructure:"sweep_batch_size"`
	RefundLockTTL        time.Duration `mapstructure:"refund_lock_ttl"`
	DamagedDeductionRate float64       `mapstructure:"damaged_deduction_rate"`
	MissingDeductionRate float64       `mapstructure:"missing_deduction_rate"`
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Port == "" {
		errs = append(errs, "app.port is required")
	}
	if c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "" {
		errs = append(errs, "database host, name and user are required")
	}
	if !c.App.IsDevelopment() && c.Auth.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required outside development")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, "redis.addr is required when redis is enabled")
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		errs = append(errs, "kafka brokers and topic are required when kafka is enabled")
	}
	if c.Outbox.PollInterval <= 0 || c.Outbox.BatchSize <= 0 || c.Outbox.MaxAttempts <= 0 {
		errs = append(errs, "outbox poll interval, batch size and max attempts must be positive")
	}
	if c.Outbox.ClaimLease <= 0 {
		errs = append(errs, "outbox.claim_lease must be positive")
	}
	if !c.Payment.Mock && c.Payment.BaseURL == "" {
		errs = append(errs, "payment.base_url is required unless payment.mock is set")
	}
	if c.Payment.Timeout <= 0 {
		errs = append(errs, "payment.timeout must be positive")
	}
	if c.Returns.SweepInterval <= 0 || c.Returns.SweepBatchSize <= 0 || c.Returns.RefundLockTTL <= 0 {
		errs = append(errs, "returns sweep interval, sweep batch size and refund lock ttl must be positive")
	}
	if c.Returns.DamagedDeductionRate < 0 || c.Returns.MissingDeductionRate < 0 {
		errs = append(errs, "deduction rates must not be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
