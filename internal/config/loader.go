package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"app.env":                        "APP_ENV",
	"app.port":                       "PORT",
	"app.log_level":                  "LOG_LEVEL",
	"database.host":                  "DB_HOST",
	"database.port":                  "DB_PORT",
	"database.user":                  "DB_USER",
	"database.password":              "DB_PASSWORD",
	"database.name":                  "DB_NAME",
	"database.sslmode":               "DB_SSLMODE",
	"auth.jwt_secret":                "JWT_SECRET",
	"http.cors_origins":              "CORS_ORIGINS",
	"redis.enabled":                  "REDIS_ENABLED",
	"redis.addr":                     "REDIS_ADDR",
	"redis.password":                 "REDIS_PASSWORD",
	"redis.db":                       "REDIS_DB",
	"kafka.enabled":                  "KAFKA_ENABLED",
	"kafka.brokers":                  "KAFKA_BROKERS",
	"kafka.topic":                    "KAFKA_TOPIC",
	"outbox.poll_interval":           "OUTBOX_POLL_INTERVAL",
	"outbox.batch_size":              "OUTBOX_BATCH_SIZE",
	"outbox.max_attempts":            "OUTBOX_MAX_ATTEMPTS",
	"outbox.claim_lease":             "OUTBOX_CLAIM_LEASE",
	"payment.base_url":               "PAYMENT_BASE_URL",
	"payment.timeout":                "PAYMENT_TIMEOUT",
	"payment.mock":                   "PAYMENT_MOCK",
	"returns.sweep_interval":         "RETURNS_SWEEP_INTERVAL",
	"returns.sweep_batch_size":       "RETURNS_SWEEP_BATCH_SIZE",
	"returns.refund_lock_ttl":        "RETURNS_REFUND_LOCK_TTL",
	"returns.damaged_deduction_rate": "RETURNS_DAMAGED_DEDUCTION_RATE",
	"returns.missing_deduction_rate": "RETURNS_MISSING_DEDUCTION_RATE",
}

// Load reads configuration from the environment, layered over an optional
// YAML file. An empty path skips the file.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "postgres")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("http.cors_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "returns.status_changed")

	v.SetDefault("outbox.poll_interval", "2s")
	v.SetDefault("outbox.batch_size", 50)
	v.SetDefault("outbox.max_attempts", 5)
	v.SetDefault("outbox.claim_lease", "1m")

	v.SetDefault("payment.timeout", "10s")
	v.SetDefault("payment.mock", true)

	v.SetDefault("returns.sweep_interval", "1h")
	v.SetDefault("returns.sweep_batch_size", 100)
	v.SetDefault("returns.refund_lock_ttl", "2m")
	v.SetDefault("returns.damaged_deduction_rate", 1.0)
	v.SetDefault("returns.missing_deduction_rate", 1.0)
}
