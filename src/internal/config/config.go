package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const defaultHTTPAddr = ":8080"
const defaultNotificationStream = "account-notifications"
const defaultNotificationBuffer = 256
const defaultLockTableShards = 64
const defaultLogLevel = "info"

type Config struct {
	HTTPAddr           string
	DatabaseDSN        string
	MigrationsDir      string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	NotificationStream string
	NotificationBuffer int
	LockWaitTimeout    time.Duration
	LockTableShards    int
	LogLevel           string
	SeedAccounts       map[string]decimal.Decimal
}

func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:           envOrDefault("HTTP_ADDR", defaultHTTPAddr),
		MigrationsDir:      envOrDefault("MIGRATIONS_DIR", filepath.Join("src", "migrations")),
		RedisAddr:          env("REDIS_ADDR"),
		RedisPassword:      env("REDIS_PASSWORD"),
		NotificationStream: envOrDefault("NOTIFICATION_STREAM", defaultNotificationStream),
		LogLevel:           strings.ToLower(envOrDefault("LOG_LEVEL", defaultLogLevel)),
	}

	if conn := env("DATABASE_DSN"); conn != "" {
		cfg.DatabaseDSN = normalizeConnectionString(conn)
	}

	var err error
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.NotificationBuffer, err = intEnv("NOTIFICATION_BUFFER", defaultNotificationBuffer); err != nil {
		return Config{}, err
	}
	if cfg.LockTableShards, err = intEnv("LOCK_TABLE_SHARDS", defaultLockTableShards); err != nil {
		return Config{}, err
	}
	if cfg.LockTableShards <= 0 {
		return Config{}, fmt.Errorf("LOCK_TABLE_SHARDS must be positive, got %d", cfg.LockTableShards)
	}

	if raw := env("LOCK_WAIT_TIMEOUT"); raw != "" {
		cfg.LockWaitTimeout, err = time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse LOCK_WAIT_TIMEOUT: %w", err)
		}
		if cfg.LockWaitTimeout < 0 {
			return Config{}, fmt.Errorf("LOCK_WAIT_TIMEOUT must not be negative, got %s", raw)
		}
	}

	if cfg.SeedAccounts, err = parseSeedAccounts(env("SEED_ACCOUNTS")); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envOrDefault(key, fallback string) string {
	if v := env(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := env(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

// parseSeedAccounts reads "id=balance,id=balance".
func parseSeedAccounts(raw string) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	if raw == "" {
		return out, nil
	}

	for _, part := range strings.Split(raw, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 || strings.TrimSpace(kv[0]) == "" {
			return nil, fmt.Errorf("parse SEED_ACCOUNTS entry %q: expected id=balance", p)
		}

		balance, err := decimal.NewFromString(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, fmt.Errorf("parse SEED_ACCOUNTS balance for %q: %w", kv[0], err)
		}
		if balance.IsNegative() {
			return nil, fmt.Errorf("parse SEED_ACCOUNTS balance for %q: must not be negative", kv[0])
		}

		out[strings.TrimSpace(kv[0])] = balance
	}

	return out, nil
}

func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
