package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "cybercqbench.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "CYBERCQ_PORT")
	setString(&cfg.Server.CORSOrigin, "CYBERCQ_CORS_ORIGIN")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "CYBERCQ_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "CYBERCQ_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "CYBERCQ_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "CYBERCQ_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "CYBERCQ_PG_HEALTH_CHECK")
	setString(&cfg.NATS.URL, "NATS_URL")
	setInt64(&cfg.Cache.MaxBytes, "CYBERCQ_CACHE_MAX_BYTES")
	setDuration(&cfg.Cache.TTL, "CYBERCQ_CACHE_TTL")
	setString(&cfg.Logging.Level, "CYBERCQ_LOG_LEVEL")
	setString(&cfg.Logging.Service, "CYBERCQ_LOG_SERVICE")
	setFloat64(&cfg.Rate.RequestsPerSecond, "CYBERCQ_RATE_RPS")
	setInt(&cfg.Rate.Burst, "CYBERCQ_RATE_BURST")
	setBool(&cfg.Telemetry.Enabled, "CYBERCQ_OTEL_ENABLED")
	setString(&cfg.Telemetry.Endpoint, "CYBERCQ_OTEL_ENDPOINT")
	setDuration(&cfg.Telemetry.Interval, "CYBERCQ_OTEL_INTERVAL")
	setFloat64(&cfg.Analytics.MonthlyVolume, "CYBERCQ_MONTHLY_VOLUME")
}

// validate rejects configurations that cannot possibly work.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port must not be empty")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres DSN must not be empty")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres max_conns must be at least 1")
	}
	if cfg.Cache.MaxBytes < 1 {
		return errors.New("cache max_bytes must be positive")
	}
	if cfg.Analytics.MonthlyVolume <= 0 {
		return errors.New("analytics monthly_volume must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
