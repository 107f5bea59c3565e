package config

import (
	"fmt"
	"strings"

	"github.com/2beens/fitinsights/internal/logging"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`
	// directory holding the *_merged.csv exports
	DataDir string `toml:"data_dir"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	// rotation of logs_path; zero backups or age keeps every rotated file
	LogMaxSizeMB  int  `toml:"log_max_size_mb"`
	LogMaxBackups int  `toml:"log_max_backups"`
	LogMaxAgeDays int  `toml:"log_max_age_days"`
	SentryEnabled bool `toml:"sentry_enabled"`
	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// redis, only needed for rate limiting
	RedisHost              string `toml:"redis_host"`
	RedisPort              string `toml:"redis_port"`
	RateLimitEnabled       bool   `toml:"rate_limit_enabled"`
	RateLimitAllowedPerMin int    `toml:"rate_limit_allowed_per_min"`
	// dashboard
	ResponseCacheSizeMB  int    `toml:"response_cache_size_mb"`
	ResponseCacheTTLSec  int    `toml:"response_cache_ttl_sec"`
	CorrelationAlignment string `toml:"correlation_alignment"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no [%s] section in config", strings.ToLower(env))
	}
	return cfg, nil
}

// Load reads the toml file at path and returns the section for env,
// with defaults filled in for unset fields.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if cfg.DataDir == "" {
		return nil, fmt.Errorf("config [%s]: data_dir not set", env)
	}
	if _, err := logging.GetLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("config [%s]: %w", env, err)
	}
	if cfg.LogMaxBackups < 0 || cfg.LogMaxAgeDays < 0 {
		return nil, fmt.Errorf("config [%s]: log_max_backups and log_max_age_days must not be negative", env)
	}
	if cfg.RateLimitEnabled && cfg.RateLimitAllowedPerMin <= 0 {
		return nil, fmt.Errorf("config [%s]: rate_limit_allowed_per_min must be positive", env)
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9100
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = 50
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.RedisHost == "" {
		c.RedisHost = "localhost"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.ResponseCacheSizeMB <= 0 {
		c.ResponseCacheSizeMB = 16
	}
	if c.ResponseCacheTTLSec <= 0 {
		c.ResponseCacheTTLSec = 600
	}
	if c.CorrelationAlignment == "" {
		c.CorrelationAlignment = "timestamp"
	}
}
