package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		CORSOrigins     []string      `yaml:"cors_origins"`
		WSPingInterval  time.Duration `yaml:"ws_ping_interval"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	RateLimit struct {
		PerSecond float64       `yaml:"per_second"`
		Burst     int           `yaml:"burst"`
		Idle      time.Duration `yaml:"idle"`
	} `yaml:"rate_limit"`
	Curriculum struct {
		Source       string        `yaml:"source"` // fs or http
		Dir          string        `yaml:"dir"`
		BaseURL      string        `yaml:"base_url"`
		FetchTimeout time.Duration `yaml:"fetch_timeout"`
		CacheTTL     time.Duration `yaml:"cache_ttl"`
		PurgeOnStart bool          `yaml:"purge_on_start"` // drop lessons cached by a previous deploy
	} `yaml:"curriculum"`
	Cache struct {
		Backend         string        `yaml:"backend"` // memory, redis or layered
		MaxSize         int           `yaml:"max_size"`
		CleanupInterval time.Duration `yaml:"cleanup_interval"`
		L1TTL           time.Duration `yaml:"l1_ttl"` // layered only
		Redis           struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			PoolSize int    `yaml:"pool_size"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	LogShipping struct {
		Enabled        bool          `yaml:"enabled"`
		Topic          string        `yaml:"topic"`
		Interval       time.Duration `yaml:"interval"`
		CountThreshold int           `yaml:"count_threshold"`
	} `yaml:"log_shipping"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func parse(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()
	return &c, nil
}

// LoadWithEnv loads config from YAML, overrides with environment variables, then validates.
func LoadWithEnv(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}

	if err := c.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("CONTENT_SOURCE"); v != "" {
		c.Curriculum.Source = v
	}
	if v := getenv("CONTENT_DIR"); v != "" {
		c.Curriculum.Dir = v
	}
	if v := getenv("CONTENT_BASE_URL"); v != "" {
		c.Curriculum.BaseURL = v
	}
	if v := getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Server.WSPingInterval == 0 {
		c.Server.WSPingInterval = 30 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.RateLimit.PerSecond == 0 {
		c.RateLimit.PerSecond = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
	if c.RateLimit.Idle == 0 {
		c.RateLimit.Idle = 10 * time.Minute
	}
	if c.Curriculum.Source == "" {
		c.Curriculum.Source = "fs"
	}
	if c.Curriculum.Dir == "" {
		c.Curriculum.Dir = "content/curriculum/modules"
	}
	if c.Curriculum.FetchTimeout == 0 {
		c.Curriculum.FetchTimeout = 5 * time.Second
	}
	if c.Curriculum.CacheTTL == 0 {
		c.Curriculum.CacheTTL = 10 * time.Minute
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.MaxSize == 0 {
		c.Cache.MaxSize = 100
	}
	if c.LogShipping.Topic == "" {
		c.LogShipping.Topic = "probabilitypit.logs.errors"
	}
	if c.LogShipping.Interval == 0 {
		c.LogShipping.Interval = 30 * time.Second
	}
	if c.LogShipping.CountThreshold == 0 {
		c.LogShipping.CountThreshold = 100
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'console' or 'json', got '%s'", c.Log.Format)
	}
	switch c.Curriculum.Source {
	case "fs":
		if c.Curriculum.Dir == "" {
			return fmt.Errorf("curriculum.dir is required for source 'fs'")
		}
	case "http":
		if c.Curriculum.BaseURL == "" {
			return fmt.Errorf("curriculum.base_url is required for source 'http'")
		}
	default:
		return fmt.Errorf("curriculum.source must be 'fs' or 'http', got '%s'", c.Curriculum.Source)
	}
	switch c.Cache.Backend {
	case "memory":
	case "redis", "layered":
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required for backend '%s'", c.Cache.Backend)
		}
	default:
		return fmt.Errorf("cache.backend must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Backend)
	}
	if c.LogShipping.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when log_shipping is enabled")
	}
	return nil
}
