package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds runtime configuration for the beacon server.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logging  LoggingConfig  `toml:"logging"`
	Notifier NotifierConfig `toml:"notifier"`
	Cooldown CooldownConfig `toml:"cooldown"`
}

type ServerConfig struct {
	Addr          string        `toml:"addr"`
	ReadTimeout   string        `toml:"read_timeout"`
	WriteTimeout  string        `toml:"write_timeout"`
	MaxBodySize   int64         `toml:"max_body_size"`
	ReadTimeoutD  time.Duration `toml:"-"`
	WriteTimeoutD time.Duration `toml:"-"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

// NotifierConfig configures the outbound Kafka alert topic. Disabled by
// default: the platform itself is memory-resident and needs no broker.
type NotifierConfig struct {
	Enabled       bool          `toml:"enabled"`
	Brokers       []string      `toml:"brokers"`
	Topic         string        `toml:"topic"`
	PoolSize      int           `toml:"pool_size"`
	MaxRetries    int           `toml:"max_retries"`
	RetryBackoff  string        `toml:"retry_backoff"`
	WriteTimeout  string        `toml:"write_timeout"`
	Compression   string        `toml:"compression"`
	RetryBackoffD time.Duration `toml:"-"`
	WriteTimeoutD time.Duration `toml:"-"`
}

// CooldownConfig selects the rule cooldown backend.
type CooldownConfig struct {
	Backend   string `toml:"backend"` // memory or redis
	RedisAddr string `toml:"redis_addr"`
}

// Default returns a sensible default config for local dev.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          ":8080",
			ReadTimeout:   "10s",
			WriteTimeout:  "30s",
			MaxBodySize:   1 << 20, // 1MB
			ReadTimeoutD:  10 * time.Second,
			WriteTimeoutD: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Notifier: NotifierConfig{
			Enabled:       false,
			Brokers:       []string{"localhost:9092"},
			Topic:         "beacon.alerts",
			PoolSize:      2,
			MaxRetries:    3,
			RetryBackoff:  "100ms",
			WriteTimeout:  "5s",
			Compression:   "snappy",
			RetryBackoffD: 100 * time.Millisecond,
			WriteTimeoutD: 5 * time.Second,
		},
		Cooldown: CooldownConfig{
			Backend:   "memory",
			RedisAddr: "localhost:6379",
		},
	}
}

// Load reads a TOML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.parseDurations(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parseDurations() error {
	pairs := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"server.read_timeout", c.Server.ReadTimeout, &c.Server.ReadTimeoutD},
		{"server.write_timeout", c.Server.WriteTimeout, &c.Server.WriteTimeoutD},
		{"notifier.retry_backoff", c.Notifier.RetryBackoff, &c.Notifier.RetryBackoffD},
		{"notifier.write_timeout", c.Notifier.WriteTimeout, &c.Notifier.WriteTimeoutD},
	}
	for _, p := range pairs {
		if p.raw == "" {
			continue
		}
		d, err := time.ParseDuration(p.raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", p.name, err)
		}
		*p.dst = d
	}
	return nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if c.Server.MaxBodySize <= 0 {
		return fmt.Errorf("server.max_body_size must be > 0")
	}
	if c.Notifier.Enabled {
		if len(c.Notifier.Brokers) == 0 {
			return fmt.Errorf("notifier.brokers cannot be empty when the notifier is enabled")
		}
		if c.Notifier.Topic == "" {
			return fmt.Errorf("notifier.topic cannot be empty when the notifier is enabled")
		}
	}
	switch c.Cooldown.Backend {
	case "memory":
	case "redis":
		if c.Cooldown.RedisAddr == "" {
			return fmt.Errorf("cooldown.redis_addr cannot be empty for the redis backend")
		}
	default:
		return fmt.Errorf("cooldown.backend must be memory or redis, got %q", c.Cooldown.Backend)
	}
	return nil
}
