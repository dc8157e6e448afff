// File: internal/config/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Environment configuration for the atomlog service binary.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/momentics/atomlog/drain"
)

// Config is the runtime configuration tree.
type Config struct {
	App         AppConfig
	Drain       DrainConfig
	Diagnostics DiagnosticsConfig
}

// AppConfig captures process-level settings.
type AppConfig struct {
	Env      string
	HTTPAddr string
}

// DrainConfig tunes the background drainer.
type DrainConfig struct {
	Interval   time.Duration
	MaxBacklog int
	Sinks      []string
}

// DiagnosticsConfig governs debug and metrics endpoints.
type DiagnosticsConfig struct {
	DebugEndpoints bool
	Metrics        bool
}

// Default returns the configuration used when no environment is set.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Env:      "production",
			HTTPAddr: ":9102",
		},
		Drain: DrainConfig{
			Interval:   time.Second,
			MaxBacklog: 4096,
			Sinks:      []string{drain.NameLog},
		},
		Diagnostics: DiagnosticsConfig{
			DebugEndpoints: true,
			Metrics:        true,
		},
	}
}

// Load reads from environment (optionally .env) and builds Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	def := Default()
	cfg := &Config{
		App: AppConfig{
			Env:      getenv("ATOMLOG_ENV", def.App.Env),
			HTTPAddr: getenv("ATOMLOG_HTTP_ADDR", def.App.HTTPAddr),
		},
		Drain: DrainConfig{
			Interval:   time.Duration(getInt("ATOMLOG_DRAIN_INTERVAL_MS", int(def.Drain.Interval/time.Millisecond))) * time.Millisecond,
			MaxBacklog: getInt("ATOMLOG_MAX_BACKLOG", def.Drain.MaxBacklog),
			Sinks:      splitAndTrim(getenv("ATOMLOG_SINKS", strings.Join(def.Drain.Sinks, ","))),
		},
		Diagnostics: DiagnosticsConfig{
			DebugEndpoints: getBool("ATOMLOG_DEBUG_ENDPOINTS", def.Diagnostics.DebugEndpoints),
			Metrics:        getBool("ATOMLOG_METRICS", def.Diagnostics.Metrics),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the drainer cannot run with.
func (c *Config) Validate() error {
	if c.Drain.Interval <= 0 {
		return fmt.Errorf("drain interval must be positive, got %s", c.Drain.Interval)
	}
	if c.Drain.MaxBacklog <= 0 {
		return fmt.Errorf("max backlog must be positive, got %d", c.Drain.MaxBacklog)
	}
	if len(c.Drain.Sinks) == 0 {
		return fmt.Errorf("at least one sink is required")
	}
	for _, s := range c.Drain.Sinks {
		if !drain.KnownSink(s) {
			return fmt.Errorf("unsupported sink %q", s)
		}
	}
	return nil
}

func getenv(key, def string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	return val
}

func getInt(key string, def int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return i
}

func getBool(key string, def bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return parsed
}

func splitAndTrim(val string) []string {
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trim := strings.ToLower(strings.TrimSpace(p))
		if trim != "" {
			out = append(out, trim)
		}
	}
	return out
}
