// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"PORTAL_DB_PATH" envDefault:"./data/portal.db"`
	ServerHost string `env:"PORTAL_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"PORTAL_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"PORTAL_ENV" envDefault:"development"`
	LogLevel   string `env:"PORTAL_LOG_LEVEL" envDefault:"info"`

	// Session configuration
	SessionTTL time.Duration `env:"PORTAL_SESSION_TTL" envDefault:"720h"` // 30 days

	// SweepSchedule is the cron expression for the expired-session sweep.
	SweepSchedule string `env:"PORTAL_SWEEP_SCHEDULE" envDefault:"0 * * * *"` // hourly

	// Login throttling (per client IP)
	LoginRateLimit float64 `env:"PORTAL_LOGIN_RATE_LIMIT" envDefault:"0.5"` // 1 request per 2 seconds
	LoginBurst     int     `env:"PORTAL_LOGIN_BURST" envDefault:"5"`

	// Seeding configuration
	DoSeed bool `env:"PORTAL_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("PORTAL_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("PORTAL_SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.LoginRateLimit <= 0 {
		return nil, fmt.Errorf("PORTAL_LOGIN_RATE_LIMIT must be positive, got %v", cfg.LoginRateLimit)
	}
	if cfg.LoginBurst < 1 {
		return nil, fmt.Errorf("PORTAL_LOGIN_BURST must be at least 1, got %d", cfg.LoginBurst)
	}

	return cfg, nil
}
