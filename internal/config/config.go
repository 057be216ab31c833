// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

// Package config loads and validates application configuration from layered
// sources: built-in defaults, an optional YAML file, and environment
// variables (highest priority).
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Uploads   UploadsConfig   `koanf:"uploads"`
	Documents DocumentsConfig `koanf:"documents"`
	Security  SecurityConfig  `koanf:"security"`
	Alerts    AlertsConfig    `koanf:"alerts"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds the embedded store settings.
type DatabaseConfig struct {
	// Path is the location of the DuckDB database file.
	Path string `koanf:"path"`
	// MaxMemory caps the database engine's memory use (e.g. "512MB").
	MaxMemory string `koanf:"max_memory"`
	// Threads is the engine thread count; 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// UploadsConfig holds evidence-image storage settings.
type UploadsConfig struct {
	// Dir is the directory evidence images are written into.
	Dir string `koanf:"dir"`
	// MaxBytes caps the whole multipart request body. Oversized requests
	// are rejected at the transport layer before validation runs.
	MaxBytes int64 `koanf:"max_bytes"`
	// PublicPrefix is the URL prefix under which stored images are served.
	PublicPrefix string `koanf:"public_prefix"`
}

// DocumentsConfig holds generated-document settings.
type DocumentsConfig struct {
	// Dir is the directory generated report documents are written into.
	Dir string `koanf:"dir"`
}

// SecurityConfig holds rate limiting, CORS, and admin credential settings.
type SecurityConfig struct {
	// RateLimitMax is the number of requests allowed per client per window.
	RateLimitMax int `koanf:"rate_limit_max"`
	// RateLimitWindow is the trailing window duration.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	// AdminUsers is the fixed credential set guarding admin endpoints, as
	// "user:pass" pairs. Deliberately a weak exact-match scheme; see the
	// auth package for the swappable hardened alternative.
	AdminUsers []string `koanf:"admin_users"`
	// CORSOrigins lists allowed browser origins for the map UI.
	CORSOrigins []string `koanf:"cors_origins"`
}

// AlertsConfig tunes the simulated map alerts endpoint.
type AlertsConfig struct {
	// JitterDelta is the maximum coordinate offset applied to each
	// simulated alert (base ± delta).
	JitterDelta float64 `koanf:"jitter_delta"`
	// RateLimitMax / RateLimitWindow form an independent bucket for the
	// demo endpoint, separate from the submission limiter.
	RateLimitMax    int           `koanf:"rate_limit_max"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// APIConfig holds listing defaults.
type APIConfig struct {
	// DefaultListLimit applies when /api/reports omits ?limit=.
	DefaultListLimit int `koanf:"default_list_limit"`
	// AdminListLimit bounds the admin listing.
	AdminListLimit int `koanf:"admin_list_limit"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the assembled configuration for values that would make the
// service misbehave at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Uploads.Dir == "" {
		return fmt.Errorf("uploads.dir is required")
	}
	if c.Documents.Dir == "" {
		return fmt.Errorf("documents.dir is required")
	}
	if c.Uploads.MaxBytes <= 0 {
		return fmt.Errorf("uploads.max_bytes must be positive, got %d", c.Uploads.MaxBytes)
	}
	if c.Security.RateLimitMax <= 0 {
		return fmt.Errorf("security.rate_limit_max must be positive, got %d", c.Security.RateLimitMax)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
	}
	for _, pair := range c.Security.AdminUsers {
		if !strings.Contains(pair, ":") {
			return fmt.Errorf("security.admin_users entry %q is not user:pass", pair)
		}
	}
	if c.API.DefaultListLimit <= 0 {
		return fmt.Errorf("api.default_list_limit must be positive, got %d", c.API.DefaultListLimit)
	}
	if c.API.AdminListLimit <= 0 {
		return fmt.Errorf("api.admin_list_limit must be positive, got %d", c.API.AdminListLimit)
	}
	return nil
}

// AdminCredentials splits the configured user:pass pairs into a map.
// Call after Validate; malformed entries are skipped.
func (c *SecurityConfig) AdminCredentials() map[string]string {
	creds := make(map[string]string, len(c.AdminUsers))
	for _, pair := range c.AdminUsers {
		user, pass, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		creds[user] = pass
	}
	return creds
}
