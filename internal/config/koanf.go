// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where the optional config file is searched, in
// priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/llaqtashield/config.yaml",
	"/etc/llaqtashield/config.yml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with every default applied. These are the
// values a bare `llaqtashield` invocation runs with.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    5000,
			Timeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      "data/llaqta.duckdb",
			MaxMemory: "512MB",
			Threads:   0, // 0 = runtime.NumCPU()
		},
		Uploads: UploadsConfig{
			Dir:          "data/evidencias",
			MaxBytes:     6 << 20, // 6 MiB
			PublicPrefix: "/static/evidencias/",
		},
		Documents: DocumentsConfig{
			Dir: "data/reportes_generados",
		},
		Security: SecurityConfig{
			RateLimitMax:    60,
			RateLimitWindow: 60 * time.Second,
			AdminUsers:      []string{},
			CORSOrigins:     []string{"*"},
		},
		Alerts: AlertsConfig{
			JitterDelta:     0.01,
			RateLimitMax:    300,
			RateLimitWindow: time.Minute,
		},
		API: APIConfig{
			DefaultListLimit: 200,
			AdminListLimit:   500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load assembles configuration from layered sources, highest priority last:
//
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables
//
// The result is validated before being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are config keys that arrive from the environment as
// comma-separated strings but unmarshal into slices.
var sliceConfigPaths = []string{
	"security.admin_users",
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for known slice keys.
// Values that came from the YAML file are already slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to config paths. The
// LLAQTA_* names preserve the deployment surface of earlier releases.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Legacy deployment surface
		"llaqta_db_path":      "database.path",
		"llaqta_upload_dir":   "uploads.dir",
		"llaqta_document_dir": "documents.dir",

		// Server
		"http_host":    "server.host",
		"http_port":    "server.port",
		"http_timeout": "server.timeout",
		"port":         "server.port",

		// Database
		"db_max_memory": "database.max_memory",
		"db_threads":    "database.threads",

		// Uploads
		"max_upload_bytes":     "uploads.max_bytes",
		"upload_public_prefix": "uploads.public_prefix",

		// Security
		"rate_limit_max":    "security.rate_limit_max",
		"rate_limit_window": "security.rate_limit_window",
		"admin_users":       "security.admin_users",
		"cors_origins":      "security.cors_origins",

		// Simulated alerts
		"alerts_jitter_delta":      "alerts.jitter_delta",
		"alerts_rate_limit_max":    "alerts.rate_limit_max",
		"alerts_rate_limit_window": "alerts.rate_limit_window",

		// API
		"api_default_list_limit": "api.default_list_limit",
		"api_admin_list_limit":   "api.admin_list_limit",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unknown variables are dropped rather than guessed at.
	return ""
}
