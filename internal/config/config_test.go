// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

package config

import (
	"testing"
	"time"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration should validate: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Uploads.MaxBytes != 6<<20 {
		t.Errorf("Uploads.MaxBytes = %d, want 6 MiB", cfg.Uploads.MaxBytes)
	}
	if cfg.Security.RateLimitMax != 60 || cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("rate limit defaults = %d/%s, want 60/1m",
			cfg.Security.RateLimitMax, cfg.Security.RateLimitWindow)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LLAQTA_DB_PATH", "/tmp/test.duckdb")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("ADMIN_USERS", "ana:secret , luis:clave")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/tmp/test.duckdb" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Security.RateLimitMax != 5 {
		t.Errorf("RateLimitMax = %d, want 5", cfg.Security.RateLimitMax)
	}

	creds := cfg.Security.AdminCredentials()
	if creds["ana"] != "secret" || creds["luis"] != "clave" {
		t.Errorf("AdminCredentials = %v", creds)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
		{"empty upload dir", func(c *Config) { c.Uploads.Dir = "" }},
		{"empty document dir", func(c *Config) { c.Documents.Dir = "" }},
		{"non-positive upload cap", func(c *Config) { c.Uploads.MaxBytes = 0 }},
		{"non-positive rate max", func(c *Config) { c.Security.RateLimitMax = 0 }},
		{"non-positive rate window", func(c *Config) { c.Security.RateLimitWindow = 0 }},
		{"malformed admin pair", func(c *Config) { c.Security.AdminUsers = []string{"nopassword"} }},
		{"non-positive list limit", func(c *Config) { c.API.DefaultListLimit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate should fail")
			}
		})
	}
}

func TestAdminCredentialsSplitsOnFirstColon(t *testing.T) {
	sec := SecurityConfig{AdminUsers: []string{"user:pa:ss", "malformed"}}
	creds := sec.AdminCredentials()
	if creds["user"] != "pa:ss" {
		t.Errorf("password with colon mangled: %q", creds["user"])
	}
	if _, ok := creds["malformed"]; ok {
		t.Error("malformed entry should be skipped")
	}
}
