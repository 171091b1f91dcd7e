package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:           "8000",
		Env:            "development",
		DatabaseURL:    "postgres://localhost:5432/stembank",
		JWTSecret:      "secret",
		RequestTimeout: 30 * time.Second,
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("pool sizes = %d/%d, want 20/5", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_URL", "postgres://db:5432/app")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://db:5432/app" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v, want two origins", cfg.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }},
		{"partial twilio credentials", func(c *Config) { c.TwilioAccountSID = "AC123" }},
		{"production without twilio", func(c *Config) { c.Env = "production" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_FullTwilio(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.TwilioAccountSID = "AC123"
	cfg.TwilioAuthToken = "tok"
	cfg.TwilioPhoneNumber = "+15550001111"

	if err := cfg.Validate(); err != nil {
		t.Errorf("full twilio config rejected: %v", err)
	}
	if !cfg.MessagingEnabled() {
		t.Error("MessagingEnabled should be true")
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction should be true")
	}
}

func TestMessagingEnabled(t *testing.T) {
	cfg := validConfig()
	if cfg.MessagingEnabled() {
		t.Error("no credentials set, messaging should be disabled")
	}
	cfg.TwilioAuthToken = "tok"
	if !cfg.MessagingEnabled() {
		t.Error("any credential set should report messaging enabled")
	}
}
