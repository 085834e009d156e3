package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "DATABASE_URL", "EVENT_BUFFER",
		"SESSION_BUFFER", "PING_INTERVAL", "READ_TIMEOUT",
		"WRITE_TIMEOUT", "IDLE_TIMEOUT", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.EventBuffer != 256 {
		t.Errorf("EventBuffer = %d, want 256", cfg.EventBuffer)
	}
	if cfg.SessionBuffer != 64 {
		t.Errorf("SessionBuffer = %d, want 64", cfg.SessionBuffer)
	}
	if cfg.PingInterval != 30*time.Second {
		t.Errorf("PingInterval = %v, want 30s", cfg.PingInterval)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != 10*time.Second {
		t.Errorf("WriteTimeout = %v, want 10s", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Errorf("IdleTimeout = %v, want 60s", cfg.IdleTimeout)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/bids")
	t.Setenv("EVENT_BUFFER", "512")
	t.Setenv("SESSION_BUFFER", "128")
	t.Setenv("PING_INTERVAL", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.DatabaseURL != "postgres://localhost:5432/bids" {
		t.Errorf("DatabaseURL = %q, want postgres://localhost:5432/bids", cfg.DatabaseURL)
	}
	if cfg.EventBuffer != 512 {
		t.Errorf("EventBuffer = %d, want 512", cfg.EventBuffer)
	}
	if cfg.SessionBuffer != 128 {
		t.Errorf("SessionBuffer = %d, want 128", cfg.SessionBuffer)
	}
	if cfg.PingInterval != 10*time.Second {
		t.Errorf("PingInterval = %v, want 10s", cfg.PingInterval)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid PORT")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid LOG_LEVEL")
	}
}

func TestLoad_InvalidBuffers(t *testing.T) {
	for _, key := range []string{"EVENT_BUFFER", "SESSION_BUFFER"} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, "0")

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for zero %s", key)
			}
		})
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	keys := []string{
		"PING_INTERVAL", "READ_TIMEOUT", "WRITE_TIMEOUT",
		"IDLE_TIMEOUT", "SHUTDOWN_TIMEOUT",
	}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, "not-a-duration")

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for invalid %s", key)
			}
		})
	}
}
