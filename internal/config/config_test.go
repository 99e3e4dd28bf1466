package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTP.Port != defaultPort {
		t.Fatalf("expected port %d, got %d", defaultPort, cfg.HTTP.Port)
	}
	if cfg.HTTP.ShutdownTimeout != defaultShutdownTimeout {
		t.Fatalf("expected shutdown timeout %s, got %s", defaultShutdownTimeout, cfg.HTTP.ShutdownTimeout)
	}
	if cfg.Session.KeyPrefix != defaultSessionPrefix {
		t.Fatalf("expected key prefix %q, got %q", defaultSessionPrefix, cfg.Session.KeyPrefix)
	}
	if cfg.Simulation.Latency != defaultLatency {
		t.Fatalf("expected latency %s, got %s", defaultLatency, cfg.Simulation.Latency)
	}
	if !cfg.Session.UsesDefaultSecret() {
		t.Fatal("expected the development secret by default")
	}
}

func TestSessionSecretOverride(t *testing.T) {
	t.Setenv("SESSION_SECRET", "rotated-in-prod")

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Session.Secret != "rotated-in-prod" || cfg.Session.UsesDefaultSecret() {
		t.Fatalf("expected the configured secret, got %q", cfg.Session.Secret)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("SERVER_METRICS_ENABLED", "true")
	t.Setenv("SIMULATED_LATENCY", "0s")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeout != 3*time.Second {
		t.Fatalf("expected read timeout 3s, got %s", cfg.HTTP.ReadTimeout)
	}
	if !cfg.HTTP.MetricsEnabled {
		t.Fatal("expected metrics enabled")
	}
	if cfg.Simulation.Latency != 0 {
		t.Fatalf("expected zero latency, got %s", cfg.Simulation.Latency)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected redis addr %q", cfg.Redis.Addr)
	}
}

func TestLoadRejectsPortOutOfRange(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")
	if _, err := LoadFile(""); err == nil {
		t.Fatal("expected error for out of range port")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("http:\n  port: 7000\nlogging:\n  level: debug\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTP.Port != 7000 {
		t.Fatalf("expected port from file, got %d", cfg.HTTP.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env to override file, got %q", cfg.Logging.Level)
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := HTTPConfig{AllowedOriginsCSV: "http://a.test, ,http://b.test"}
	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[0] != "http://a.test" || origins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", origins)
	}
}
