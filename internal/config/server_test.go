package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-test/deep"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "REDIS_HOST", "REDIS_PASSWORD", "RMQ_HOST",
		"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET", "MINIO_USE_SSL",
		"DOWNLOAD_DIR", "LOG_LEVEL", "FAILURE_RATE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadServerConfig_MissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := deep.Equal(cfg, DefaultServerConfig()); diff != nil {
		t.Errorf("expected defaults: %v", diff)
	}
}

func TestLoadServerConfig_File(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
server:
  port: "9090"
sessions:
  max: 5
  idle_ttl: 1m
pipeline:
  failure_rate: 0.5
  min_delay: 10ms
  max_delay: 20ms
redis:
  host: localhost:6379
`)

	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr() != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.Addr())
	}
	if cfg.Sessions.Max != 5 || cfg.Sessions.IdleTTL != time.Minute {
		t.Errorf("unexpected sessions %+v", cfg.Sessions)
	}
	if cfg.Pipeline.FailureRate != 0.5 || cfg.Pipeline.MinDelay != 10*time.Millisecond {
		t.Errorf("unexpected pipeline %+v", cfg.Pipeline)
	}
	if cfg.Redis.Host != "localhost:6379" {
		t.Errorf("unexpected redis host %s", cfg.Redis.Host)
	}
	// untouched keys keep their defaults
	if cfg.RabbitMQ.Queue != "notify.q" {
		t.Errorf("expected default queue, got %s", cfg.RabbitMQ.Queue)
	}
}

func TestLoadServerConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("FAILURE_RATE", "0")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadServerConfig(writeConfig(t, "server:\n  port: \"9090\"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "7000" {
		t.Errorf("expected env port 7000, got %s", cfg.Server.Port)
	}
	if !cfg.Minio.UseSSL || cfg.Pipeline.FailureRate != 0 || cfg.LogLevel != "debug" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad yaml", content: "server: [unterminated"},
		{name: "failure rate out of range", content: "pipeline:\n  failure_rate: 2\n"},
		{name: "inverted delays", content: "pipeline:\n  min_delay: 5s\n  max_delay: 1s\n"},
		{name: "no sessions", content: "sessions:\n  max: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := LoadServerConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
