package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AppName != "samvad-api-relay" {
		t.Fatalf("unexpected app name %q", cfg.AppName)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
	if cfg.UpstreamsFile != "./configs/upstreams.yaml" {
		t.Fatalf("unexpected upstreams file %q", cfg.UpstreamsFile)
	}
	if cfg.ListenPort != 8080 {
		t.Fatalf("unexpected listen port %d", cfg.ListenPort)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Fatalf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LISTEN_PORT", "9090")
	t.Setenv("UPSTREAMS_FILE", "/etc/relay/upstreams.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
	if cfg.ListenPort != 9090 {
		t.Fatalf("unexpected listen port %d", cfg.ListenPort)
	}
	if cfg.UpstreamsFile != "/etc/relay/upstreams.yaml" {
		t.Fatalf("unexpected upstreams file %q", cfg.UpstreamsFile)
	}
}

func TestLoadRejectsInvalidListenPort(t *testing.T) {
	t.Setenv("LISTEN_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for out-of-range listen_port")
	}
}

func TestLoadRejectsInvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive shutdown_timeout_seconds")
	}
}
