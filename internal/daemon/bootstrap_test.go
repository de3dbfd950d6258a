// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BlackRoad-OS/roadyaml/internal/config"
)

func bootstrapConfig() config.Config {
	return config.Config{
		Port:         3000,
		LogLevel:     "info",
		NodeEnv:      "test",
		MaxBodyBytes: 1 << 20,
		Server: config.ServerConfig{
			ReadTimeout:       config.Duration(1 * time.Second),
			ReadHeaderTimeout: config.Duration(500 * time.Millisecond),
			WriteTimeout:      config.Duration(1 * time.Second),
			IdleTimeout:       config.Duration(10 * time.Second),
			ShutdownTimeout:   config.Duration(2 * time.Second),
		},
		Trace: config.TraceConfig{Enabled: false},
	}
}

func TestBootstrap_WithoutSchemaDir(t *testing.T) {
	app, err := Bootstrap(context.Background(), bootstrapConfig())
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if app == nil {
		t.Fatal("Bootstrap() returned nil app")
	}
	if app.registry != nil {
		t.Error("expected no registry without a schema directory")
	}
	if app.manager == nil {
		t.Error("expected a manager")
	}
}

func TestBootstrap_LoadsSchemas(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "deploy.json"), []byte(appTestSchema), 0o600); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	cfg := bootstrapConfig()
	cfg.SchemaDir = dir

	app, err := Bootstrap(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if app.registry == nil {
		t.Fatal("expected a registry")
	}
	if got := app.registry.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
}

func TestBootstrap_FailsOnUnreadableSchemaDir(t *testing.T) {
	cfg := bootstrapConfig()
	cfg.SchemaDir = filepath.Join(t.TempDir(), "missing")

	_, err := Bootstrap(context.Background(), cfg)
	if err == nil {
		t.Fatal("Bootstrap() expected error for missing schema directory, got nil")
	}
	if !contains(err.Error(), "load schemas") {
		t.Errorf("Bootstrap() error = %v, want error mentioning schema load", err)
	}
}
