// SPDX-License-Identifier: MIT

// Package helpers provides common utilities for integration tests.
package helpers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/BlackRoad-OS/roadyaml/internal/api"
	"github.com/BlackRoad-OS/roadyaml/internal/config"
	"github.com/BlackRoad-OS/roadyaml/internal/health"
	"github.com/BlackRoad-OS/roadyaml/internal/schema"
	"github.com/BlackRoad-OS/roadyaml/internal/version"
)

// TestServerOptions configures the test server setup.
type TestServerOptions struct {
	SchemaDir    string
	MaxBodyBytes int64
	RateLimitRPM int
}

// TestServer wraps a test HTTP server with its configuration.
type TestServer struct {
	Server   *httptest.Server
	Config   config.Config
	Registry *schema.Registry
}

// Close shuts the test server down.
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
}

// NewTestServer boots the full API handler on an httptest server. When
// opts.SchemaDir is set the schema registry is loaded synchronously before
// the server starts.
func NewTestServer(t *testing.T, opts TestServerOptions) *TestServer {
	t.Helper()

	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = 1 << 20
	}

	cfg := config.Config{
		Port:         3000,
		LogLevel:     "error",
		NodeEnv:      "test",
		SchemaDir:    opts.SchemaDir,
		MaxBodyBytes: opts.MaxBodyBytes,
		RateLimitRPM: opts.RateLimitRPM,
	}

	var registry *schema.Registry
	if opts.SchemaDir != "" {
		registry = schema.NewRegistry(opts.SchemaDir)
		if err := registry.Load(context.Background()); err != nil {
			t.Fatalf("load schemas: %v", err)
		}
	}

	manager := health.NewManager(version.Version)
	var src health.SchemaSource
	if registry != nil {
		src = registry
	}
	manager.RegisterChecker(health.NewRegistryChecker(src))

	server := api.New(cfg, registry, manager)

	return &TestServer{
		Server:   httptest.NewServer(server.Handler()),
		Config:   cfg,
		Registry: registry,
	}
}
