// SPDX-License-Identifier: MIT

// Package daemon bootstraps the roadyaml service and manages its lifecycle.
package daemon

import (
	"context"
	"fmt"

	"github.com/BlackRoad-OS/roadyaml/internal/api"
	"github.com/BlackRoad-OS/roadyaml/internal/config"
	"github.com/BlackRoad-OS/roadyaml/internal/health"
	"github.com/BlackRoad-OS/roadyaml/internal/log"
	"github.com/BlackRoad-OS/roadyaml/internal/schema"
	"github.com/BlackRoad-OS/roadyaml/internal/telemetry"
	"github.com/BlackRoad-OS/roadyaml/internal/version"
)

// Bootstrap assembles the full runtime: telemetry, schema registry, health
// manager, API server and lifecycle manager. The returned App is ready to
// Run.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, error) {
	logger := log.WithComponent("daemon")

	// Tracing failures are not fatal: the service degrades to untraced.
	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Trace.Enabled,
		ServiceName:    "roadyaml",
		ServiceVersion: version.Version,
		Environment:    cfg.NodeEnv,
		ExporterType:   cfg.Trace.Exporter,
		Endpoint:       cfg.Trace.Endpoint,
		SamplingRate:   cfg.Trace.SampleRate,
	})
	if err != nil {
		logger.Warn().
			Err(err).
			Str("event", "telemetry.init_failed").
			Msg("telemetry initialization failed, continuing without tracing")
		provider = nil
	}

	var registry *schema.Registry
	if cfg.SchemaDir != "" {
		registry = schema.NewRegistry(cfg.SchemaDir)
		if err := registry.Load(ctx); err != nil {
			return nil, fmt.Errorf("load schemas from %s: %w", cfg.SchemaDir, err)
		}
	}

	healthManager := health.NewManager(version.Version)
	var registrySource health.SchemaSource
	if registry != nil {
		registrySource = registry
	}
	healthManager.RegisterChecker(health.NewRegistryChecker(registrySource))

	apiServer := api.New(cfg, registry, healthManager)

	manager, err := NewManager(cfg, Deps{
		Logger:     logger,
		APIHandler: apiServer.Handler(),
	})
	if err != nil {
		return nil, err
	}

	if registry != nil {
		manager.RegisterShutdownHook("schema_registry", func(context.Context) error {
			registry.Stop()
			return nil
		})
	}
	if provider != nil {
		manager.RegisterShutdownHook("telemetry", provider.Shutdown)
	}

	return NewApp(logger, manager, registry), nil
}
