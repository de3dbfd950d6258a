// SPDX-License-Identifier: MIT

// roadyamld is the roadyaml HTTP service.
//
// Usage:
//
//	roadyamld [-config config.yaml]
//	roadyamld config validate [-config config.yaml]
//	roadyamld config dump [-config config.yaml] [-format yaml|json]
//
// Configuration precedence is ENV > config file > defaults.
//
// Exit codes:
//   - 0: Clean shutdown
//   - 1: Runtime failure
//   - 2: Configuration or startup check failure
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BlackRoad-OS/roadyaml/internal/config"
	"github.com/BlackRoad-OS/roadyaml/internal/daemon"
	"github.com/BlackRoad-OS/roadyaml/internal/health"
	"github.com/BlackRoad-OS/roadyaml/internal/log"
	"github.com/BlackRoad-OS/roadyaml/internal/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "config" {
		os.Exit(runConfigCLI(os.Args[2:]))
	}
	os.Exit(run())
}

func run() int {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The logger is configured exactly once, so wait for the effective
	// configuration before the first log call.
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Configure(log.Config{Service: "roadyaml", Version: version.Version})
		logger := log.WithComponent("daemon")
		logger.Error().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", *configPath).
			Msg("failed to load configuration")
		return 2
	}

	log.Configure(log.Config{
		Level:       cfg.LogLevel,
		Service:     "roadyaml",
		Version:     version.Version,
		Environment: cfg.NodeEnv,
	})
	logger := log.WithComponent("daemon")

	if *configPath != "" {
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "file").
			Str("path", *configPath).
			Msg("loaded configuration from file")
	} else {
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "env+defaults").
			Msg("loaded configuration from environment and defaults")
	}

	if err := health.PerformStartupChecks(ctx, cfg); err != nil {
		logger.Error().
			Err(err).
			Str("event", "startup.check_failed").
			Msg("startup checks failed, verify configuration and permissions")
		return 2
	}

	logger.Info().
		Str("event", "startup").
		Str("version", version.Version).
		Str("commit", version.Commit).
		Str("build_date", version.Date).
		Str("addr", cfg.Listen()).
		Str("schema_dir", cfg.SchemaDir).
		Msg("starting roadyaml")

	app, err := daemon.Bootstrap(ctx, cfg)
	if err != nil {
		logger.Error().
			Err(err).
			Str("event", "bootstrap.failed").
			Msg("failed to assemble runtime")
		return 1
	}

	if err := app.Run(ctx); err != nil {
		logger.Error().
			Err(err).
			Str("event", "daemon.failed").
			Msg("daemon failed")
		return 1
	}

	logger.Info().Msg("server exiting")
	return 0
}
