// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/BlackRoad-OS/roadyaml/internal/config"
	"github.com/BlackRoad-OS/roadyaml/internal/log"
	"github.com/rs/zerolog"
)

// PerformStartupChecks validates the runtime environment before the server
// starts accepting traffic. Configuration shape errors are caught earlier by
// config.Validate; this probes the things only the host can answer.
func PerformStartupChecks(_ context.Context, cfg config.Config) error {
	logger := log.WithComponent("startup-check")
	logger.Info().Msg("running pre-flight startup checks")

	if err := checkListenAddr(logger, cfg.Listen()); err != nil {
		return fmt.Errorf("listen address check failed: %w", err)
	}

	if cfg.SchemaDir != "" {
		if err := checkSchemaDir(logger, cfg.SchemaDir); err != nil {
			return fmt.Errorf("schema directory check failed: %w", err)
		}
	}

	if !config.KnownNodeEnv(cfg.NodeEnv) {
		logger.Warn().
			Str("node_env", cfg.NodeEnv).
			Msg("unrecognized NODE_ENV value; treating as custom environment")
	}

	logger.Info().Msg("all startup checks passed")
	return nil
}

func checkListenAddr(logger zerolog.Logger, addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 1 || portNum > 65535 {
		return fmt.Errorf("invalid listen port %q in %q", port, addr)
	}
	logger.Info().Str("addr", addr).Msg("listen address is valid")
	return nil
}

func checkSchemaDir(logger zerolog.Logger, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", path)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	// Readability matters more than the stat: the registry will scan it.
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("directory is not readable: %s: %w", path, err)
	}

	logger.Info().
		Str(log.FieldDir, path).
		Int("entries", len(entries)).
		Msg("schema directory is readable")
	return nil
}
