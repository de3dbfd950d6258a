// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/BlackRoad-OS/roadyaml/internal/schema"
)

// App owns the long-lived runtime pieces around the Manager: the schema
// watcher and the SIGHUP reload wiring.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	registry     *schema.Registry
	reloadSignal os.Signal
}

// NewApp creates the runtime orchestrator. registry may be nil.
func NewApp(logger zerolog.Logger, manager Manager, registry *schema.Registry) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		registry:     registry,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts all background subsystems and blocks until ctx is canceled or
// a fatal error occurs.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, ctx := errgroup.WithContext(ctx)

	// The watcher is best-effort: startup must not fail when inotify is
	// unavailable.
	if a.registry != nil {
		if err := a.registry.Watch(ctx); err != nil {
			a.logger.Warn().
				Err(err).
				Str("event", "schema.watcher_start_failed").
				Msg("failed to start schema watcher")
		}
	}

	if a.registry != nil && a.reloadSignal != nil {
		g.Go(func() error {
			hupChan := make(chan os.Signal, 1)
			signal.Notify(hupChan, a.reloadSignal)
			defer signal.Stop(hupChan)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hupChan:
					a.logger.Info().
						Str("event", "schema.reload_signal").
						Str("signal", a.reloadSignal.String()).
						Msg("received reload signal, reloading schemas")

					if err := a.registry.Load(context.Background()); err != nil {
						a.logger.Warn().
							Err(err).
							Str("event", "schema.reload_failed").
							Msg("schema reload failed")
					}
				}
			}
		})
	}

	g.Go(func() error {
		err := a.manager.Start(ctx)
		if err != nil {
			_ = a.manager.Shutdown(context.Background())
		}
		return err
	})

	return g.Wait()
}
