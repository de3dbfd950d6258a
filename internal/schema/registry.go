// SPDX-License-Identifier: MIT

// Package schema manages the set of named schemas served by roadyaml.
// Schemas are loaded from a directory, kept in memory, and hot-reloaded
// when files change.
package schema

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	roadyaml "github.com/BlackRoad-OS/roadyaml"
	"github.com/BlackRoad-OS/roadyaml/internal/log"
	"github.com/BlackRoad-OS/roadyaml/internal/metrics"
)

// ErrNotFound is returned when a named schema is not in the registry.
var ErrNotFound = errors.New("schema not found")

// reloads are debounced, then throttled so event storms cannot thrash the
// registry
const (
	debounceDelay  = 500 * time.Millisecond
	reloadInterval = 2 * time.Second
)

// Registry holds compiled schemas loaded from a directory. All reads are
// served from an in-memory map that is swapped atomically on reload, so a
// failed reload never disturbs the previously loaded set.
type Registry struct {
	dir    string
	logger zerolog.Logger

	mu      sync.RWMutex
	schemas map[string]*roadyaml.Schema
	loaded  bool
	loadErr error

	watcher     *fsnotify.Watcher
	reloadLimit *rate.Limiter
}

// NewRegistry creates a registry for the given schema directory.
func NewRegistry(dir string) *Registry {
	return &Registry{
		dir:         dir,
		logger:      log.WithComponent("schema"),
		schemas:     make(map[string]*roadyaml.Schema),
		reloadLimit: rate.NewLimiter(rate.Every(reloadInterval), 1),
	}
}

// Dir returns the directory the registry loads from.
func (r *Registry) Dir() string { return r.dir }

// Load scans the schema directory and compiles every schema file in it.
// Files that fail to compile are skipped with a warning; a directory that
// cannot be read marks the registry not ready. The schema name is the file
// name without extension, so deploy.json answers lookups for "deploy".
func (r *Registry) Load(_ context.Context) error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		r.mu.Lock()
		r.loadErr = fmt.Errorf("read schema directory: %w", err)
		r.mu.Unlock()

		metrics.IncSchemaReload("failure")
		r.logger.Error().
			Err(err).
			Str(log.FieldEvent, "schema.load_failed").
			Str(log.FieldDir, r.dir).
			Msg("failed to read schema directory")
		return r.loadErr
	}

	next := make(map[string]*roadyaml.Schema)
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() || !isSchemaFile(entry.Name()) {
			continue
		}

		path := filepath.Join(r.dir, entry.Name())
		raw, err := os.ReadFile(path) // #nosec G304 -- path is rooted in the configured schema directory
		if err != nil {
			skipped++
			r.logger.Warn().
				Err(err).
				Str(log.FieldEvent, "schema.read_failed").
				Str(log.FieldPath, path).
				Msg("skipping unreadable schema file")
			continue
		}

		name := schemaName(entry.Name())
		compiled, err := roadyaml.CompileSchema(name, raw)
		if err != nil {
			skipped++
			r.logger.Warn().
				Err(err).
				Str(log.FieldEvent, "schema.compile_failed").
				Str(log.FieldPath, path).
				Msg("skipping invalid schema file")
			continue
		}

		if _, dup := next[name]; dup {
			r.logger.Warn().
				Str(log.FieldEvent, "schema.duplicate_name").
				Str(log.FieldSchema, name).
				Str(log.FieldPath, path).
				Msg("duplicate schema name, later file wins")
		}
		next[name] = compiled
	}

	r.mu.Lock()
	r.schemas = next
	r.loaded = true
	r.loadErr = nil
	r.mu.Unlock()

	metrics.RecordSchemasLoaded(len(next))
	metrics.IncSchemaReload("success")
	r.logger.Info().
		Str(log.FieldEvent, "schema.loaded").
		Int(log.FieldSchemas, len(next)).
		Int("skipped", skipped).
		Str(log.FieldDir, r.dir).
		Msg("schema registry loaded")

	return nil
}

// Get returns the named schema.
func (r *Registry) Get(name string) (*roadyaml.Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s, nil
}

// Names returns the sorted names of all loaded schemas.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count reports how many schemas are loaded.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schemas)
}

// Ready reports whether the registry finished its initial load. A non-nil
// error carries the reason it is not ready.
func (r *Registry) Ready() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.loadErr != nil {
		return r.loadErr
	}
	if !r.loaded {
		return errors.New("schema registry not loaded yet")
	}
	return nil
}

// Validate checks a document against the named schema and records the
// outcome.
func (r *Registry) Validate(name string, doc roadyaml.Document) (*roadyaml.ValidationResult, error) {
	s, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	result, err := s.Validate(doc)
	switch {
	case err != nil:
		metrics.RecordSchemaValidation(name, "error")
		return nil, err
	case result.Valid:
		metrics.RecordSchemaValidation(name, "valid")
	default:
		metrics.RecordSchemaValidation(name, "invalid")
	}
	return result, nil
}

// Watch starts watching the schema directory and reloads the registry when
// schema files change. The watcher stops when ctx is canceled.
func (r *Registry) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(r.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch schema directory: %w", err)
	}

	r.watcher = watcher
	r.logger.Info().
		Str(log.FieldEvent, "schema.watcher_started").
		Str(log.FieldDir, r.dir).
		Msg("watching schema directory for changes")

	go r.watchLoop(ctx)
	return nil
}

func (r *Registry) watchLoop(ctx context.Context) {
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			_ = r.watcher.Close()
			r.logger.Info().Str(log.FieldEvent, "schema.watcher_stopped").Msg("schema watcher stopped")
			return

		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !isSchemaFile(filepath.Base(event.Name)) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				r.logger.Debug().
					Str(log.FieldEvent, "schema.file_changed").
					Str("op", event.Op.String()).
					Str(log.FieldPath, event.Name).
					Msg("schema file changed")

				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, func() {
					r.reload(ctx)
				})
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Error().
				Err(err).
				Str(log.FieldEvent, "schema.watcher_error").
				Msg("schema watcher error")
		}
	}
}

func (r *Registry) reload(ctx context.Context) {
	if err := r.reloadLimit.Wait(ctx); err != nil {
		return
	}
	if err := r.Load(ctx); err != nil {
		r.logger.Error().
			Err(err).
			Str(log.FieldEvent, "schema.auto_reload_failed").
			Msg("automatic schema reload failed")
	}
}

// Stop closes the directory watcher (if running).
func (r *Registry) Stop() {
	if r.watcher != nil {
		_ = r.watcher.Close()
	}
}

func isSchemaFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return !strings.HasPrefix(name, ".")
	default:
		return false
	}
}

func schemaName(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file))
}
