// SPDX-License-Identifier: MIT

// Package health provides liveness and readiness probes for roadyaml.
// It supports Docker HEALTHCHECK and Kubernetes probes with per-component
// status detail.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BlackRoad-OS/roadyaml/internal/log"
)

// Status represents the overall health or readiness status.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult is the outcome of a single component check.
type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status    Status                 `json:"status"`
	Version   string                 `json:"version,omitempty"`
	Uptime    int64                  `json:"uptime"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// ReadinessResponse is the readiness probe body.
type ReadinessResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// Checker is a named component health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

// CheckerFunc adapts a plain function to the Checker interface.
type CheckerFunc struct {
	name string
	fn   func(context.Context) CheckResult
}

// NewCheckerFunc wraps fn as a Checker with the given name.
func NewCheckerFunc(name string, fn func(context.Context) CheckResult) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

func (c *CheckerFunc) Name() string { return c.name }

func (c *CheckerFunc) Check(ctx context.Context) CheckResult { return c.fn(ctx) }

// Manager aggregates component checkers into liveness and readiness reports.
type Manager struct {
	version   string
	startTime time.Time
	checkers  []Checker
}

// NewManager creates a health check manager stamped with the build version.
func NewManager(version string) *Manager {
	return &Manager{
		version:   version,
		startTime: time.Now(),
		checkers:  make([]Checker, 0),
	}
}

// RegisterChecker adds a component checker to the manager.
func (m *Manager) RegisterChecker(checker Checker) {
	m.checkers = append(m.checkers, checker)
}

// Health performs a liveness check. The process being able to answer is
// what matters, so the status is healthy unless verbose component checks
// say otherwise.
func (m *Manager) Health(ctx context.Context, verbose bool) HealthResponse {
	resp := HealthResponse{
		Status:    StatusHealthy,
		Version:   m.version,
		Uptime:    int64(time.Since(m.startTime).Seconds()),
		Timestamp: time.Now(),
	}

	if verbose && len(m.checkers) > 0 {
		resp.Checks = make(map[string]CheckResult)
		resp.Status = m.runChecks(ctx, resp.Checks)
	}

	return resp
}

// Ready performs a readiness check. Any unhealthy component makes the
// service not ready.
func (m *Manager) Ready(ctx context.Context) ReadinessResponse {
	resp := ReadinessResponse{
		Ready:     true,
		Status:    StatusHealthy,
		Timestamp: time.Now(),
	}

	if len(m.checkers) == 0 {
		return resp
	}

	resp.Checks = make(map[string]CheckResult)
	resp.Status = m.runChecks(ctx, resp.Checks)
	if resp.Status == StatusUnhealthy {
		resp.Ready = false
	}

	return resp
}

func (m *Manager) runChecks(ctx context.Context, out map[string]CheckResult) Status {
	status := StatusHealthy
	for _, checker := range m.checkers {
		result := checker.Check(ctx)
		out[checker.Name()] = result

		switch result.Status {
		case StatusUnhealthy:
			status = StatusUnhealthy
		case StatusDegraded:
			if status != StatusUnhealthy {
				status = StatusDegraded
			}
		}
	}
	return status
}

// ServeHealth handles liveness probe requests. It always answers 200; the
// body carries component detail when ?verbose=true.
func (m *Manager) ServeHealth(w http.ResponseWriter, r *http.Request) {
	logger := log.WithComponentFromContext(r.Context(), "health")
	verbose := r.URL.Query().Get("verbose") == "true"

	resp := m.Health(r.Context(), verbose)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error().Err(err).Str(log.FieldEvent, "health.encode_error").Msg("failed to encode health response")
	}
}

// ServeReady handles readiness probe requests, answering 503 while any
// component is unhealthy.
func (m *Manager) ServeReady(w http.ResponseWriter, r *http.Request) {
	logger := log.WithComponentFromContext(r.Context(), "readiness")

	resp := m.Ready(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if resp.Ready {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error().Err(err).Str(log.FieldEvent, "readiness.encode_error").Msg("failed to encode readiness response")
	}

	logger.Debug().
		Str(log.FieldEvent, "readiness.checked").
		Str("status", string(resp.Status)).
		Bool("ready", resp.Ready).
		Msg("readiness check performed")
}

// SchemaSource reports the state of a schema registry.
type SchemaSource interface {
	// Ready returns nil once the registry finished its initial load.
	Ready() error
	// Count reports how many schemas are currently available.
	Count() int
}

// RegistryChecker reports readiness of the schema registry.
type RegistryChecker struct {
	src SchemaSource
}

// NewRegistryChecker creates a checker for the schema registry.
func NewRegistryChecker(src SchemaSource) *RegistryChecker {
	return &RegistryChecker{src: src}
}

func (c *RegistryChecker) Name() string { return "schema_registry" }

func (c *RegistryChecker) Check(_ context.Context) CheckResult {
	if c.src == nil {
		return CheckResult{
			Status:  StatusHealthy,
			Message: "not configured (optional)",
		}
	}
	if err := c.src.Ready(); err != nil {
		return CheckResult{
			Status: StatusUnhealthy,
			Error:  err.Error(),
		}
	}
	return CheckResult{
		Status:  StatusHealthy,
		Message: fmt.Sprintf("%d schemas loaded", c.src.Count()),
	}
}
