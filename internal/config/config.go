// SPDX-License-Identifier: MIT

// Package config assembles the roadyaml runtime configuration from
// environment variables and an optional YAML file. Precedence is
// ENV > file > defaults; a file value only applies when the corresponding
// environment variable is unset.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env/v6"
	"github.com/rs/zerolog"
)

// Environment variable names. The first three are the service's public
// contract; the ROADYAML_ block tunes internals.
const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"
	EnvNodeEnv  = "NODE_ENV"

	EnvSchemaDir       = "ROADYAML_SCHEMA_DIR"
	EnvMaxBodyBytes    = "ROADYAML_MAX_BODY_BYTES"
	EnvRateLimitRPM    = "ROADYAML_RATE_LIMIT_RPM"
	EnvAllowedOrigins  = "ROADYAML_ALLOWED_ORIGINS"
	EnvReadTimeout     = "ROADYAML_SERVER_READ_TIMEOUT"
	EnvReadHeader      = "ROADYAML_SERVER_READ_HEADER_TIMEOUT"
	EnvWriteTimeout    = "ROADYAML_SERVER_WRITE_TIMEOUT"
	EnvIdleTimeout     = "ROADYAML_SERVER_IDLE_TIMEOUT"
	EnvShutdownTimeout = "ROADYAML_SERVER_SHUTDOWN_TIMEOUT"
	EnvTraceEnabled    = "ROADYAML_TRACE_ENABLED"
	EnvTraceExporter   = "ROADYAML_TRACE_EXPORTER"
	EnvTraceEndpoint   = "ROADYAML_TRACE_ENDPOINT"
	EnvTraceSampleRate = "ROADYAML_TRACE_SAMPLE_RATE"
)

// Config is the full runtime configuration.
type Config struct {
	Port     int    `env:"PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	NodeEnv  string `env:"NODE_ENV" envDefault:"development"`

	SchemaDir      string   `env:"ROADYAML_SCHEMA_DIR"`
	MaxBodyBytes   int64    `env:"ROADYAML_MAX_BODY_BYTES" envDefault:"1048576"`
	RateLimitRPM   int      `env:"ROADYAML_RATE_LIMIT_RPM" envDefault:"600"`
	AllowedOrigins []string `env:"ROADYAML_ALLOWED_ORIGINS" envSeparator:","`

	Server ServerConfig
	Trace  TraceConfig
}

// ServerConfig carries http.Server timeouts.
type ServerConfig struct {
	ReadTimeout       Duration `env:"ROADYAML_SERVER_READ_TIMEOUT" envDefault:"15s"`
	ReadHeaderTimeout Duration `env:"ROADYAML_SERVER_READ_HEADER_TIMEOUT" envDefault:"5s"`
	WriteTimeout      Duration `env:"ROADYAML_SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       Duration `env:"ROADYAML_SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   Duration `env:"ROADYAML_SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// TraceConfig controls the OTLP trace exporter.
type TraceConfig struct {
	Enabled    bool    `env:"ROADYAML_TRACE_ENABLED" envDefault:"false"`
	Exporter   string  `env:"ROADYAML_TRACE_EXPORTER" envDefault:"grpc"`
	Endpoint   string  `env:"ROADYAML_TRACE_ENDPOINT" envDefault:"localhost:4317"`
	SampleRate float64 `env:"ROADYAML_TRACE_SAMPLE_RATE" envDefault:"0.1"`
}

// FromEnv builds a Config from the process environment plus defaults.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Load builds the effective configuration: environment and defaults first,
// then the optional config file for anything the environment left unset,
// then validation.
func Load(path string) (Config, error) {
	cfg, err := FromEnv()
	if err != nil {
		return cfg, err
	}
	if path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			return cfg, err
		}
		if err := applyFile(&cfg, fileCfg); err != nil {
			return cfg, fmt.Errorf("apply %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Listen returns the address the API server binds.
func (c Config) Listen() string {
	return ":" + strconv.Itoa(c.Port)
}

// Validate rejects configurations the daemon cannot run with. Unknown
// NODE_ENV values are allowed (the tag is free-form by contract); callers
// that care use KnownNodeEnv to warn.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%s: %d out of range 1-65535", EnvPort, c.Port)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %q is not a log level", EnvLogLevel, c.LogLevel)
	}
	if c.MaxBodyBytes < 1 {
		return fmt.Errorf("%s: must be positive, got %d", EnvMaxBodyBytes, c.MaxBodyBytes)
	}
	if c.RateLimitRPM < 0 {
		return fmt.Errorf("%s: must not be negative, got %d", EnvRateLimitRPM, c.RateLimitRPM)
	}
	for name, d := range map[string]Duration{
		EnvReadTimeout:     c.Server.ReadTimeout,
		EnvReadHeader:      c.Server.ReadHeaderTimeout,
		EnvWriteTimeout:    c.Server.WriteTimeout,
		EnvIdleTimeout:     c.Server.IdleTimeout,
		EnvShutdownTimeout: c.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s: must be positive, got %s", name, d)
		}
	}
	switch c.Trace.Exporter {
	case "grpc", "http":
	default:
		return fmt.Errorf("%s: %q is not one of grpc, http", EnvTraceExporter, c.Trace.Exporter)
	}
	if c.Trace.SampleRate < 0 || c.Trace.SampleRate > 1 {
		return fmt.Errorf("%s: %v out of range 0-1", EnvTraceSampleRate, c.Trace.SampleRate)
	}
	if c.SchemaDir != "" {
		info, err := os.Stat(c.SchemaDir)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSchemaDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s: %s is not a directory", EnvSchemaDir, c.SchemaDir)
		}
	}
	return nil
}

// KnownNodeEnv reports whether the deployment tag is one the fleet
// conventionally uses.
func KnownNodeEnv(s string) bool {
	switch s {
	case "development", "test", "staging", "production":
		return true
	}
	return false
}
