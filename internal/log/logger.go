// Package log provides structured logging for roadyaml built on zerolog.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level       string    // optional log level ("debug", "info", ...)
	Output      io.Writer // optional writer (defaults to os.Stdout)
	Service     string    // service name attached to every entry
	Version     string    // service version attached to every entry
	Environment string    // deployment tag; "development" switches to console output
}

var (
	once sync.Once
	base zerolog.Logger
)

// Configure initialises the global logger exactly once. Level falls back to
// the LOG_LEVEL environment variable and the environment tag to NODE_ENV, so
// early callers and tests get sane output without explicit wiring.
func Configure(cfg Config) {
	once.Do(func() {
		level := zerolog.InfoLevel
		if cfg.Level != "" {
			if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
				level = parsed
			}
		} else if env := os.Getenv("LOG_LEVEL"); env != "" {
			if parsed, err := zerolog.ParseLevel(env); err == nil {
				level = parsed
			}
		}
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = time.RFC3339

		writer := cfg.Output
		if writer == nil {
			writer = os.Stdout
		}

		environment := cfg.Environment
		if environment == "" {
			environment = os.Getenv("NODE_ENV")
		}
		if environment == "development" {
			writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
		}

		service := cfg.Service
		if service == "" {
			service = "roadyaml"
		}

		ctx := zerolog.New(writer).With().
			Timestamp().
			Str(FieldService, service)
		if cfg.Version != "" {
			ctx = ctx.Str(FieldVersion, cfg.Version)
		}
		if environment != "" {
			ctx = ctx.Str(FieldEnvironment, environment)
		}
		base = ctx.Logger()
	})
}

func logger() zerolog.Logger {
	Configure(Config{})
	return base
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	return logger()
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return logger().With().Str(FieldComponent, component).Logger()
}
