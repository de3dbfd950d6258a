// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with pointer fields so presence in the file is
// distinguishable from the zero value.
type fileConfig struct {
	Port           *int      `yaml:"port"`
	LogLevel       *string   `yaml:"logLevel"`
	NodeEnv        *string   `yaml:"nodeEnv"`
	SchemaDir      *string   `yaml:"schemaDir"`
	MaxBodyBytes   *int64    `yaml:"maxBodyBytes"`
	RateLimitRPM   *int      `yaml:"rateLimitRPM"`
	AllowedOrigins *[]string `yaml:"allowedOrigins"`

	Server struct {
		ReadTimeout       *Duration `yaml:"readTimeout"`
		ReadHeaderTimeout *Duration `yaml:"readHeaderTimeout"`
		WriteTimeout      *Duration `yaml:"writeTimeout"`
		IdleTimeout       *Duration `yaml:"idleTimeout"`
		ShutdownTimeout   *Duration `yaml:"shutdownTimeout"`
	} `yaml:"server"`

	Trace struct {
		Enabled    *bool    `yaml:"enabled"`
		Exporter   *string  `yaml:"exporter"`
		Endpoint   *string  `yaml:"endpoint"`
		SampleRate *float64 `yaml:"sampleRate"`
	} `yaml:"trace"`
}

// readFile decodes a config file strictly: unknown keys are errors, so typos
// fail startup instead of being silently ignored.
func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return fileConfig{}, nil
		}
		return fc, fmt.Errorf("decode %s: %w", path, err)
	}
	return fc, nil
}

// applyFile copies file values into cfg for every field whose environment
// variable is unset. The environment always wins.
func applyFile(cfg *Config, fc fileConfig) error {
	setInt := func(envKey string, dst *int, src *int) {
		if src != nil && !envSet(envKey) {
			*dst = *src
		}
	}
	setInt64 := func(envKey string, dst *int64, src *int64) {
		if src != nil && !envSet(envKey) {
			*dst = *src
		}
	}
	setString := func(envKey string, dst *string, src *string) {
		if src != nil && !envSet(envKey) {
			*dst = *src
		}
	}
	setBool := func(envKey string, dst *bool, src *bool) {
		if src != nil && !envSet(envKey) {
			*dst = *src
		}
	}
	setFloat := func(envKey string, dst *float64, src *float64) {
		if src != nil && !envSet(envKey) {
			*dst = *src
		}
	}
	setDuration := func(envKey string, dst *Duration, src *Duration) {
		if src != nil && !envSet(envKey) {
			*dst = *src
		}
	}

	setInt(EnvPort, &cfg.Port, fc.Port)
	setString(EnvLogLevel, &cfg.LogLevel, fc.LogLevel)
	setString(EnvNodeEnv, &cfg.NodeEnv, fc.NodeEnv)
	setString(EnvSchemaDir, &cfg.SchemaDir, fc.SchemaDir)
	setInt64(EnvMaxBodyBytes, &cfg.MaxBodyBytes, fc.MaxBodyBytes)
	setInt(EnvRateLimitRPM, &cfg.RateLimitRPM, fc.RateLimitRPM)
	if fc.AllowedOrigins != nil && !envSet(EnvAllowedOrigins) {
		cfg.AllowedOrigins = *fc.AllowedOrigins
	}

	setDuration(EnvReadTimeout, &cfg.Server.ReadTimeout, fc.Server.ReadTimeout)
	setDuration(EnvReadHeader, &cfg.Server.ReadHeaderTimeout, fc.Server.ReadHeaderTimeout)
	setDuration(EnvWriteTimeout, &cfg.Server.WriteTimeout, fc.Server.WriteTimeout)
	setDuration(EnvIdleTimeout, &cfg.Server.IdleTimeout, fc.Server.IdleTimeout)
	setDuration(EnvShutdownTimeout, &cfg.Server.ShutdownTimeout, fc.Server.ShutdownTimeout)

	setBool(EnvTraceEnabled, &cfg.Trace.Enabled, fc.Trace.Enabled)
	setString(EnvTraceExporter, &cfg.Trace.Exporter, fc.Trace.Exporter)
	setString(EnvTraceEndpoint, &cfg.Trace.Endpoint, fc.Trace.Endpoint)
	setFloat(EnvTraceSampleRate, &cfg.Trace.SampleRate, fc.Trace.SampleRate)
	return nil
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}
