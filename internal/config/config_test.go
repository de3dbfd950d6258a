package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes a variable for the duration of the test, restoring any
// previous value afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok {
			key, v := key, v
			t.Cleanup(func() { _ = os.Setenv(key, v) })
			_ = os.Unsetenv(key)
		}
	}
}

func TestFromEnvDefaults(t *testing.T) {
	unsetEnv(t, EnvPort, EnvLogLevel, EnvNodeEnv, EnvSchemaDir, EnvMaxBodyBytes, EnvRateLimitRPM)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.NodeEnv)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, 600, cfg.RateLimitRPM)
	assert.Empty(t, cfg.SchemaDir)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout.Std())
	assert.False(t, cfg.Trace.Enabled)
	assert.Equal(t, "grpc", cfg.Trace.Exporter)
	assert.InDelta(t, 0.1, cfg.Trace.SampleRate, 1e-9)
	assert.Equal(t, ":3000", cfg.Listen())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvNodeEnv, "production")
	t.Setenv(EnvAllowedOrigins, "https://a.example,https://b.example")
	t.Setenv(EnvReadTimeout, "20s")
	t.Setenv(EnvTraceEnabled, "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.NodeEnv)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout.Std())
	assert.True(t, cfg.Trace.Enabled)
}

func TestFromEnvRejectsGarbage(t *testing.T) {
	t.Setenv(EnvPort, "not-a-port")
	_, err := FromEnv()
	assert.Error(t, err)
}

func validConfig(t *testing.T) Config {
	t.Helper()
	cfg := Config{
		Port:         3000,
		LogLevel:     "info",
		NodeEnv:      "development",
		MaxBodyBytes: 1 << 20,
		RateLimitRPM: 600,
	}
	cfg.Server = ServerConfig{
		ReadTimeout:       Duration(15 * time.Second),
		ReadHeaderTimeout: Duration(5 * time.Second),
		WriteTimeout:      Duration(30 * time.Second),
		IdleTimeout:       Duration(60 * time.Second),
		ShutdownTimeout:   Duration(10 * time.Second),
	}
	cfg.Trace = TraceConfig{Exporter: "grpc", Endpoint: "localhost:4317", SampleRate: 0.1}
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port too low", func(c *Config) { c.Port = 0 }, EnvPort},
		{"port too high", func(c *Config) { c.Port = 70000 }, EnvPort},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, EnvLogLevel},
		{"zero body cap", func(c *Config) { c.MaxBodyBytes = 0 }, EnvMaxBodyBytes},
		{"negative rate", func(c *Config) { c.RateLimitRPM = -1 }, EnvRateLimitRPM},
		{"zero timeout", func(c *Config) { c.Server.WriteTimeout = 0 }, EnvWriteTimeout},
		{"bad exporter", func(c *Config) { c.Trace.Exporter = "udp" }, EnvTraceExporter},
		{"sample rate above one", func(c *Config) { c.Trace.SampleRate = 1.5 }, EnvTraceSampleRate},
		{"missing schema dir", func(c *Config) { c.SchemaDir = "/does/not/exist" }, EnvSchemaDir},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateSchemaDirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	cfg := validConfig(t)
	cfg.SchemaDir = path
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestValidateAcceptsSchemaDir(t *testing.T) {
	cfg := validConfig(t)
	cfg.SchemaDir = t.TempDir()
	assert.NoError(t, cfg.Validate())
}

func TestKnownNodeEnv(t *testing.T) {
	for _, known := range []string{"development", "test", "staging", "production"} {
		assert.True(t, KnownNodeEnv(known), known)
	}
	assert.False(t, KnownNodeEnv("qa-eu-west"))
	assert.False(t, KnownNodeEnv(""))
}
