// SPDX-License-Identifier: MIT

//go:build integration

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BlackRoad-OS/roadyaml/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullFlow_ManifestPipeline drives a manifest through every codec
// endpoint: parse, format, dump, merge, then schema validation.
func TestFullFlow_ManifestPipeline(t *testing.T) {
	ts := helpers.NewTestServer(t, helpers.TestServerOptions{
		SchemaDir: writeSchemaDir(t, map[string]string{"deploy.json": smokeSchema}),
	})
	defer ts.Close()

	t.Run("parse", func(t *testing.T) {
		resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
			Method: http.MethodPost,
			Path:   "/v1/parse",
			Body:   strings.NewReader("service: web\nreplicas: 3\nports:\n  - 80\n  - 443"),
		})
		body := helpers.ReadBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"data": {"service": "web", "replicas": 3, "ports": [80, 443]}}`, body)
	})

	t.Run("format", func(t *testing.T) {
		resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
			Method: http.MethodPost,
			Path:   "/v1/format?indent=4",
			Body:   strings.NewReader("spec:\n  image: nginx\nservice: web"),
		})
		body := helpers.ReadBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/x-yaml; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, "service: web\nspec:\n    image: nginx\n", body)
	})

	t.Run("dump", func(t *testing.T) {
		resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
			Method: http.MethodPost,
			Path:   "/v1/dump",
			Body:   strings.NewReader(`{"service": "web", "replicas": 3}`),
		})
		body := helpers.ReadBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "replicas: 3\nservice: web\n", body)
	})

	t.Run("merge", func(t *testing.T) {
		request := `{"documents": ["service: web\nreplicas: 1", "replicas: 5"]}`
		resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
			Method: http.MethodPost,
			Path:   "/v1/merge",
			Body:   strings.NewReader(request),
		})
		body := helpers.ReadBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"data": {"service": "web", "replicas": 5}}`, body)
	})

	t.Run("merge_yaml_output", func(t *testing.T) {
		request := `{"documents": ["a: 1", "b: 2"]}`
		resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
			Method: http.MethodPost,
			Path:   "/v1/merge?format=yaml",
			Body:   strings.NewReader(request),
		})
		body := helpers.ReadBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/x-yaml; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, "a: 1\nb: 2\n", body)
	})

	t.Run("schema_list", func(t *testing.T) {
		resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
			Method: http.MethodGet,
			Path:   "/v1/schemas",
		})
		body := helpers.ReadBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"schemas": ["deploy"], "count": 1}`, body)
	})

	t.Run("schema_get", func(t *testing.T) {
		resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
			Method: http.MethodGet,
			Path:   "/v1/schemas/deploy",
		})
		body := helpers.ReadBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var schema map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &schema))
		assert.Equal(t, "object", schema["type"])
	})

	t.Run("validate_ok", func(t *testing.T) {
		resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
			Method: http.MethodPost,
			Path:   "/v1/schemas/deploy/validate",
			Body:   strings.NewReader("service: web\nreplicas: 3"),
		})
		body := helpers.ReadBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"valid": true}`, body)
	})

	t.Run("validate_violations", func(t *testing.T) {
		resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
			Method: http.MethodPost,
			Path:   "/v1/schemas/deploy/validate",
			Body:   strings.NewReader("replicas: -1"),
		})
		body := helpers.ReadBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"valid":false`)
		assert.Contains(t, body, "replicas")
	})

	t.Run("unknown_schema", func(t *testing.T) {
		resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
			Method: http.MethodGet,
			Path:   "/v1/schemas/ghost",
		})
		body := helpers.ReadBody(t, resp)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode, body)
	})
}

// TestFullFlow_SchemaHotReload verifies that a schema dropped into the
// watched directory becomes servable without a restart.
func TestFullFlow_SchemaHotReload(t *testing.T) {
	dir := writeSchemaDir(t, map[string]string{"deploy.json": smokeSchema})
	ts := helpers.NewTestServer(t, helpers.TestServerOptions{SchemaDir: dir})
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, ts.Registry.Watch(ctx))

	newSchema := `{"type": "object", "required": ["name"]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "service.json"), []byte(newSchema), 0o600))

	deadline := time.After(10 * time.Second)
	for {
		resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
			Method: http.MethodGet,
			Path:   "/v1/schemas",
		})
		body := helpers.ReadBody(t, resp)
		if strings.Contains(body, `"service"`) {
			assert.Contains(t, body, `"deploy"`)
			return
		}

		select {
		case <-deadline:
			t.Fatalf("schema registry never picked up service.json, last body: %s", body)
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// TestFullFlow_Limits exercises the body cap and the per-client rate limit.
func TestFullFlow_Limits(t *testing.T) {
	t.Run("body_cap", func(t *testing.T) {
		ts := helpers.NewTestServer(t, helpers.TestServerOptions{MaxBodyBytes: 32})
		defer ts.Close()

		resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
			Method: http.MethodPost,
			Path:   "/v1/parse",
			Body:   strings.NewReader(strings.Repeat("a", 64) + ": 1"),
		})
		body := helpers.ReadBody(t, resp)

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		assert.Contains(t, body, "exceeds 32 bytes")
	})

	t.Run("rate_limit", func(t *testing.T) {
		ts := helpers.NewTestServer(t, helpers.TestServerOptions{RateLimitRPM: 2})
		defer ts.Close()

		statuses := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
				Method: http.MethodPost,
				Path:   "/v1/parse",
				Body:   strings.NewReader("a: 1"),
			})
			helpers.ReadBody(t, resp)
			statuses = append(statuses, resp.StatusCode)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
	})
}
