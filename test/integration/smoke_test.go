// SPDX-License-Identifier: MIT

//go:build integration_fast || integration

package test

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BlackRoad-OS/roadyaml/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smokeSchema = `{
  "type": "object",
  "required": ["service"],
  "properties": {
    "service": {"type": "string"},
    "replicas": {"type": "integer", "minimum": 0}
  }
}`

func writeSchemaDir(t *testing.T, schemas map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range schemas {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write schema %s: %v", name, err)
		}
	}
	return dir
}

func TestSmoke_SystemEndpoints(t *testing.T) {
	ts := helpers.NewTestServer(t, helpers.TestServerOptions{
		SchemaDir: writeSchemaDir(t, map[string]string{"deploy.json": smokeSchema}),
	})
	defer ts.Close()

	tests := []struct {
		name           string
		endpoint       string
		expectedStatus int
	}{
		{"liveness", "/healthz", http.StatusOK},
		{"readiness", "/readyz", http.StatusOK},
		{"status", "/api/status", http.StatusOK},
		{"metrics", "/metrics", http.StatusOK},
		{"openapi", "/api/openapi.yaml", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
				Method: http.MethodGet,
				Path:   tt.endpoint,
			})
			body := helpers.ReadBody(t, resp)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode,
				"endpoint %s returned unexpected status: %s", tt.endpoint, body)
		})
	}
}

func TestSmoke_RootRedirectsToStatus(t *testing.T) {
	ts := helpers.NewTestServer(t, helpers.TestServerOptions{})
	defer ts.Close()

	resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
		Method: http.MethodGet,
		Path:   "/",
	})
	body := helpers.ReadBody(t, resp)

	// The default client follows the redirect to /api/status.
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"service":"roadyaml"`)
}

func TestSmoke_ParseEndpoint(t *testing.T) {
	ts := helpers.NewTestServer(t, helpers.TestServerOptions{})
	defer ts.Close()

	resp := helpers.DoRequest(t, ts.Server.URL, helpers.RequestOptions{
		Method: http.MethodPost,
		Path:   "/v1/parse",
		Body:   strings.NewReader("service: web\nreplicas: 3"),
	})
	body := helpers.ReadBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data": {"service": "web", "replicas": 3}}`, body)
}

func TestSmoke_ConcurrentParseRequests(t *testing.T) {
	ts := helpers.NewTestServer(t, helpers.TestServerOptions{})
	defer ts.Close()

	const numRequests = 4
	results := make(chan int, numRequests)

	for i := 0; i < numRequests; i++ {
		go func() {
			resp, err := http.Post(ts.Server.URL+"/v1/parse", "application/x-yaml",
				strings.NewReader("a: 1"))
			if err != nil {
				results <- 0
				return
			}
			defer resp.Body.Close()
			results <- resp.StatusCode
		}()
	}

	for i := 0; i < numRequests; i++ {
		assert.Equal(t, http.StatusOK, <-results)
	}
}
