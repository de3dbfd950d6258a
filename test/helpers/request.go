// SPDX-License-Identifier: MIT

package helpers

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequestOptions configures HTTP request creation.
type RequestOptions struct {
	Method string
	Path   string
	Body   io.Reader
	Header map[string]string
}

// DoRequest creates and executes an HTTP request against the test server.
// The caller owns the response body.
func DoRequest(t *testing.T, baseURL string, opts RequestOptions) *http.Response {
	t.Helper()

	req, err := http.NewRequestWithContext(
		context.Background(),
		opts.Method,
		baseURL+opts.Path,
		opts.Body,
	)
	require.NoError(t, err, "failed to create HTTP request")

	for key, value := range opts.Header {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "failed to execute HTTP request")

	return resp
}

// ReadBody drains and closes the response body.
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	return string(data)
}
