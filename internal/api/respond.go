// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/BlackRoad-OS/roadyaml/internal/log"
)

// yamlContentType is used for responses carrying document text.
const yamlContentType = "application/x-yaml; charset=utf-8"

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId"`
}

// writeJSON marshals v before touching the response. Parsed documents can
// contain NaN or Inf floats which encoding/json rejects, and a streaming
// encoder would discover that only after the status line is gone.
func writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "api.encode_failed").
			Msg("response not representable as JSON")
		writeError(w, r, http.StatusInternalServerError, "response not representable as JSON")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	reqID := w.Header().Get("X-Request-ID")
	body, err := json.Marshal(errorBody{Error: msg, RequestID: reqID})
	if err != nil {
		http.Error(w, msg, code)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// writeYAML sends document text with a trailing newline so shell pipelines
// behave.
func writeYAML(w http.ResponseWriter, code int, text string) {
	w.Header().Set("Content-Type", yamlContentType)
	w.WriteHeader(code)
	_, _ = io.WriteString(w, text+"\n")
}

// readBody drains the request body, translating the MaxBytesReader cutoff
// into a 413. Returns false after writing the error response.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
			return nil, false
		}
		writeError(w, r, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	return body, true
}

// indentFrom reads the optional ?indent= query parameter.
func indentFrom(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("indent")
	if raw == "" {
		return 2, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 8 {
		return 0, fmt.Errorf("indent must be an integer between 1 and 8, got %q", raw)
	}
	return n, nil
}
