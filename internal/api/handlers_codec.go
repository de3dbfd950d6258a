// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BlackRoad-OS/roadyaml"
	"github.com/BlackRoad-OS/roadyaml/internal/log"
	"github.com/BlackRoad-OS/roadyaml/internal/metrics"
)

type parseResponse struct {
	Data any `json:"data"`
}

type mergeRequest struct {
	Documents []string `json:"documents"`
}

// handleParse decodes a document body and returns its JSON form.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	start := time.Now()
	value, err := roadyaml.Parse(body)
	metrics.RecordCodecOp("parse", err, time.Since(start).Seconds())
	metrics.ObserveDocumentSize("parse", len(body))

	if err != nil {
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Warn().
			Err(err).
			Str(log.FieldEvent, "codec.parse_failed").
			Int("body_bytes", len(body)).
			Msg("document rejected")
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, parseResponse{Data: value})
}

// handleFormat parses a document and re-emits it in normalized form.
func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	indent, err := indentFrom(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	start := time.Now()
	value, err := roadyaml.Parse(body)
	if err != nil {
		metrics.RecordCodecOp("format", err, time.Since(start).Seconds())
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	text := roadyaml.DumpIndent(value, indent)
	metrics.RecordCodecOp("format", nil, time.Since(start).Seconds())
	metrics.ObserveDocumentSize("format", len(body))

	writeYAML(w, http.StatusOK, text)
}

// handleDump converts a JSON value into document text. Numbers decode as
// json.Number so integers stay integers instead of gaining a .0 suffix.
func (s *Server) handleDump(w http.ResponseWriter, r *http.Request) {
	indent, err := indentFrom(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("request body is not valid JSON: %v", err))
		return
	}
	if dec.More() {
		writeError(w, r, http.StatusBadRequest, "trailing data after the JSON value")
		return
	}

	start := time.Now()
	text := roadyaml.DumpIndent(value, indent)
	metrics.RecordCodecOp("dump", nil, time.Since(start).Seconds())
	metrics.ObserveDocumentSize("dump", len(text))

	writeYAML(w, http.StatusOK, text)
}

// handleMerge folds a list of documents left to right and returns the result.
func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	indent, err := indentFrom(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var req mergeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("request body is not valid JSON: %v", err))
		return
	}
	if len(req.Documents) == 0 {
		writeError(w, r, http.StatusBadRequest, "documents must contain at least one entry")
		return
	}

	start := time.Now()
	docs := make([]roadyaml.Document, 0, len(req.Documents))
	for i, raw := range req.Documents {
		doc, err := roadyaml.ParseDocument([]byte(raw))
		if err != nil {
			metrics.RecordCodecOp("merge", err, time.Since(start).Seconds())
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("document %d: %v", i+1, err))
			return
		}
		docs = append(docs, doc)
	}

	merged := docs[0]
	if err := merged.Merge(docs[1:]...); err != nil {
		metrics.RecordCodecOp("merge", err, time.Since(start).Seconds())
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "codec.merge_failed").
			Int("documents", len(docs)).
			Msg("merge failed")
		writeError(w, r, http.StatusInternalServerError, "merge failed")
		return
	}
	metrics.RecordCodecOp("merge", nil, time.Since(start).Seconds())
	metrics.ObserveDocumentSize("merge", len(body))

	if r.URL.Query().Get("format") == "yaml" {
		writeYAML(w, http.StatusOK, roadyaml.DumpIndent(map[string]any(merged), indent))
		return
	}
	writeJSON(w, r, http.StatusOK, parseResponse{Data: merged})
}
