// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BlackRoad-OS/roadyaml"
	"github.com/BlackRoad-OS/roadyaml/internal/api/middleware"
	"github.com/BlackRoad-OS/roadyaml/internal/schema"
)

type schemaListResponse struct {
	Schemas []string `json:"schemas"`
	Count   int      `json:"count"`
}

// handleSchemaList returns the names of all loaded schemas.
func (s *Server) handleSchemaList(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		writeJSON(w, r, http.StatusOK, schemaListResponse{Schemas: []string{}})
		return
	}
	names := s.registry.Names()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, r, http.StatusOK, schemaListResponse{Schemas: names, Count: len(names)})
}

// handleSchemaGet serves the compiled schema document.
func (s *Server) handleSchemaGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if s.registry == nil {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("schema not found: %s", name))
		return
	}

	compiled, err := s.registry.Get(name)
	if err != nil {
		if errors.Is(err, schema.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, "schema lookup failed")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(compiled.JSON())
}

// handleSchemaValidate checks a document body against a named schema.
// Both validation outcomes are 200; only unknown schemas and unparseable
// bodies are errors.
func (s *Server) handleSchemaValidate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	middleware.AddSpanAttributes(r, attribute.String("roadyaml.schema", name))
	if s.registry == nil {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("schema not found: %s", name))
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	doc, err := roadyaml.ParseDocument(body)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := s.registry.Validate(name, doc)
	if err != nil {
		if errors.Is(err, schema.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, "validation failed")
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}
