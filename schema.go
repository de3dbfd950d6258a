// SPDX-License-Identifier: MIT

package roadyaml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
	sigyaml "sigs.k8s.io/yaml"
)

// Schema is a compiled JSON Schema for validating parsed documents.
// Schemas may be authored as JSON or as YAML; YAML sources are converted to
// JSON before compilation, so schema files can use the full YAML grammar
// even though the documents they validate are RoadYAML.
type Schema struct {
	name     string
	raw      []byte
	compiled *gojsonschema.Schema
}

// CompileSchema compiles schema source under the given name.
func CompileSchema(name string, data []byte) (*Schema, error) {
	src := bytes.TrimSpace(data)
	if len(src) == 0 {
		return nil, fmt.Errorf("schema %q: empty source", name)
	}
	if src[0] != '{' {
		converted, err := sigyaml.YAMLToJSON(src)
		if err != nil {
			return nil, fmt.Errorf("schema %q: convert yaml: %w", name, err)
		}
		src = converted
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(src))
	if err != nil {
		return nil, fmt.Errorf("schema %q: compile: %w", name, err)
	}
	return &Schema{name: name, raw: src, compiled: compiled}, nil
}

// Name returns the name the schema was compiled under.
func (s *Schema) Name() string { return s.name }

// JSON returns a copy of the compiled JSON form of the schema.
func (s *Schema) JSON() []byte { return append([]byte(nil), s.raw...) }

// ValidationError describes one schema violation.
type ValidationError struct {
	Field       string `json:"field"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ValidationResult is the outcome of validating one document.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// Validate checks a parsed document against the schema. The document is
// JSON-encoded first, so only values the codec produces (and anything else
// JSON-encodable) can be validated. Violations are sorted by field.
func (s *Schema) Validate(doc any) (*ValidationResult, error) {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("schema %q: encode document: %w", s.name, err)
	}
	res, err := s.compiled.Validate(gojsonschema.NewBytesLoader(encoded))
	if err != nil {
		return nil, fmt.Errorf("schema %q: validate: %w", s.name, err)
	}
	out := &ValidationResult{Valid: res.Valid()}
	for _, re := range res.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:       re.Field(),
			Type:        re.Type(),
			Description: re.Description(),
		})
	}
	sort.Slice(out.Errors, func(i, j int) bool { return out.Errors[i].Field < out.Errors[j].Field })
	return out, nil
}
