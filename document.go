// SPDX-License-Identifier: MIT

package roadyaml

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Document is a parsed RoadYAML mapping with dotted-path access and deep
// merge. Paths are dot separated; numeric segments index into sequences,
// so "spec.containers.0.image" reaches into a list of mappings.
type Document map[string]any

// ParseDocument parses data and requires a mapping (or empty input, which
// yields an empty document) at the top level.
func ParseDocument(data []byte) (Document, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	switch m := v.(type) {
	case nil:
		return Document{}, nil
	case map[string]any:
		return Document(m), nil
	default:
		return nil, ErrNotMapping
	}
}

// FromJSON builds a Document from a JSON object.
func FromJSON(data []byte) (Document, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if m == nil {
		return Document{}, nil
	}
	return Document(m), nil
}

// Lookup walks a dotted path and reports whether it resolves.
func (d Document) Lookup(path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var cur any = map[string]any(d)
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// GetString is Lookup with a string assertion.
func (d Document) GetString(path string) (string, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt is Lookup with an int64 assertion.
func (d Document) GetInt(path string) (int64, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return 0, false
	}
	n, ok := v.(int64)
	return n, ok
}

// GetBool is Lookup with a bool assertion.
func (d Document) GetBool(path string) (bool, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Set writes value at a dotted path, creating intermediate mappings for
// missing or null segments. It cannot traverse scalars or sequences.
func (d Document) Set(path string, value any) error {
	if d == nil {
		return fmt.Errorf("set %q: nil document", path)
	}
	if path == "" {
		return fmt.Errorf("set: empty path")
	}
	parts := strings.Split(path, ".")
	cur := map[string]any(d)
	for i, part := range parts[:len(parts)-1] {
		next, ok := cur[part]
		if !ok || next == nil {
			child := map[string]any{}
			cur[part] = child
			cur = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("set %q: %q is not a mapping", path, strings.Join(parts[:i+1], "."))
		}
		cur = child
	}
	cur[parts[len(parts)-1]] = value
	return nil
}

// Merge deep-merges overlays into d, later overlays winning. Nested
// mappings merge key by key; scalars and sequences from an overlay replace
// the base value outright, including zero values and explicit nulls.
func (d Document) Merge(overlays ...Document) error {
	if d == nil {
		return fmt.Errorf("merge: nil document")
	}
	for _, overlay := range overlays {
		mergeInto(map[string]any(d), map[string]any(overlay))
	}
	return nil
}

// mergeInto copies overlay keys into dst, recursing only when both sides
// hold a mapping. Every other pairing takes the overlay value verbatim,
// zero values and explicit nulls included.
func mergeInto(dst, overlay map[string]any) {
	for k, v := range overlay {
		if om, ok := v.(map[string]any); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				mergeInto(dm, om)
				continue
			}
		}
		dst[k] = v
	}
}

// Dump renders the document as RoadYAML text.
func (d Document) Dump() string {
	return Dump(map[string]any(d))
}

// ToJSON encodes the document as a JSON object.
func (d Document) ToJSON() ([]byte, error) {
	return json.Marshal(map[string]any(d))
}

// Equal compares two documents structurally.
func (d Document) Equal(other Document) bool {
	return reflect.DeepEqual(map[string]any(d), map[string]any(other))
}
