// SPDX-License-Identifier: MIT

// schema-docs generates Markdown documentation from a directory of JSON
// Schema files, the same directory roadyamld serves via ROADYAML_SCHEMA_DIR.
// YAML schemas are accepted alongside JSON ones.
//
// Usage:
//
//	go run ./tools/schema-docs [schema-dir] [output.md]
//
// Defaults:
//   - schema-dir: schemas
//   - output: docs/schemas.md
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sigyaml "sigs.k8s.io/yaml"
)

type schemaNode map[string]any

func main() {
	dir := "schemas"
	out := "docs/schemas.md"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if len(os.Args) > 2 {
		out = os.Args[2]
	}

	doc, err := renderSchemaDocs(dir)
	check(err)

	check(os.MkdirAll(filepath.Dir(out), 0o755))
	check(os.WriteFile(out, doc, 0o644))
	fmt.Printf("generated %s from %s\n", out, dir)
}

// renderSchemaDocs documents every schema file in dir, in name order.
func renderSchemaDocs(dir string) ([]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	fmt.Fprintln(buf, "# Manifest schemas")
	fmt.Fprintf(buf, "> Source: `%s`\n", dir)

	documented := 0
	for _, entry := range entries {
		if entry.IsDir() || !isSchemaFile(entry.Name()) {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		root, err := decodeSchema(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		fmt.Fprintf(buf, "\n## `%s`\n\n", name)
		renderSchema(buf, root)
		documented++
	}

	if documented == 0 {
		return nil, fmt.Errorf("no schema files in %s", dir)
	}
	return buf.Bytes(), nil
}

// decodeSchema accepts both JSON and YAML schema sources, mirroring what the
// registry loads.
func decodeSchema(raw []byte) (schemaNode, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		converted, err := sigyaml.YAMLToJSON(raw)
		if err != nil {
			return nil, err
		}
		raw = converted
	}
	var root schemaNode
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	return root, nil
}

func renderSchema(buf *bytes.Buffer, root schemaNode) {
	if d, ok := root["description"].(string); ok && d != "" {
		fmt.Fprintf(buf, "%s\n\n", flatten(d))
	}

	required := requiredSet(root)
	props := childMap(root, "properties")
	if len(props) == 0 {
		fmt.Fprintf(buf, "Type: `%s`, no properties declared.\n", typeOf(root))
		return
	}

	fmt.Fprintln(buf, "| Field | Type | Required | Description |")
	fmt.Fprintln(buf, "|---|---|:---:|---|")
	for _, key := range sortedKeys(props) {
		node := childMap(props, key)
		fmt.Fprintf(buf, "| `%s` | `%s` | %s | %s |\n",
			key, typeOf(node), requiredMark(required[key]), flatten(description(node)))
	}
}

func requiredSet(node schemaNode) map[string]bool {
	set := map[string]bool{}
	if req, ok := node["required"].([]any); ok {
		for _, r := range req {
			set[fmt.Sprint(r)] = true
		}
	}
	return set
}

func typeOf(node schemaNode) string {
	if t, ok := node["type"]; ok {
		switch v := t.(type) {
		case string:
			if v == "array" {
				return "array<" + typeOf(childMap(node, "items")) + ">"
			}
			return v
		case []any:
			parts := make([]string, 0, len(v))
			for _, e := range v {
				parts = append(parts, fmt.Sprint(e))
			}
			sort.Strings(parts)
			return strings.Join(parts, "|")
		}
	}
	if _, ok := node["properties"]; ok {
		return "object"
	}
	return "any"
}

func description(node schemaNode) string {
	if d, ok := node["description"].(string); ok {
		return d
	}
	return ""
}

func childMap(node schemaNode, key string) schemaNode {
	if v, ok := node[key]; ok {
		if m, ok := v.(map[string]any); ok {
			return schemaNode(m)
		}
	}
	return schemaNode{}
}

func sortedKeys(node schemaNode) []string {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isSchemaFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return !strings.HasPrefix(name, ".")
	default:
		return false
	}
}

func flatten(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

func requiredMark(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
