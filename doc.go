// SPDX-License-Identifier: MIT

// Package roadyaml implements the RoadYAML manifest dialect used across
// BlackRoad OS.
//
// RoadYAML is a deliberately small, line-oriented subset of YAML: block
// mappings, block sequences of scalars, comments, and a fixed set of scalar
// coercions (booleans, null, integers, floats, quoted strings). Anchors,
// aliases, multi-document streams, block scalars and flow collections are
// not part of the dialect. The subset keeps manifests diffable and the
// codec auditable; documents that need full YAML are not RoadYAML
// documents.
//
// The package also provides Document, a dotted-path view over parsed
// mappings with deep-merge semantics, and Schema, a JSON Schema validator
// for parsed documents.
package roadyaml
