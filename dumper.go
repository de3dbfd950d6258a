// SPDX-License-Identifier: MIT

package roadyaml

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// quoteSet lists the characters that force double quoting of a scalar.
const quoteSet = ":#{}[]&*!|>'\"%@`"

// Dumper serializes Go values as RoadYAML text. Mapping keys are emitted in
// sorted order so output is deterministic.
type Dumper struct {
	Indent int
}

// NewDumper returns a Dumper with the given indent width; values below one
// fall back to the default of two spaces.
func NewDumper(indent int) *Dumper {
	if indent < 1 {
		indent = 2
	}
	return &Dumper{Indent: indent}
}

// Dump renders v without a trailing newline.
func (d *Dumper) Dump(v any) string {
	return d.dump(v, 0)
}

func (d *Dumper) dump(v any, level int) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case string:
		return dumpString(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case []any:
		return d.dumpSequence(x, level)
	case map[string]any:
		return d.dumpMapping(x, level)
	case Document:
		return d.dumpMapping(map[string]any(x), level)
	}

	// Typed slices and maps render like their any-valued forms.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return d.dumpSequence(items, level)
	case reflect.Map:
		m := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			m[fmt.Sprint(k.Interface())] = rv.MapIndex(k).Interface()
		}
		return d.dumpMapping(m, level)
	}
	return fmt.Sprint(v)
}

func (d *Dumper) dumpSequence(items []any, level int) string {
	if len(items) == 0 {
		return "[]"
	}
	prefix := strings.Repeat(" ", level*d.Indent)
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := collectionSize(item); ok {
			nested := d.dump(item, level+1)
			lines = append(lines, prefix+"- "+strings.TrimLeft(nested, " "))
		} else {
			lines = append(lines, prefix+"- "+d.dump(item, 0))
		}
	}
	return strings.Join(lines, "\n")
}

func (d *Dumper) dumpMapping(m map[string]any, level int) string {
	if len(m) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	prefix := strings.Repeat(" ", level*d.Indent)
	lines := make([]string, 0, len(m))
	for _, k := range keys {
		v := m[k]
		if n, ok := collectionSize(v); ok && n > 0 {
			lines = append(lines, prefix+k+":")
			lines = append(lines, d.dump(v, level+1))
		} else {
			lines = append(lines, prefix+k+": "+d.dump(v, 0))
		}
	}
	return strings.Join(lines, "\n")
}

// collectionSize reports whether v is a sequence or mapping and, if so, its
// length. Empty collections render inline as [] or {}.
func collectionSize(v any) (int, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case []any:
		return len(x), true
	case map[string]any:
		return len(x), true
	case Document:
		return len(x), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

func dumpString(s string) string {
	if strings.ContainsAny(s, quoteSet) {
		return `"` + s + `"`
	}
	return s
}

// formatFloat keeps floats recognizable as floats on re-parse: whole values
// gain a .0 suffix and the special values use their parseable spellings.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
