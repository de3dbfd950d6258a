// SPDX-License-Identifier: MIT

package roadyaml

import (
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"
)

// Parse decodes RoadYAML text into nil, bool, int64, float64, string,
// []any or map[string]any.
func Parse(data []byte) (any, error) {
	p := &parser{tokens: Scan(string(data))}
	return p.parse()
}

// ParseString is Parse for string input.
func ParseString(text string) (any, error) {
	return Parse([]byte(text))
}

// ParseFile reads and parses a RoadYAML file.
func ParseFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Dump renders v as RoadYAML text with the default two-space indent and no
// trailing newline.
func Dump(v any) string {
	return NewDumper(2).Dump(v)
}

// DumpIndent renders v with the given indent width.
func DumpIndent(v any, indent int) string {
	return NewDumper(indent).Dump(v)
}

// Write renders v followed by a newline to w.
func Write(w io.Writer, v any) error {
	_, err := io.WriteString(w, Dump(v)+"\n")
	return err
}

// DumpFile atomically writes v to path: the rendered document goes to a
// pending temp file which is fsynced and renamed into place, so readers
// never observe a partial document.
func DumpFile(path string, v any) error {
	return DumpFileIndent(path, v, 2)
}

// DumpFileIndent is DumpFile with an explicit indent width.
func DumpFileIndent(path string, v any, indent int) error {
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", path, err)
	}
	defer func() {
		_ = pending.Cleanup()
	}()

	if _, err := io.WriteString(pending, DumpIndent(v, indent)+"\n"); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
