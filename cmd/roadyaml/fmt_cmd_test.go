// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"testing"
)

func TestFmt_PrintsNormalizedDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", "b:   2\na: 1\n")

	var out bytes.Buffer
	if code := run([]string{"fmt", path}, &out); code != 0 {
		t.Fatalf("fmt = %d, want 0", code)
	}
	if got, want := out.String(), "a: 1\nb: 2\n"; got != want {
		t.Errorf("fmt output = %q, want %q", got, want)
	}
}

func TestFmt_IndentFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", "spec:\n  image: nginx\n")

	var out bytes.Buffer
	if code := run([]string{"fmt", "-indent", "4", path}, &out); code != 0 {
		t.Fatalf("fmt -indent 4 = %d, want 0", code)
	}
	if got, want := out.String(), "spec:\n    image: nginx\n"; got != want {
		t.Errorf("fmt output = %q, want %q", got, want)
	}
}

func TestFmt_WriteInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", "b: 2\na: 1\n")

	var out bytes.Buffer
	if code := run([]string{"fmt", "-w", path}, &out); code != 0 {
		t.Fatalf("fmt -w = %d, want 0", code)
	}
	if out.Len() != 0 {
		t.Errorf("fmt -w wrote to stdout: %q", out.String())
	}

	rewritten, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got, want := string(rewritten), "a: 1\nb: 2\n"; got != want {
		t.Errorf("rewritten file = %q, want %q", got, want)
	}
}

func TestFmt_WriteRequiresFiles(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"fmt", "-w"}, &out); code != 2 {
		t.Errorf("fmt -w without files = %d, want 2", code)
	}
}

func TestFmt_WriteRejectsStdin(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", "a: 1\n")

	var out bytes.Buffer
	if code := run([]string{"fmt", "-w", path, "-"}, &out); code != 2 {
		t.Errorf("fmt -w with stdin = %d, want 2", code)
	}
	if _, err := os.Stat("-"); err == nil {
		t.Error("fmt -w - must not create a file named \"-\"")
	}
}

func TestFmt_ParseErrorIsDomainFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.yaml", "hello\nkey: value\n")

	var out bytes.Buffer
	if code := run([]string{"fmt", path}, &out); code != 1 {
		t.Errorf("fmt on broken document = %d, want 1", code)
	}
}

func TestFmt_MissingFileIsUsageError(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"fmt", "/nonexistent/app.yaml"}, &out); code != 2 {
		t.Errorf("fmt on missing file = %d, want 2", code)
	}
}

func TestFmt_BadIndent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", "a: 1\n")

	for _, indent := range []string{"0", "9", "-3"} {
		var out bytes.Buffer
		if code := run([]string{"fmt", "-indent", indent, path}, &out); code != 2 {
			t.Errorf("fmt -indent %s = %d, want 2", indent, code)
		}
	}
}
