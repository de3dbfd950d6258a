// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"testing"
)

func TestConvert_ToJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", "ok: yes\na: 1\n")

	var out bytes.Buffer
	if code := run([]string{"convert", path}, &out); code != 0 {
		t.Fatalf("convert = %d, want 0", code)
	}
	want := "{\n  \"a\": 1,\n  \"ok\": true\n}\n"
	if got := out.String(); got != want {
		t.Errorf("convert output = %q, want %q", got, want)
	}
}

func TestConvert_ToYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.json", `{"b": 2, "a": "x"}`)

	var out bytes.Buffer
	if code := run([]string{"convert", "-to", "yaml", path}, &out); code != 0 {
		t.Fatalf("convert -to yaml = %d, want 0", code)
	}
	if got, want := out.String(), "a: x\nb: 2\n"; got != want {
		t.Errorf("convert output = %q, want %q", got, want)
	}
}

func TestConvert_InvalidTarget(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", "a: 1\n")

	var out bytes.Buffer
	if code := run([]string{"convert", "-to", "toml", path}, &out); code != 2 {
		t.Errorf("convert -to toml = %d, want 2", code)
	}
}

func TestConvert_BadYAMLIsDomainFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.yaml", "hello\nkey: value\n")

	var out bytes.Buffer
	if code := run([]string{"convert", path}, &out); code != 1 {
		t.Errorf("convert on broken document = %d, want 1", code)
	}
}

func TestConvert_BadJSONIsDomainFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.json", "{not json")

	var out bytes.Buffer
	if code := run([]string{"convert", "-to", "yaml", path}, &out); code != 1 {
		t.Errorf("convert on broken JSON = %d, want 1", code)
	}
}

func TestConvert_NonFiniteFloatIsDomainFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", "ratio: nan\n")

	var out bytes.Buffer
	if code := run([]string{"convert", path}, &out); code != 1 {
		t.Errorf("convert of non-finite float = %d, want 1", code)
	}
}

func TestConvert_TooManyFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "a: 1\n")
	b := writeFile(t, dir, "b.yaml", "b: 2\n")

	var out bytes.Buffer
	if code := run([]string{"convert", a, b}, &out); code != 2 {
		t.Errorf("convert with two files = %d, want 2", code)
	}
}
