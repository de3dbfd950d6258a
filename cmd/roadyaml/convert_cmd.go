// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BlackRoad-OS/roadyaml"
)

func runConvert(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("roadyaml convert", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	to := fs.String("to", "json", "target format: json or yaml")
	indent := fs.Int("indent", 2, "spaces per nesting level for yaml output (1-8)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !indentValid(*indent) {
		fmt.Fprintf(os.Stderr, "Error: -indent must be between 1 and 8, got %d\n", *indent)
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: convert takes at most one file")
		return 2
	}

	file := fs.Arg(0)
	data, err := readInput(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	switch *to {
	case "json":
		value, err := roadyaml.Parse(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", displayName(file), err)
			return 1
		}
		encoded, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: not representable as JSON: %v\n", displayName(file), err)
			return 1
		}
		fmt.Fprintln(stdout, string(encoded))
		return 0

	case "yaml":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var value any
		if err := dec.Decode(&value); err != nil {
			fmt.Fprintf(os.Stderr, "%s: not valid JSON: %v\n", displayName(file), err)
			return 1
		}
		fmt.Fprintln(stdout, roadyaml.DumpIndent(value, *indent))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Error: -to must be json or yaml, got %q\n", *to)
		return 2
	}
}
