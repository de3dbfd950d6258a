// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BlackRoad-OS/roadyaml"
)

func runFmt(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("roadyaml fmt", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	write := fs.Bool("w", false, "rewrite files in place instead of printing")
	indent := fs.Int("indent", 2, "spaces per nesting level (1-8)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !indentValid(*indent) {
		fmt.Fprintf(os.Stderr, "Error: -indent must be between 1 and 8, got %d\n", *indent)
		return 2
	}

	files := fs.Args()
	if *write && len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: -w requires file arguments")
		return 2
	}
	if *write {
		for _, file := range files {
			if file == "-" {
				fmt.Fprintln(os.Stderr, "Error: -w cannot rewrite stdin")
				return 2
			}
		}
	}
	if len(files) == 0 {
		files = []string{"-"}
	}

	code := 0
	for _, file := range files {
		data, err := readInput(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}

		value, err := roadyaml.Parse(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", displayName(file), err)
			code = 1
			continue
		}

		if *write {
			if err := roadyaml.DumpFileIndent(file, value, *indent); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 2
			}
			continue
		}
		fmt.Fprintln(stdout, roadyaml.DumpIndent(value, *indent))
	}
	return code
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
