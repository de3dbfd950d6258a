// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BlackRoad-OS/roadyaml"
)

func runGet(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("roadyaml get", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	path := fs.String("path", "", "dotted path to look up, e.g. spec.containers.0.image")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *path == "" {
		fmt.Fprintln(os.Stderr, "Error: -path is required")
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: get takes at most one file")
		return 2
	}

	file := fs.Arg(0)
	data, err := readInput(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	doc, err := roadyaml.ParseDocument(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", displayName(file), err)
		return 1
	}

	value, ok := doc.Lookup(*path)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: path %q not found\n", displayName(file), *path)
		return 1
	}

	fmt.Fprintln(stdout, roadyaml.Dump(value))
	return 0
}
