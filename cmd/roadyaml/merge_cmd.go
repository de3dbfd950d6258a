// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BlackRoad-OS/roadyaml"
)

func runMerge(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("roadyaml merge", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	out := fs.String("o", "", "write the merged document to this file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: merge requires at least one file")
		return 2
	}

	docs := make([]roadyaml.Document, 0, len(files))
	for _, file := range files {
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
		docs = append(docs, doc)
	}

	merged := docs[0]
	if err := merged.Merge(docs[1:]...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *out != "" {
		if err := roadyaml.DumpFile(*out, merged); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
		return 0
	}
	fmt.Fprintln(stdout, merged.Dump())
	return 0
}
