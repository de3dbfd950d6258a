// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BlackRoad-OS/roadyaml"
)

func runValidate(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("roadyaml validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	schemaPath := fs.String("schema", "", "path to a JSON or YAML schema file")
	quiet := fs.Bool("quiet", false, "suppress output, report via exit code only")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *schemaPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -schema is required")
		return 2
	}

	schemaData, err := os.ReadFile(*schemaPath) // #nosec G304 -- path is given on the command line
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	schema, err := roadyaml.CompileSchema(schemaBaseName(*schemaPath), schemaData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	files := fs.Args()
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

		doc, err := roadyaml.ParseDocument(data)
		if err != nil {
			if !*quiet {
				fmt.Fprintf(os.Stderr, "%s: %v\n", displayName(file), err)
			}
			code = 1
			continue
		}

		result, err := schema.Validate(doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", displayName(file), err)
			return 2
		}
		if result.Valid {
			if !*quiet {
				fmt.Fprintf(stdout, "%s: OK\n", displayName(file))
			}
			continue
		}

		code = 1
		if !*quiet {
			for _, ve := range result.Errors {
				fmt.Fprintf(stdout, "%s: %s: %s\n", displayName(file), ve.Field, ve.Description)
			}
		}
	}
	return code
}

func schemaBaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
