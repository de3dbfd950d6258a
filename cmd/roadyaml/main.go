// SPDX-License-Identifier: MIT

// roadyaml is a command line tool for working with RoadYAML documents.
//
// Usage:
//
//	roadyaml fmt [-w] [-indent n] [file ...]
//	roadyaml convert [-to json|yaml] [-indent n] [file]
//	roadyaml validate -schema <file> [-quiet] [file ...]
//	roadyaml merge [-o out] file ...
//	roadyaml get -path <dotted.path> [file]
//	roadyaml version
//
// Files default to stdin when omitted; "-" also means stdin.
//
// Exit codes:
//   - 0: Success
//   - 1: Domain failure (unparseable document, failed validation)
//   - 2: Usage or I/O error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BlackRoad-OS/roadyaml/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "fmt":
		return runFmt(args[1:], stdout)
	case "convert":
		return runConvert(args[1:], stdout)
	case "validate":
		return runValidate(args[1:], stdout)
	case "merge":
		return runMerge(args[1:], stdout)
	case "get":
		return runGet(args[1:], stdout)
	case "version":
		fmt.Fprintf(stdout, "%s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  roadyaml fmt [-w] [-indent n] [file ...]")
	fmt.Fprintln(os.Stderr, "  roadyaml convert [-to json|yaml] [-indent n] [file]")
	fmt.Fprintln(os.Stderr, "  roadyaml validate -schema <file> [-quiet] [file ...]")
	fmt.Fprintln(os.Stderr, "  roadyaml merge [-o out] file ...")
	fmt.Fprintln(os.Stderr, "  roadyaml get -path <dotted.path> [file]")
	fmt.Fprintln(os.Stderr, "  roadyaml version")
}

// readInput reads the named file, or stdin when path is empty or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path) // #nosec G304 -- path is given on the command line
}

func indentValid(n int) bool {
	return n >= 1 && n <= 8
}
