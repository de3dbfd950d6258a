// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/BlackRoad-OS/roadyaml"
	"github.com/BlackRoad-OS/roadyaml/internal/config"
)

func runConfigCLI(args []string) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printConfigUsage()
		return 0
	}

	switch args[0] {
	case "validate":
		return runConfigValidate(args[1:])
	case "dump":
		return runConfigDump(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n\n", args[0])
		printConfigUsage()
		return 2
	}
}

func printConfigUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  roadyamld config validate [-config config.yaml]")
	fmt.Fprintln(os.Stderr, "  roadyamld config dump [-config config.yaml] [-format yaml|json]")
}

func runConfigValidate(args []string) int {
	fs := flag.NewFlagSet("roadyamld config validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "path to config file (YAML)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if _, err := config.Load(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error:\n  %v\n", err)
		return 1
	}
	if *configPath != "" {
		fmt.Printf("%s is valid\n", *configPath)
	} else {
		fmt.Println("configuration is valid (environment and defaults)")
	}
	return 0
}

func runConfigDump(args []string) int {
	fs := flag.NewFlagSet("roadyamld config dump", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "path to config file (YAML)")
	format := fs.String("format", "yaml", "output format: yaml or json")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error:\n  %v\n", err)
		return 1
	}

	doc := configDocument(cfg)
	switch strings.ToLower(strings.TrimSpace(*format)) {
	case "yaml", "yml":
		fmt.Println(roadyaml.Dump(doc))
		return 0
	case "json":
		encoded, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		fmt.Println(string(encoded))
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unsupported format: %s (use yaml or json)\n", *format)
		return 2
	}
}

// configDocument renders the effective configuration under the config file's
// key names, so a dump can be fed back through -config unchanged.
func configDocument(cfg config.Config) map[string]any {
	origins := make([]any, len(cfg.AllowedOrigins))
	for i, o := range cfg.AllowedOrigins {
		origins[i] = o
	}
	return map[string]any{
		"port":           int64(cfg.Port),
		"logLevel":       cfg.LogLevel,
		"nodeEnv":        cfg.NodeEnv,
		"schemaDir":      cfg.SchemaDir,
		"maxBodyBytes":   cfg.MaxBodyBytes,
		"rateLimitRPM":   int64(cfg.RateLimitRPM),
		"allowedOrigins": origins,
		"server": map[string]any{
			"readTimeout":       cfg.Server.ReadTimeout.String(),
			"readHeaderTimeout": cfg.Server.ReadHeaderTimeout.String(),
			"writeTimeout":      cfg.Server.WriteTimeout.String(),
			"idleTimeout":       cfg.Server.IdleTimeout.String(),
			"shutdownTimeout":   cfg.Server.ShutdownTimeout.String(),
		},
		"trace": map[string]any{
			"enabled":    cfg.Trace.Enabled,
			"exporter":   cfg.Trace.Exporter,
			"endpoint":   cfg.Trace.Endpoint,
			"sampleRate": cfg.Trace.SampleRate,
		},
	}
}
