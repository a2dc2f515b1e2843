package config

import (
	"flag"
	"fmt"
	"io"
)

// ParseFlags parses command-line flags from args (usually os.Args[1:])
// and returns the Config together with the remaining arguments, which
// form the command to run.
func ParseFlags(args []string, errOut io.Writer) (*Config, []string, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("targetrun", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() { printUsage(fs, errOut) }

	// Resolution
	fs.StringVar(&cfg.ManifestPath, "manifest", cfg.ManifestPath, "Target registry manifest (YAML)")
	fs.StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "Namespace prefix for unqualified target names")
	fs.StringVar(&cfg.BaseDir, "base-dir", cfg.BaseDir, "Base directory for relative registry paths")

	// Execution
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Suppress streaming of child stdout")
	fs.BoolVar(&cfg.Capture, "capture", cfg.Capture, "Capture child stdout and print it after exit")
	fs.BoolVar(&cfg.AllowFailure, "allow-failure", cfg.AllowFailure, "Report non-zero exit instead of failing")
	fs.IntVar(&cfg.Verbose, "v", cfg.Verbose, "Verbosity level (>0 echoes the command line)")
	fs.BoolVar(&cfg.Simulate, "simulate", cfg.Simulate, "Print the command line without running it")

	// Batch
	fs.StringVar(&cfg.RunfilePath, "runfile", cfg.RunfilePath, "Run a YAML list of jobs instead of a single command")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Concurrent jobs in batch mode")
	fs.BoolVar(&cfg.TUIEnabled, "tui", cfg.TUIEnabled, "Live progress view in batch mode")

	// Observability
	fs.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Prometheus metrics address (empty = disabled)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `Log format: "text" or "json"`)
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	// Diagnostics
	fs.BoolVar(&cfg.SkipPreflight, "skip-preflight", cfg.SkipPreflight, "Skip preflight checks")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `targetrun - resolve and run build-target executables

Usage:
  targetrun [flags] <target-or-command> [args...]
  targetrun [flags] -runfile jobs.yaml

Resolution Flags:
`)
	printFlagCategory(fs, w, []string{"manifest", "prefix", "base-dir"})

	fmt.Fprintf(w, "\nExecution:\n")
	printFlagCategory(fs, w, []string{"quiet", "capture", "allow-failure", "v", "simulate"})

	fmt.Fprintf(w, "\nBatch Mode:\n")
	printFlagCategory(fs, w, []string{"runfile", "concurrency", "tui"})

	fmt.Fprintf(w, "\nObservability:\n")
	printFlagCategory(fs, w, []string{"metrics", "log-format", "log-level"})

	fmt.Fprintf(w, "\nDiagnostics:\n")
	printFlagCategory(fs, w, []string{"skip-preflight"})

	fmt.Fprintf(w, `
Examples:
  # Run a build target by its short name
  targetrun -manifest build/targets.yaml tool -- --help

  # Show what would run, without running it
  targetrun -manifest build/targets.yaml -simulate tool

  # Run a job list with a live view
  targetrun -manifest build/targets.yaml -runfile jobs.yaml -concurrency 4 -tui

`)
}

// printFlagCategory prints the named flags with their usage, preserving
// the order given.
func printFlagCategory(fs *flag.FlagSet, w io.Writer, names []string) {
	for _, name := range names {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		fmt.Fprintf(w, "  -%-14s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			fmt.Fprintf(w, " (default %s)", f.DefValue)
		}
		fmt.Fprintln(w)
	}
}
