// Package main provides the targetrun CLI entry point.
//
// targetrun resolves build-target names (or plain command names) to
// executable paths and runs them, either as a single command or as a
// batch of jobs from a runfile.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/targetrun/targetrun/internal/banner"
	"github.com/targetrun/targetrun/internal/batch"
	"github.com/targetrun/targetrun/internal/config"
	"github.com/targetrun/targetrun/internal/execute"
	"github.com/targetrun/targetrun/internal/locate"
	"github.com/targetrun/targetrun/internal/logging"
	"github.com/targetrun/targetrun/internal/metrics"
	"github.com/targetrun/targetrun/internal/preflight"
	"github.com/targetrun/targetrun/internal/stats"
	"github.com/targetrun/targetrun/internal/target"
	"github.com/targetrun/targetrun/internal/tui"
	"github.com/targetrun/targetrun/internal/which"
)

// Set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/targetrun
var (
	version   = "dev"
	copyright = ""
	license   = ""
	contact   = ""
)

func main() {
	os.Exit(run())
}

func run() int {
	// Handle banner flags early (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-version", "--version", "version":
			if err := banner.PrintVersion(os.Stdout, "targetrun", banner.Info{
				Version:   version,
				Copyright: copyright,
				License:   license,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			return 0
		case "-contact", "--contact", "contact":
			banner.PrintContact(os.Stdout, contact)
			return 0
		}
	}

	cfg, args, err := config.ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		return 2
	}

	var logger *slog.Logger
	if cfg.TUIEnabled {
		// Logs would tear the live view apart.
		logger = logging.NewWithWriter(io.Discard, cfg.LogFormat, slog.LevelInfo)
	} else {
		logger = logging.New(cfg.LogFormat, cfg.LogLevel, cfg.Verbose > 1)
	}
	logging.SetDefault(logger)

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 2
	}

	manifest, err := loadManifest(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	locator := &locate.Locator{
		BaseDir: manifest.BaseDir,
		Finder:  which.PathFinder{},
	}
	if cfg.BaseDir != "" {
		locator.BaseDir = cfg.BaseDir
	}
	prefix := manifest.Namespace
	if cfg.Prefix != "" {
		prefix = cfg.Prefix
	}

	if cfg.ManifestPath != "" && !cfg.SkipPreflight && !cfg.TUIEnabled {
		result := preflight.RunAll(manifest, locator)
		if cfg.Verbose > 0 || !result.Passed {
			preflight.PrintResults(os.Stderr, result)
		}
		if !result.Passed {
			return 1
		}
	}

	opts := execute.Options{
		Quiet:         cfg.Quiet,
		CaptureStdout: cfg.Capture,
		AllowFailure:  cfg.AllowFailure,
		Verbose:       cfg.Verbose,
		Simulate:      cfg.Simulate,
		Prefix:        prefix,
		Registry:      manifest.Targets,
		Locator:       locator,
	}

	if cfg.RunfilePath != "" {
		return runBatch(cfg, opts, logger)
	}
	return runSingle(cfg, opts, args)
}

// runSingle executes the command formed by the remaining arguments.
func runSingle(cfg *config.Config, opts execute.Options, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no command given (see -h)")
		return 2
	}

	result, err := execute.Run(execute.Strings(args), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if result.Status != 0 {
			return result.Status
		}
		return 1
	}
	if cfg.Capture {
		fmt.Print(result.Stdout)
	}
	return result.Status
}

// runBatch executes a runfile, optionally behind the live view and with
// a metrics endpoint.
func runBatch(cfg *config.Config, opts execute.Options, logger *slog.Logger) int {
	jobs, err := batch.LoadRunfile(cfg.RunfilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	var collector *metrics.Collector
	var server *metrics.Server
	if cfg.MetricsAddr != "" {
		collector = metrics.NewCollector(version)
		server = metrics.NewServer(cfg.MetricsAddr, collector, logger)
		server.Start()
	}

	aggregator := stats.NewAggregator()
	runner := &batch.Runner{
		Options:     opts,
		Concurrency: cfg.Concurrency,
		Logger:      logger,
		Aggregator:  aggregator,
		Metrics:     collector,
	}

	var failed int
	if cfg.TUIEnabled {
		failed = runBatchTUI(runner, jobs)
	} else {
		_, failed = runner.Run(jobs)
	}

	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		server.Shutdown(ctx)
		cancel()
	}

	fmt.Print(stats.FormatSummary(aggregator.Snapshot(), stats.SummaryConfig{
		RunfilePath: cfg.RunfilePath,
		Concurrency: cfg.Concurrency,
		MetricsAddr: cfg.MetricsAddr,
	}))
	if collector != nil && cfg.Verbose > 0 {
		fmt.Println()
		collector.DumpText(os.Stdout)
	}

	if failed > 0 {
		return 1
	}
	return 0
}

// runBatchTUI runs the batch behind the live progress view. Child stdout
// must stay off the terminal while the view owns it.
func runBatchTUI(runner *batch.Runner, jobs []batch.Job) int {
	runner.Options.Quiet = true
	runner.Options.Stderr = io.Discard
	runner.Options.Stdout = io.Discard

	names := make([]string, len(jobs))
	for i, job := range jobs {
		names[i] = job.Name
	}
	program := tea.NewProgram(tui.New(names), tea.WithAltScreen())

	runner.Callbacks = batch.Callbacks{
		OnStart: func(i int, _ batch.Job) {
			program.Send(tui.JobStartedMsg{Index: i})
		},
		OnDone: func(i int, res batch.JobResult) {
			program.Send(tui.JobDoneMsg{Index: i, Result: res})
		},
	}

	failedCh := make(chan int, 1)
	go func() {
		_, failed := runner.Run(jobs)
		failedCh <- failed
		program.Send(tui.BatchDoneMsg{})
	}()

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
	}
	return <-failedCh
}

// loadManifest loads the registry manifest, or returns an empty one when
// no manifest was configured so resolution degrades to PATH search.
func loadManifest(cfg *config.Config) (*target.Manifest, error) {
	if cfg.ManifestPath == "" {
		return &target.Manifest{}, nil
	}
	manifest, err := target.LoadManifest(cfg.ManifestPath)
	if err != nil {
		return nil, err
	}
	return manifest, nil
}
