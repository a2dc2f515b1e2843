// Package execute runs executables resolved through the target registry
// or the system search path as child processes, with controlled output
// streaming, capture, and exit-status based failure reporting.
package execute

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/targetrun/targetrun/internal/locate"
	"github.com/targetrun/targetrun/internal/target"
)

// Options control a single Run call. The zero value runs the command,
// streams its stdout to the parent, and raises on non-zero exit.
type Options struct {
	// Quiet suppresses streaming of child stdout to the parent's stdout.
	Quiet bool

	// CaptureStdout accumulates child stdout text into Result.Stdout.
	CaptureStdout bool

	// AllowFailure reports a non-zero exit through Result.Status instead
	// of raising it. It does not apply to command-not-found, which is a
	// failure to even attempt execution.
	AllowFailure bool

	// Verbose > 0 echoes the fully quoted command line before running.
	// It does not affect the verbosity of the command itself.
	Verbose int

	// Simulate prints the command line and skips the actual spawn.
	Simulate bool

	// Prefix and Registry are forwarded to the locator for resolving the
	// first argument.
	Prefix   string
	Registry target.Registry

	// Locator overrides the default locator. Nil means a zero
	// locate.Locator (registry paths anchored at the working directory,
	// PATH search otherwise).
	Locator *locate.Locator

	// Stdout and Stderr receive the streamed child output; they default
	// to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Result is the outcome of a completed (or simulated) execution.
type Result struct {
	// Status is the child's exit status; 0 by convention means success,
	// and simulation always reports 0.
	Status int

	// Stdout holds the captured child stdout when CaptureStdout was set.
	Stdout string
}

// Run resolves the invocation's first argument to an absolute executable
// path, spawns the child process, and blocks until it terminates.
//
// Child stdout is streamed line by line: echoed to the parent unless
// Quiet, accumulated when CaptureStdout. Child stderr is forwarded to the
// parent's stderr after the child exits, unconditionally. Every exit path
// drains the child's streams and releases the process handle.
func Run(inv Invocation, opts Options) (Result, error) {
	args, err := inv.args()
	if err != nil {
		return Result{}, err
	}
	if len(args) == 0 {
		return Result{}, ErrEmptyCommand
	}

	loc := opts.Locator
	if loc == nil {
		loc = &locate.Locator{}
	}
	path, ok := loc.ExecPath(args[0], opts.Prefix, opts.Registry)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrCommandNotFound, args[0])
	}
	args[0] = path

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	cmdline := Quote(args)
	if opts.Verbose > 0 || opts.Simulate {
		marker := ""
		if opts.Simulate {
			marker = " (simulated)"
		}
		fmt.Fprintf(stdout, "$ %s%s\n", cmdline, marker)
	}
	if opts.Simulate {
		return Result{}, nil
	}

	return spawn(args, cmdline, opts, stdout, stderr)
}

func spawn(args []string, cmdline string, opts Options, stdout, stderr io.Writer) (Result, error) {
	cmd := exec.Command(args[0], args[1:]...)

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, &ExecError{Command: cmdline, Err: err}
	}

	var errBuf bytes.Buffer
	tail := newLineTail(stderrTailLines)
	cmd.Stderr = io.MultiWriter(&errBuf, tail)

	if err := cmd.Start(); err != nil {
		return Result{}, &ExecError{Command: cmdline, Err: err}
	}

	var capture strings.Builder
	var sinks []lineSink
	if opts.CaptureStdout {
		sinks = append(sinks, captureSink{b: &capture})
	}
	if !opts.Quiet {
		sinks = append(sinks, echoSink{w: stdout})
	}

	scanner := bufio.NewScanner(outPipe)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStdoutLine)
	for scanner.Scan() {
		line := scanner.Text()
		for _, sink := range sinks {
			sink.line(line)
		}
	}
	scanErr := scanner.Err()
	if scanErr != nil {
		// The scanner stopped mid-stream; keep draining so the child
		// never blocks on a full pipe.
		io.Copy(io.Discard, outPipe)
	}

	// Wait reaps the child and closes the pipes regardless of how the
	// stream reading went.
	waitErr := cmd.Wait()

	// Child stderr goes to the parent's stderr independent of Quiet.
	io.Copy(stderr, &errBuf)

	if scanErr != nil {
		return Result{}, &ExecError{Command: cmdline, Err: scanErr, StderrTail: tail.Lines()}
	}

	status := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return Result{}, &ExecError{Command: cmdline, Err: waitErr, StderrTail: tail.Lines()}
		}
		status = exitErr.ExitCode()
	}

	res := Result{Status: status}
	if opts.CaptureStdout {
		res.Stdout = capture.String()
	}
	if status != 0 && !opts.AllowFailure {
		return res, &ExecError{Command: cmdline, Status: status, StderrTail: tail.Lines()}
	}
	return res, nil
}
