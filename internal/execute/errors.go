package execute

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInvocation reports an invocation that is neither an
	// argument vector nor a command-line string, or that failed to split.
	ErrInvalidInvocation = errors.New("execute: invalid invocation")

	// ErrEmptyCommand reports an invocation with no arguments at all.
	ErrEmptyCommand = errors.New("execute: no command specified")

	// ErrCommandNotFound reports that the first argument resolved to no
	// executable. This is a pre-flight failure, raised regardless of
	// Options.AllowFailure.
	ErrCommandNotFound = errors.New("execute: command not found")
)

// ExecError describes a command execution that failed, either because the
// child could not be run (Err is the underlying cause) or because it
// exited non-zero (Status holds the exit status).
type ExecError struct {
	Command    string // fully quoted command line
	Status     int    // exit status; 0 when the failure precedes exit
	Err        error  // underlying cause; nil for a plain non-zero exit
	StderrTail []string
}

func (e *ExecError) Error() string {
	var b strings.Builder
	if e.Err != nil {
		fmt.Fprintf(&b, "%s: %v", e.Command, e.Err)
	} else {
		fmt.Fprintf(&b, "command failed with status %d: %s", e.Status, e.Command)
	}
	for _, line := range e.StderrTail {
		b.WriteString("\n\t")
		b.WriteString(line)
	}
	return b.String()
}

func (e *ExecError) Unwrap() error { return e.Err }
