package execute

import "fmt"

// Invocation is a command line in exactly one of two representations: a
// structured argument vector or a single quoted string. The zero value is
// invalid; use Argv or CommandLine.
type Invocation struct {
	kind invocationKind
	argv []string
	line string
}

type invocationKind int

const (
	invocationInvalid invocationKind = iota
	invocationArgv
	invocationLine
)

// Argv builds an invocation from discrete arguments. Elements are
// stringified with fmt.Sprint, so numeric or Stringer-typed values are
// permitted. The first element is the command name or path.
func Argv(args ...any) Invocation {
	argv := make([]string, len(args))
	for i, a := range args {
		argv[i] = fmt.Sprint(a)
	}
	return Invocation{kind: invocationArgv, argv: argv}
}

// Strings builds an invocation from an argument vector that is already
// textual.
func Strings(args []string) Invocation {
	argv := make([]string, len(args))
	copy(argv, args)
	return Invocation{kind: invocationArgv, argv: argv}
}

// CommandLine builds an invocation from a single quoted string. It is
// split with shell-style quoting rules when the invocation runs.
func CommandLine(line string) Invocation {
	return Invocation{kind: invocationLine, line: line}
}

// Command returns the command name or path the invocation would run, or
// "" when the invocation is invalid or empty.
func (inv Invocation) Command() string {
	args, err := inv.args()
	if err != nil || len(args) == 0 {
		return ""
	}
	return args[0]
}

// args normalizes the invocation into an argument vector.
func (inv Invocation) args() ([]string, error) {
	switch inv.kind {
	case invocationArgv:
		argv := make([]string, len(inv.argv))
		copy(argv, inv.argv)
		return argv, nil
	case invocationLine:
		argv, err := Split(inv.line)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInvocation, err)
		}
		return argv, nil
	default:
		return nil, ErrInvalidInvocation
	}
}
