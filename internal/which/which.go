// Package which locates commands on the system search path.
package which

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
)

// ErrNotFound reports that a command is not present on the search path.
// It is distinguishable (via errors.Is) from other lookup failures such
// as permission problems.
var ErrNotFound = errors.New("command not found")

// Finder resolves a command name to an absolute executable path.
type Finder interface {
	Find(name string) (string, error)
}

// PathFinder searches the directories listed in $PATH.
type PathFinder struct{}

// Find returns the absolute path of the named command, or an error
// wrapping ErrNotFound when no executable by that name is on $PATH.
func (PathFinder) Find(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("look up %s: %w", name, err)
	}
	// LookPath can return a relative path when $PATH contains relative
	// entries; callers are promised an absolute one.
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("look up %s: %w", name, err)
	}
	return abs, nil
}
