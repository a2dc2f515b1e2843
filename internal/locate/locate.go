// Package locate maps build-target UIDs and plain command names to
// absolute, existing executable paths.
//
// Resolution order follows the build system's contract: a known target is
// looked up in the registry and anchored at the project base directory
// (with multi-configuration placeholder substitution); anything else falls
// back to a system PATH search. A miss is never an error, only an absent
// result.
package locate

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/targetrun/targetrun/internal/target"
	"github.com/targetrun/targetrun/internal/which"
)

// IntDirToken is the placeholder multi-configuration build systems leave
// in registry paths when the active configuration is unknown at
// generation time. The spelling is a contract with the build-output
// layout.
const IntDirToken = "$(IntDir)"

// BuildConfigs are the conventional configuration directory names tried
// when substituting IntDirToken, in preference order.
var BuildConfigs = [4]string{"Release", "Debug", "RelWithDebInfo", "MinSizeRel"}

// Locator resolves executables against a target registry and the system
// search path. The zero value locates plain commands on $PATH only.
type Locator struct {
	// BaseDir anchors relative registry paths, typically the directory
	// holding the generated registry manifest.
	BaseDir string

	// Finder performs the PATH search for non-target commands.
	// Nil means which.PathFinder{}.
	Finder which.Finder
}

// ExecPath resolves name to the absolute path of an executable file.
//
// An empty name resolves to the currently running executable (the
// "describe myself" case used for banner output). A name matching a known
// target resolves through the registry; anything else is searched on
// $PATH. The second return value is false when nothing was found.
func (l *Locator) ExecPath(name, prefix string, reg target.Registry) (string, bool) {
	if name == "" {
		return selfPath()
	}
	if target.IsTarget(name, prefix, reg) {
		uid := target.ParseUID(target.ResolveUID(name, prefix, reg))
		rel, ok := uid.Path(reg)
		if !ok {
			return "", false
		}
		path := rel
		if !filepath.IsAbs(path) {
			path = filepath.Join(l.BaseDir, path)
		}
		return substituteIntDir(filepath.Clean(path)), true
	}
	path, err := l.finder().Find(name)
	if err != nil {
		// A plain miss is simply an absent result; anything else (a
		// permission fault, say) is still a miss to the caller but
		// worth a trace.
		if !errors.Is(err, which.ErrNotFound) {
			slog.Debug("path_lookup_failed", "name", name, "error", err)
		}
		return "", false
	}
	return path, true
}

// ExecName returns the file name of the located executable, with the
// platform's executable suffix stripped where applicable.
func (l *Locator) ExecName(name, prefix string, reg target.Registry) (string, bool) {
	path, ok := l.ExecPath(name, prefix, reg)
	if !ok {
		return "", false
	}
	base := filepath.Base(path)
	if runtime.GOOS == "windows" {
		base = stripExecSuffix(base)
	}
	return base, true
}

// ExecDir returns the directory containing the located executable.
func (l *Locator) ExecDir(name, prefix string, reg target.Registry) (string, bool) {
	path, ok := l.ExecPath(name, prefix, reg)
	if !ok {
		return "", false
	}
	return filepath.Dir(path), true
}

func (l *Locator) finder() which.Finder {
	if l.Finder != nil {
		return l.Finder
	}
	return which.PathFinder{}
}

// substituteIntDir tries each conventional configuration directory and
// keeps the first substitution naming an existing regular file. When no
// configuration has been built the token is removed outright, yielding a
// best-effort (possibly nonexistent) path.
func substituteIntDir(path string) string {
	if !strings.Contains(path, IntDirToken) {
		return path
	}
	for _, cfg := range BuildConfigs {
		candidate := strings.ReplaceAll(path, IntDirToken, cfg)
		if isRegularFile(candidate) {
			return candidate
		}
	}
	return filepath.Clean(strings.ReplaceAll(path, IntDirToken, ""))
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// selfPath returns the absolute, symlink-resolved path of the running
// program.
func selfPath() (string, bool) {
	exe, err := os.Executable()
	if err != nil {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, true
}

func stripExecSuffix(name string) string {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".exe") || strings.HasSuffix(lower, ".com") {
		return name[:len(name)-4]
	}
	return name
}
