// Package preflight provides startup validation checks.
package preflight

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/targetrun/targetrun/internal/locate"
	"github.com/targetrun/targetrun/internal/target"
)

// Check represents the result of a single preflight check.
type Check struct {
	Name    string // Name of the check
	Passed  bool   // Whether the check passed
	Warning bool   // True if it's a warning (non-fatal)
	Message string // Additional context
}

// Result holds the results of all preflight checks.
type Result struct {
	Checks []Check
	Passed bool
}

// String returns a human-readable summary of the check.
func (c Check) String() string {
	status := "✓"
	if !c.Passed {
		status = "✗"
	} else if c.Warning {
		status = "⚠"
	}
	return fmt.Sprintf("  %s %s: %s", status, c.Name, c.Message)
}

// RunAll executes all preflight checks against a registry manifest.
func RunAll(man *target.Manifest, loc *locate.Locator) *Result {
	result := &Result{
		Checks: make([]Check, 0, 3),
		Passed: true,
	}

	regCheck := checkRegistry(man)
	result.Checks = append(result.Checks, regCheck)
	if !regCheck.Passed {
		result.Passed = false
	}

	tgtCheck := checkTargets(man, loc)
	result.Checks = append(result.Checks, tgtCheck)
	if !tgtCheck.Passed {
		result.Passed = false
	}

	nsCheck := checkNamespace(man)
	result.Checks = append(result.Checks, nsCheck)
	// Namespace mismatches are warnings only.

	return result
}

// checkRegistry verifies the registry is usable at all.
func checkRegistry(man *target.Manifest) Check {
	if man == nil || len(man.Targets) == 0 {
		return Check{
			Name:    "registry",
			Passed:  true,
			Warning: true,
			Message: "no targets registered (PATH search only)",
		}
	}
	return Check{
		Name:    "registry",
		Passed:  true,
		Message: fmt.Sprintf("%d targets, base dir %s", len(man.Targets), man.BaseDir),
	}
}

// checkTargets resolves every registry entry. Missing files are a warning
// only: a target that has not been built yet is normal.
func checkTargets(man *target.Manifest, loc *locate.Locator) Check {
	if man == nil || len(man.Targets) == 0 {
		return Check{Name: "targets", Passed: true, Message: "nothing to resolve"}
	}

	var missing []string
	for uid := range man.Targets {
		path, ok := loc.ExecPath(uid, man.Namespace, man.Targets)
		if !ok || !isRegularFile(path) {
			missing = append(missing, uid)
		}
	}
	if len(missing) == 0 {
		return Check{
			Name:    "targets",
			Passed:  true,
			Message: fmt.Sprintf("all %d targets resolvable", len(man.Targets)),
		}
	}
	sort.Strings(missing)
	return Check{
		Name:    "targets",
		Passed:  true,
		Warning: true,
		Message: fmt.Sprintf("%d of %d not resolvable (not built yet?): %s",
			len(missing), len(man.Targets), strings.Join(missing, ", ")),
	}
}

// checkNamespace flags registry keys that do not live under the
// manifest's own namespace.
func checkNamespace(man *target.Manifest) Check {
	if man == nil || man.Namespace == "" {
		return Check{Name: "namespace", Passed: true, Message: "no namespace configured"}
	}

	foreign := 0
	for uid := range man.Targets {
		if uid != man.Namespace && !strings.HasPrefix(uid, man.Namespace+target.Separator) {
			foreign++
		}
	}
	if foreign > 0 {
		return Check{
			Name:    "namespace",
			Passed:  true,
			Warning: true,
			Message: fmt.Sprintf("%d targets outside namespace %q", foreign, man.Namespace),
		}
	}
	return Check{
		Name:    "namespace",
		Passed:  true,
		Message: fmt.Sprintf("all targets under %q", man.Namespace),
	}
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// PrintResults prints the preflight check results.
func PrintResults(w io.Writer, result *Result) {
	fmt.Fprintln(w, "Preflight checks:")
	for _, check := range result.Checks {
		fmt.Fprintln(w, check.String())
	}
	fmt.Fprintln(w)
}
