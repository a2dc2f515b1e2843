package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/targetrun/targetrun/internal/locate"
	"github.com/targetrun/targetrun/internal/target"
)

func writeExec(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestRunAll_AllResolvable(t *testing.T) {
	base := t.TempDir()
	writeExec(t, filepath.Join(base, "tool", "tool"))

	man := &target.Manifest{
		Namespace: "proj",
		BaseDir:   base,
		Targets:   target.Registry{"proj.tool": "tool/tool"},
	}
	result := RunAll(man, &locate.Locator{BaseDir: base})

	if !result.Passed {
		t.Error("result not passed")
	}
	for _, check := range result.Checks {
		if check.Warning {
			t.Errorf("unexpected warning: %s", check.String())
		}
	}
}

func TestRunAll_MissingTargetWarns(t *testing.T) {
	base := t.TempDir()
	man := &target.Manifest{
		Namespace: "proj",
		BaseDir:   base,
		Targets:   target.Registry{"proj.ghost": "nope/ghost"},
	}
	result := RunAll(man, &locate.Locator{BaseDir: base})

	if !result.Passed {
		t.Error("missing build outputs must warn, not fail")
	}
	found := false
	for _, check := range result.Checks {
		if check.Name == "targets" && check.Warning && strings.Contains(check.Message, "proj.ghost") {
			found = true
		}
	}
	if !found {
		t.Errorf("no warning names the missing target: %+v", result.Checks)
	}
}

func TestRunAll_EmptyRegistry(t *testing.T) {
	result := RunAll(&target.Manifest{}, &locate.Locator{})
	if !result.Passed {
		t.Error("empty registry must pass (PATH-only mode)")
	}
}

func TestRunAll_ForeignNamespaceWarns(t *testing.T) {
	man := &target.Manifest{
		Namespace: "proj",
		Targets: target.Registry{
			"proj.tool":  "x",
			"other.tool": "y",
		},
	}
	result := RunAll(man, &locate.Locator{})

	found := false
	for _, check := range result.Checks {
		if check.Name == "namespace" && check.Warning {
			found = true
		}
	}
	if !found {
		t.Error("foreign namespace key did not warn")
	}
}

func TestCheckString(t *testing.T) {
	testCases := []struct {
		check  Check
		prefix string
	}{
		{Check{Name: "a", Passed: true, Message: "ok"}, "  ✓"},
		{Check{Name: "b", Passed: true, Warning: true, Message: "hm"}, "  ⚠"},
		{Check{Name: "c", Passed: false, Message: "bad"}, "  ✗"},
	}

	for _, tc := range testCases {
		if got := tc.check.String(); !strings.HasPrefix(got, tc.prefix) {
			t.Errorf("String() = %q, want prefix %q", got, tc.prefix)
		}
	}
}
