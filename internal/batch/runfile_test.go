package batch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseRunfile(t *testing.T) {
	data := []byte(`jobs:
  - name: unit tests
    argv: [myproj.testdriver, --fast]
  - command: doxygen "Doxyfile with spaces"
`)
	jobs, err := ParseRunfile(data)
	if err != nil {
		t.Fatalf("ParseRunfile: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	if jobs[0].Name != "unit tests" {
		t.Errorf("jobs[0].Name = %q, want %q", jobs[0].Name, "unit tests")
	}
	if jobs[1].Name != "job-2" {
		t.Errorf("unnamed job got %q, want job-2", jobs[1].Name)
	}
}

func TestParseRunfile_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		data    string
		errPart string
	}{
		{
			"empty document",
			"jobs: []\n",
			"no jobs",
		},
		{
			"argv and command together",
			"jobs:\n  - name: both\n    argv: [a]\n    command: b\n",
			"mutually exclusive",
		},
		{
			"neither argv nor command",
			"jobs:\n  - name: bare\n",
			"needs argv or command",
		},
		{
			"unknown field",
			"jobs:\n  - name: x\n    argv: [a]\n    shell: true\n",
			"shell",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRunfile([]byte(tc.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.errPart) {
				t.Errorf("error %q does not mention %q", err, tc.errPart)
			}
		})
	}
}

func TestLoadRunfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	if err := os.WriteFile(path, []byte("jobs:\n  - argv: [tool]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	jobs, err := LoadRunfile(path)
	if err != nil {
		t.Fatalf("LoadRunfile: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Name != "job-1" {
		t.Errorf("unexpected jobs: %+v", jobs)
	}

	if _, err := LoadRunfile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file did not error")
	}
}
