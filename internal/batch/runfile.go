// Package batch runs a manifest of command invocations, collecting
// per-job results for the exit summary and the live progress view.
package batch

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/targetrun/targetrun/internal/execute"
)

// Job is one invocation in a batch run.
type Job struct {
	Name       string
	Invocation execute.Invocation
}

// jobSpec is the YAML shape of a job. Exactly one of argv and command
// must be set, mirroring the two invocation representations.
type jobSpec struct {
	Name    string   `yaml:"name"`
	Argv    []string `yaml:"argv,omitempty"`
	Command string   `yaml:"command,omitempty"`
}

type runfile struct {
	Jobs []jobSpec `yaml:"jobs"`
}

// LoadRunfile reads a YAML job list:
//
//	jobs:
//	  - name: unit tests
//	    argv: [myproj.testdriver, --fast]
//	  - name: docs
//	    command: doxygen "Doxyfile with spaces"
func LoadRunfile(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read runfile: %w", err)
	}
	return ParseRunfile(data)
}

// ParseRunfile decodes and validates a runfile document.
func ParseRunfile(data []byte) ([]Job, error) {
	var rf runfile
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&rf); err != nil {
		return nil, fmt.Errorf("decode runfile: %w", err)
	}
	if len(rf.Jobs) == 0 {
		return nil, fmt.Errorf("runfile has no jobs")
	}

	jobs := make([]Job, 0, len(rf.Jobs))
	for i, spec := range rf.Jobs {
		job, err := spec.toJob(i)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (s jobSpec) toJob(index int) (Job, error) {
	name := s.Name
	if name == "" {
		name = fmt.Sprintf("job-%d", index+1)
	}
	switch {
	case len(s.Argv) > 0 && s.Command != "":
		return Job{}, fmt.Errorf("job %q: argv and command are mutually exclusive", name)
	case len(s.Argv) > 0:
		return Job{Name: name, Invocation: execute.Strings(s.Argv)}, nil
	case s.Command != "":
		return Job{Name: name, Invocation: execute.CommandLine(s.Command)}, nil
	default:
		return Job{}, fmt.Errorf("job %q: needs argv or command", name)
	}
}
