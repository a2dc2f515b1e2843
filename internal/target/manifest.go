package target

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk description of a project's target registry,
// generated by the build system alongside the build outputs.
//
//	namespace: myproj
//	base_dir: ../bin
//	targets:
//	  myproj.tool: tool/$(IntDir)/tool
type Manifest struct {
	Namespace string   `yaml:"namespace"`
	BaseDir   string   `yaml:"base_dir,omitempty"`
	Targets   Registry `yaml:"targets"`
}

// ParseManifest decodes a manifest document. Unknown fields are rejected
// so a typo in a generated manifest surfaces instead of silently dropping
// targets.
func ParseManifest(input []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(strings.NewReader(string(input)))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest reads and parses a manifest file. A relative base_dir is
// resolved against the manifest's own directory, so the manifest can move
// together with the build tree it describes.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve manifest dir: %w", err)
	}
	if m.BaseDir == "" {
		m.BaseDir = dir
	} else if !filepath.IsAbs(m.BaseDir) {
		m.BaseDir = filepath.Join(dir, m.BaseDir)
	}
	return m, nil
}

func (m *Manifest) validate() error {
	if m.Namespace != "" && strings.HasPrefix(m.Namespace, Separator) {
		return errors.New("manifest namespace must not be rooted")
	}
	for uid, path := range m.Targets {
		if uid == "" {
			return errors.New("manifest contains an empty target uid")
		}
		if path == "" {
			return fmt.Errorf("target %q has an empty path", uid)
		}
	}
	return nil
}
