// Package batch loads YAML manifests describing several resize jobs.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

var ErrManifest = errors.New("invalid batch manifest")

// Job is a single resize: Scale is an arithmetic expression ("2", "1/2").
type Job struct {
	Scale  string `yaml:"scale,omitempty"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type Manifest struct {
	Scale string `yaml:"scale,omitempty"` // Default for jobs without one
	Jobs  []Job  `yaml:"jobs"`
}

// Load reads the manifest at path. Relative job paths are resolved
// against the manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest '%s': %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range m.Jobs {
		m.Jobs[i].Input = resolve(dir, m.Jobs[i].Input)
		m.Jobs[i].Output = resolve(dir, m.Jobs[i].Output)
	}
	return m, nil
}

// Parse decodes and checks a manifest. Jobs missing a scale inherit the
// manifest default.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}
	if len(m.Jobs) == 0 {
		return nil, fmt.Errorf("%w: no jobs", ErrManifest)
	}

	for i := range m.Jobs {
		job := &m.Jobs[i]
		if strings.TrimSpace(job.Scale) == "" {
			job.Scale = m.Scale
		}
		switch {
		case strings.TrimSpace(job.Scale) == "":
			return nil, fmt.Errorf("%w: job %d has no scale and there is no default", ErrManifest, i+1)
		case job.Input == "":
			return nil, fmt.Errorf("%w: job %d is missing 'input'", ErrManifest, i+1)
		case job.Output == "":
			return nil, fmt.Errorf("%w: job %d is missing 'output'", ErrManifest, i+1)
		}
	}
	return &m, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
