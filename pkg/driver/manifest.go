// Package driver holds the project-level plumbing around the interpreter:
// the rift.yml manifest, the rift.lock lockfile, and the git dependency
// installer backing `rift deps`.
package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file the driver searches for when no script is named.
const ManifestName = "rift.yml"

// ErrManifestNotFound is returned by FindManifest when no rift.yml exists in
// the start directory or any ancestor.
var ErrManifestNotFound = errors.New("rift.yml not found")

// Manifest represents the parsed contents of rift.yml.
type Manifest struct {
	Path         string
	Name         string
	Version      string
	Entry        string
	Dependencies map[string]*DependencySpec
}

// DependencySpec describes a git-sourced script dependency.
type DependencySpec struct {
	Git string
	Rev string
}

type rawManifest struct {
	Name         string                    `yaml:"name"`
	Version      string                    `yaml:"version"`
	Entry        string                    `yaml:"entry"`
	Dependencies map[string]*rawDependency `yaml:"dependencies"`
}

type rawDependency struct {
	Git string `yaml:"git"`
	Rev string `yaml:"rev"`
}

// LoadManifest reads and validates a rift.yml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var raw rawManifest
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return nil, fmt.Errorf("%s: missing package name", filepath.Base(path))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	manifest := &Manifest{
		Path:         abs,
		Name:         strings.TrimSpace(raw.Name),
		Version:      strings.TrimSpace(raw.Version),
		Entry:        strings.TrimSpace(raw.Entry),
		Dependencies: make(map[string]*DependencySpec),
	}
	if manifest.Entry == "" {
		manifest.Entry = "main.rf"
	}
	for name, dep := range raw.Dependencies {
		if dep == nil || strings.TrimSpace(dep.Git) == "" {
			return nil, fmt.Errorf("dependency %q: missing git source", name)
		}
		manifest.Dependencies[name] = &DependencySpec{
			Git: strings.TrimSpace(dep.Git),
			Rev: strings.TrimSpace(dep.Rev),
		}
	}
	return manifest, nil
}

// EntryPath resolves the manifest's entry script relative to the manifest.
func (m *Manifest) EntryPath() string {
	if filepath.IsAbs(m.Entry) {
		return filepath.Clean(m.Entry)
	}
	return filepath.Join(filepath.Dir(m.Path), filepath.FromSlash(m.Entry))
}

// DependencyNames returns the declared dependency names in sorted order.
func (m *Manifest) DependencyNames() []string {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindManifest walks from start up to the filesystem root looking for
// rift.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve manifest search path %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}
