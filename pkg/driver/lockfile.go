package driver

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// LockfileName sits next to rift.yml and pins resolved dependency revisions.
const LockfileName = "rift.lock"

// Lockfile records the exact commits the installer resolved.
type Lockfile struct {
	Path     string          `yaml:"-"`
	Root     string          `yaml:"root"`
	Tool     string          `yaml:"tool"`
	Packages []LockedPackage `yaml:"packages"`
}

// LockedPackage pins one dependency to a commit.
type LockedPackage struct {
	Name string `yaml:"name"`
	Git  string `yaml:"git"`
	Rev  string `yaml:"rev"`
}

// NewLockfile returns an empty lockfile for the named root package.
func NewLockfile(root, tool string) *Lockfile {
	return &Lockfile{Root: root, Tool: tool}
}

// LoadLockfile reads a rift.lock file.
func LoadLockfile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lock Lockfile
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("parse lockfile: %w", err)
	}
	lock.Path = path
	return &lock, nil
}

// WriteLockfile serializes the lockfile with deterministic package order.
func WriteLockfile(lock *Lockfile, path string) error {
	sort.Slice(lock.Packages, func(a, b int) bool {
		return lock.Packages[a].Name < lock.Packages[b].Name
	})
	data, err := yaml.Marshal(lock)
	if err != nil {
		return fmt.Errorf("encode lockfile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write lockfile: %w", err)
	}
	lock.Path = path
	return nil
}

// Package looks up a locked entry by name.
func (l *Lockfile) Package(name string) (LockedPackage, bool) {
	for _, pkg := range l.Packages {
		if pkg.Name == name {
			return pkg, true
		}
	}
	return LockedPackage{}, false
}

// SetPackage inserts or replaces a locked entry, reporting whether anything
// changed.
func (l *Lockfile) SetPackage(entry LockedPackage) bool {
	for i, pkg := range l.Packages {
		if pkg.Name == entry.Name {
			if pkg == entry {
				return false
			}
			l.Packages[i] = entry
			return true
		}
	}
	l.Packages = append(l.Packages, entry)
	return true
}
