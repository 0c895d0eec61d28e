package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Installer materializes a manifest's git dependencies into a cache
// directory and records the resolved commits in a lockfile.
type Installer struct {
	manifest *Manifest
	cacheDir string
}

// NewInstaller returns an installer caching under cacheDir.
func NewInstaller(manifest *Manifest, cacheDir string) *Installer {
	return &Installer{manifest: manifest, cacheDir: cacheDir}
}

// DepDir is where a named dependency is checked out.
func (ins *Installer) DepDir(name string) string {
	return filepath.Join(ins.cacheDir, "deps", name)
}

// Install clones any missing dependency, checks out the pinned revision,
// and updates the lockfile. It reports whether the lockfile changed and
// returns one log line per dependency.
func (ins *Installer) Install(lock *Lockfile) (bool, []string, error) {
	changed := false
	var logs []string
	for _, name := range ins.manifest.DependencyNames() {
		spec := ins.manifest.Dependencies[name]
		rev, err := ins.ensure(name, spec, false)
		if err != nil {
			return changed, logs, fmt.Errorf("dependency %q: %w", name, err)
		}
		if lock.SetPackage(LockedPackage{Name: name, Git: spec.Git, Rev: rev}) {
			changed = true
		}
		logs = append(logs, fmt.Sprintf("resolved %s => %s", name, rev))
	}
	return changed, logs, nil
}

// Update refetches the named dependencies (all of them when names is empty)
// and re-resolves their revisions.
func (ins *Installer) Update(lock *Lockfile, names []string) (bool, []string, error) {
	targets := names
	if len(targets) == 0 {
		targets = ins.manifest.DependencyNames()
	}
	changed := false
	var logs []string
	for _, name := range targets {
		spec, ok := ins.manifest.Dependencies[name]
		if !ok {
			return changed, logs, fmt.Errorf("dependency %q not declared in manifest", name)
		}
		rev, err := ins.ensure(name, spec, true)
		if err != nil {
			return changed, logs, fmt.Errorf("dependency %q: %w", name, err)
		}
		if lock.SetPackage(LockedPackage{Name: name, Git: spec.Git, Rev: rev}) {
			changed = true
		}
		logs = append(logs, fmt.Sprintf("updated %s => %s", name, rev))
	}
	return changed, logs, nil
}

// ensure clones or opens the dependency repository, optionally fetches, and
// checks out the spec's revision (or leaves HEAD). It returns the resolved
// commit hash.
func (ins *Installer) ensure(name string, spec *DependencySpec, refetch bool) (string, error) {
	dest := ins.DepDir(name)

	var repo *git.Repository
	if _, err := os.Stat(filepath.Join(dest, ".git")); err == nil {
		repo, err = git.PlainOpen(dest)
		if err != nil {
			return "", fmt.Errorf("open cached checkout: %w", err)
		}
		if refetch {
			err := repo.Fetch(&git.FetchOptions{Force: true, Tags: git.AllTags})
			if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
				return "", fmt.Errorf("fetch: %w", err)
			}
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return "", fmt.Errorf("create cache dir: %w", err)
		}
		repo, err = git.PlainClone(dest, false, &git.CloneOptions{URL: spec.Git})
		if err != nil {
			return "", fmt.Errorf("clone %s: %w", spec.Git, err)
		}
	}

	var hash plumbing.Hash
	if spec.Rev != "" {
		resolved, err := repo.ResolveRevision(plumbing.Revision(spec.Rev))
		if err != nil {
			return "", fmt.Errorf("resolve revision %q: %w", spec.Rev, err)
		}
		hash = *resolved
		worktree, err := repo.Worktree()
		if err != nil {
			return "", fmt.Errorf("worktree: %w", err)
		}
		if err := worktree.Checkout(&git.CheckoutOptions{Hash: hash, Force: true}); err != nil {
			return "", fmt.Errorf("checkout %s: %w", spec.Rev, err)
		}
	} else {
		head, err := repo.Head()
		if err != nil {
			return "", fmt.Errorf("resolve HEAD: %w", err)
		}
		hash = head.Hash()
	}
	return hash.String(), nil
}
