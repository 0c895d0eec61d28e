package driver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// initFixtureRepo creates a git repository in dir with one committed file
// and returns its head commit hash.
func initFixtureRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lib.rf"), []byte("var READY = 1;\n"), 0o644); err != nil {
		t.Fatalf("write fixture file: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := worktree.Add("lib.rf"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	hash, err := worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Rift CLI",
			Email: "rift@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

func commitFixtureChange(t *testing.T, dir, contents string) string {
	t.Helper()
	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("PlainOpen: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lib.rf"), []byte(contents), 0o644); err != nil {
		t.Fatalf("write fixture file: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := worktree.Add("lib.rf"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	hash, err := worktree.Commit("update", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Rift CLI",
			Email: "rift@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

func TestInstallerClonesAndLocksHead(t *testing.T) {
	root := t.TempDir()
	depDir := filepath.Join(root, "utils-src")
	head := initFixtureRepo(t, depDir)

	manifest := &Manifest{
		Name: "app",
		Dependencies: map[string]*DependencySpec{
			"utils": {Git: depDir},
		},
	}
	cacheDir := filepath.Join(root, ".rift")
	installer := NewInstaller(manifest, cacheDir)
	lock := NewLockfile("app", "rift-cli test")

	changed, logs, err := installer.Install(lock)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !changed {
		t.Fatalf("expected lockfile change for a new dependency")
	}
	if len(logs) != 1 {
		t.Fatalf("logs = %v", logs)
	}
	pkg, ok := lock.Package("utils")
	if !ok || pkg.Rev != head {
		t.Fatalf("lock entry = %#v, want rev %s", pkg, head)
	}
	if _, err := os.Stat(filepath.Join(installer.DepDir("utils"), "lib.rf")); err != nil {
		t.Fatalf("dependency not materialized: %v", err)
	}
}

func TestInstallerPinsRevision(t *testing.T) {
	root := t.TempDir()
	depDir := filepath.Join(root, "utils-src")
	first := initFixtureRepo(t, depDir)
	commitFixtureChange(t, depDir, "var READY = 2;\n")

	manifest := &Manifest{
		Name: "app",
		Dependencies: map[string]*DependencySpec{
			"utils": {Git: depDir, Rev: first},
		},
	}
	installer := NewInstaller(manifest, filepath.Join(root, ".rift"))
	lock := NewLockfile("app", "rift-cli test")

	if _, _, err := installer.Install(lock); err != nil {
		t.Fatalf("Install: %v", err)
	}
	pkg, _ := lock.Package("utils")
	if pkg.Rev != first {
		t.Fatalf("rev = %s, want pinned %s", pkg.Rev, first)
	}
	data, err := os.ReadFile(filepath.Join(installer.DepDir("utils"), "lib.rf"))
	if err != nil {
		t.Fatalf("read checkout: %v", err)
	}
	if string(data) != "var READY = 1;\n" {
		t.Fatalf("checkout content = %q, want pinned revision content", data)
	}
}

func TestInstallerIsIdempotent(t *testing.T) {
	root := t.TempDir()
	depDir := filepath.Join(root, "utils-src")
	initFixtureRepo(t, depDir)

	manifest := &Manifest{
		Name: "app",
		Dependencies: map[string]*DependencySpec{
			"utils": {Git: depDir},
		},
	}
	installer := NewInstaller(manifest, filepath.Join(root, ".rift"))
	lock := NewLockfile("app", "rift-cli test")

	if _, _, err := installer.Install(lock); err != nil {
		t.Fatalf("first Install: %v", err)
	}
	changed, _, err := installer.Install(lock)
	if err != nil {
		t.Fatalf("second Install: %v", err)
	}
	if changed {
		t.Fatalf("second install should not change the lockfile")
	}
}

func TestUpdateRejectsUndeclaredDependency(t *testing.T) {
	manifest := &Manifest{Name: "app", Dependencies: map[string]*DependencySpec{}}
	installer := NewInstaller(manifest, t.TempDir())
	lock := NewLockfile("app", "rift-cli test")
	if _, _, err := installer.Update(lock, []string{"ghost"}); err == nil {
		t.Fatalf("expected error for undeclared dependency")
	}
}
