package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/Octa-Org/Rift/pkg/driver"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(prev) })
}

func TestRunScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.rf")
	writeFile(t, path, "var x = 1; print(x + 1);\n")
	if code := run([]string{path}); code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
}

func TestRunMissingFile(t *testing.T) {
	if code := run([]string{filepath.Join(t.TempDir(), "missing.rf")}); code != exitUsage {
		t.Fatalf("exit code = %d, want %d", code, exitUsage)
	}
}

func TestRunParseErrorExitCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.rf")
	writeFile(t, path, "var = ;\n")
	if code := run([]string{path}); code != exitParse {
		t.Fatalf("exit code = %d, want %d", code, exitParse)
	}
}

func TestRunScanErrorExitCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.rf")
	writeFile(t, path, "var s = \"unterminated;\n")
	if code := run([]string{path}); code != exitParse {
		t.Fatalf("exit code = %d, want %d", code, exitParse)
	}
}

func TestRunRuntimeErrorExitCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boom.rf")
	writeFile(t, path, "print(ghost);\n")
	if code := run([]string{path}); code != exitRuntime {
		t.Fatalf("exit code = %d, want %d", code, exitRuntime)
	}
}

func TestVersionFlag(t *testing.T) {
	if code := run([]string{"--version"}); code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
}

func TestRunUsesManifestEntry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, driver.ManifestName), "name: app\nentry: scripts/start.rf\n")
	writeFile(t, filepath.Join(dir, "scripts", "start.rf"), "print(1);\n")
	chdir(t, dir)

	if code := run([]string{"run"}); code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
}

func TestDepsRequiresSubcommand(t *testing.T) {
	if code := run([]string{"deps"}); code != exitUsage {
		t.Fatalf("exit code = %d, want %d", code, exitUsage)
	}
}

func initFixtureRepo(t *testing.T, dir string) {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	writeFile(t, filepath.Join(dir, "lib.rf"), "var READY = 1;\n")
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := worktree.Add("lib.rf"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Rift CLI",
			Email: "rift@example.com",
			When:  time.Now(),
		},
	}); err != nil {
		t.Fatalf("Commit: %v", err)
	}
}

func TestDepsInstallWritesLockfile(t *testing.T) {
	root := t.TempDir()
	depDir := filepath.Join(root, "utils-src")
	initFixtureRepo(t, depDir)

	appDir := filepath.Join(root, "app")
	writeFile(t, filepath.Join(appDir, driver.ManifestName),
		"name: app\ndependencies:\n  utils:\n    git: "+depDir+"\n")
	chdir(t, appDir)
	t.Setenv("RIFT_HOME", filepath.Join(root, ".rift"))

	if code := run([]string{"deps", "install"}); code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}

	lock, err := driver.LoadLockfile(filepath.Join(appDir, driver.LockfileName))
	if err != nil {
		t.Fatalf("lockfile not written: %v", err)
	}
	if _, ok := lock.Package("utils"); !ok {
		t.Fatalf("lockfile missing utils entry: %#v", lock.Packages)
	}
	if _, err := os.Stat(filepath.Join(root, ".rift", "deps", "utils", "lib.rf")); err != nil {
		t.Fatalf("dependency not installed: %v", err)
	}
}
