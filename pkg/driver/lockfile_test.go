package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLockfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), LockfileName)
	lock := NewLockfile("demo", "rift-cli test")
	lock.SetPackage(LockedPackage{Name: "utils", Git: "https://example.com/utils.git", Rev: "abc123"})

	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("WriteLockfile: %v", err)
	}
	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("LoadLockfile: %v", err)
	}
	if loaded.Root != "demo" {
		t.Fatalf("root = %q", loaded.Root)
	}
	pkg, ok := loaded.Package("utils")
	if !ok || pkg.Rev != "abc123" {
		t.Fatalf("package = %#v, ok = %v", pkg, ok)
	}
}

func TestLoadLockfileMissing(t *testing.T) {
	_, err := LoadLockfile(filepath.Join(t.TempDir(), LockfileName))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want fs not-exist", err)
	}
}

func TestSetPackageReportsChange(t *testing.T) {
	lock := NewLockfile("demo", "tool")
	entry := LockedPackage{Name: "utils", Git: "g", Rev: "r1"}
	if !lock.SetPackage(entry) {
		t.Fatalf("first insert should change the lockfile")
	}
	if lock.SetPackage(entry) {
		t.Fatalf("identical entry should not change the lockfile")
	}
	entry.Rev = "r2"
	if !lock.SetPackage(entry) {
		t.Fatalf("new revision should change the lockfile")
	}
	if pkg, _ := lock.Package("utils"); pkg.Rev != "r2" {
		t.Fatalf("revision not updated: %#v", pkg)
	}
}

func TestWriteLockfileSortsPackages(t *testing.T) {
	path := filepath.Join(t.TempDir(), LockfileName)
	lock := NewLockfile("demo", "tool")
	lock.SetPackage(LockedPackage{Name: "zeta", Git: "z", Rev: "1"})
	lock.SetPackage(LockedPackage{Name: "alpha", Git: "a", Rev: "2"})
	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("WriteLockfile: %v", err)
	}
	if lock.Packages[0].Name != "alpha" {
		t.Fatalf("packages not sorted: %#v", lock.Packages)
	}
}
