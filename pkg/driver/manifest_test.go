package driver

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, `
name: demo
version: 0.1.0
entry: scripts/start.rf
dependencies:
  utils:
    git: https://example.com/utils.git
    rev: v1.2.0
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.Name != "demo" || manifest.Version != "0.1.0" {
		t.Fatalf("unexpected manifest %#v", manifest)
	}
	if got := manifest.EntryPath(); got != filepath.Join(dir, "scripts", "start.rf") {
		t.Fatalf("EntryPath = %q", got)
	}
	dep, ok := manifest.Dependencies["utils"]
	if !ok || dep.Git != "https://example.com/utils.git" || dep.Rev != "v1.2.0" {
		t.Fatalf("dependency = %#v", dep)
	}
}

func TestLoadManifestDefaultsEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "name: demo\n")
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.Entry != "main.rf" {
		t.Fatalf("default entry = %q", manifest.Entry)
	}
}

func TestLoadManifestRejectsMissingName(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "version: 1.0.0\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected error for missing name")
	}
}

func TestLoadManifestRejectsSourcelessDependency(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, `
name: demo
dependencies:
  utils:
    rev: abc
`)
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected error for dependency without git source")
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "name: demo\n")
	child := filepath.Join(root, "src", "nested")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindManifest(child)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if found != filepath.Join(root, ManifestName) {
		t.Fatalf("FindManifest = %q", found)
	}
}

func TestFindManifestNotFound(t *testing.T) {
	if _, err := FindManifest(t.TempDir()); err != ErrManifestNotFound {
		t.Fatalf("err = %v, want ErrManifestNotFound", err)
	}
}

func TestDependencyNamesSorted(t *testing.T) {
	m := &Manifest{Dependencies: map[string]*DependencySpec{
		"zeta":  {Git: "z"},
		"alpha": {Git: "a"},
	}}
	names := m.DependencyNames()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Fatalf("names = %v", names)
	}
}
