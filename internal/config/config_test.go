package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLiteralRoots(t *testing.T) {
	objTree := t.TempDir()
	srcTree := t.TempDir()
	if err := os.WriteFile(filepath.Join(objTree, "bzImage"), nil, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(srcTree, objTree, []string{"bzImage"}, "", true, false, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.RootPaths) != 1 || cfg.RootPaths[0] != "bzImage" {
		t.Fatalf("RootPaths = %v, want [bzImage]", cfg.RootPaths)
	}
}

func TestLoadRootsFileTakesPrecedence(t *testing.T) {
	objTree := t.TempDir()
	srcTree := t.TempDir()
	if err := os.WriteFile(filepath.Join(objTree, "a.o"), nil, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	rootsFile := filepath.Join(t.TempDir(), "roots.txt")
	if err := os.WriteFile(rootsFile, []byte("a.o\n\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(srcTree, objTree, []string{"unused.o"}, rootsFile, true, false, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.RootPaths) != 1 || cfg.RootPaths[0] != "a.o" {
		t.Fatalf("RootPaths = %v, want [a.o]", cfg.RootPaths)
	}
}

func TestLoadMissingRootArtifactErrors(t *testing.T) {
	objTree := t.TempDir()
	srcTree := t.TempDir()

	if _, err := Load(srcTree, objTree, []string{"missing.o"}, "", true, false, ""); err == nil {
		t.Fatalf("Load() error = nil, want error for missing root artifact")
	}
}

func TestLoadMissingObjTreeErrors(t *testing.T) {
	srcTree := t.TempDir()
	if _, err := Load(srcTree, filepath.Join(srcTree, "does-not-exist"), []string{"x"}, "", true, false, ""); err == nil {
		t.Fatalf("Load() error = nil, want error for missing obj tree")
	}
}
