package cmdgraph

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestResolveWorkingDirectoryRelativeToTargetDir(t *testing.T) {
	objTree := t.TempDir()
	touch(t, filepath.Join(objTree, "fs/efivarfs/efivarfs.c"))

	dir, ok := ResolveWorkingDirectory("efivarfs.c", "fs/efivarfs/efivarfs.o", objTree, "")
	if !ok || dir != "fs/efivarfs" {
		t.Fatalf("ResolveWorkingDirectory() = (%q, %v), want (\"fs/efivarfs\", true)", dir, ok)
	}
}

func TestResolveWorkingDirectoryRelativeToObjTree(t *testing.T) {
	objTree := t.TempDir()
	touch(t, filepath.Join(objTree, "include/generated/autoconf.h"))

	dir, ok := ResolveWorkingDirectory("include/generated/autoconf.h", "fs/efivarfs/efivarfs.o", objTree, "")
	if !ok || dir != "." {
		t.Fatalf("ResolveWorkingDirectory() = (%q, %v), want (\".\", true)", dir, ok)
	}
}

func TestResolveWorkingDirectoryToolsObjtoolArchX86(t *testing.T) {
	dir, ok := ResolveWorkingDirectory("special.c", "tools/objtool/arch/x86/special.o", "/obj", "/src/linux")
	if !ok || dir != "../src/linux/tools/objtool" {
		t.Fatalf("ResolveWorkingDirectory() = (%q, %v), want (\"../src/linux/tools/objtool\", true)", dir, ok)
	}
}

func TestResolveWorkingDirectoryToolsLibSubcmd(t *testing.T) {
	dir, ok := ResolveWorkingDirectory("subcmd-util.h", "tools/objtool/libsubcmd/.sigchain.o", "/obj", "/src/linux")
	if !ok || dir != "../src/linux/tools/lib/subcmd" {
		t.Fatalf("ResolveWorkingDirectory() = (%q, %v), want (\"../src/linux/tools/lib/subcmd\", true)", dir, ok)
	}
}

func TestResolveWorkingDirectoryUnresolvable(t *testing.T) {
	objTree := t.TempDir()
	_, ok := ResolveWorkingDirectory("nowhere.c", "fs/efivarfs/efivarfs.o", objTree, "")
	if ok {
		t.Fatalf("ResolveWorkingDirectory() ok = true, want false")
	}
}
