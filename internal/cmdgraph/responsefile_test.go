package cmdgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandResponseFilesNoAtEntries(t *testing.T) {
	objTree := t.TempDir()
	got, err := ExpandResponseFiles([]PathStr{"a.o", "b.o"}, objTree)
	if err != nil {
		t.Fatalf("ExpandResponseFiles() error = %v", err)
	}
	want := []PathStr{"a.o", "b.o"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExpandResponseFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandResponseFilesNested(t *testing.T) {
	objTree := t.TempDir()
	if err := os.WriteFile(filepath.Join(objTree, "inner.mod"), []byte("c.o\n@outer.mod\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(objTree, "outer.mod"), []byte("d.o\n\ne.o\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ExpandResponseFiles([]PathStr{"a.o", "@inner.mod"}, objTree)
	if err != nil {
		t.Fatalf("ExpandResponseFiles() error = %v", err)
	}
	want := []PathStr{"a.o", "c.o", "d.o", "e.o"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExpandResponseFiles() mismatch (-want +got):\n%s", diff)
	}
}
