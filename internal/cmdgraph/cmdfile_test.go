package cmdgraph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "x.cmd")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestParseCmdFileCommandOnly(t *testing.T) {
	path := writeTempFile(t, "cmd_foo.o := gcc -c -o foo.o foo.c\n")
	got, err := ParseCmdFile(path)
	if err != nil {
		t.Fatalf("ParseCmdFile() error = %v", err)
	}
	want := &CmdFile{Path: path, Savedcmd: "gcc -c -o foo.o foo.c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseCmdFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCmdFileSingleDependency(t *testing.T) {
	path := writeTempFile(t, "cmd_foo.o := gcc -c -o foo.o foo.c\nfoo.o: foo.c\n")
	got, err := ParseCmdFile(path)
	if err != nil {
		t.Fatalf("ParseCmdFile() error = %v", err)
	}
	want := &CmdFile{Path: path, Savedcmd: "gcc -c -o foo.o foo.c", Deps: []string{"foo.c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseCmdFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCmdFileFullForm(t *testing.T) {
	path := writeTempFile(t, strings.Join([]string{
		"cmd_foo.o := gcc -c -o foo.o foo.c",
		"source_foo.o := foo.c",
		"deps_foo.o := \\",
		"  foo.c \\",
		"  foo.h \\",
		"foo.o: $(deps_foo.o)",
		"$(deps_foo.o):",
	}, "\n"))
	got, err := ParseCmdFile(path)
	if err != nil {
		t.Fatalf("ParseCmdFile() error = %v", err)
	}
	want := &CmdFile{
		Path:      path,
		Savedcmd:  "gcc -c -o foo.o foo.c",
		Source:    "foo.c",
		Deps:      []string{"foo.c", "foo.h"},
		MakeRules: []string{"foo.o: $(deps_foo.o)", "$(deps_foo.o):"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseCmdFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCmdFileMissingSavedcmdErrors(t *testing.T) {
	path := writeTempFile(t, "# just a comment\n")
	if _, err := ParseCmdFile(path); err == nil {
		t.Fatalf("ParseCmdFile() error = nil, want error for a file with no content")
	}
}
