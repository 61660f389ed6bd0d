package cmdgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseIncbin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.S")
	content := "\t.incbin \"arch/x86/boot/setup.bin\"\n\t.incbin \"arch/x86/boot/vmlinux.bin\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ParseIncbin(path)
	if err != nil {
		t.Fatalf("ParseIncbin() error = %v", err)
	}
	want := []IncbinStatement{
		{Path: "arch/x86/boot/setup.bin", FullStatement: `.incbin "arch/x86/boot/setup.bin"`},
		{Path: "arch/x86/boot/vmlinux.bin", FullStatement: `.incbin "arch/x86/boot/vmlinux.bin"`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseIncbin() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIncbinNoDirectives(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.S")
	if err := os.WriteFile(path, []byte("nop\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := ParseIncbin(path)
	if err != nil {
		t.Fatalf("ParseIncbin() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("ParseIncbin() = %v, want empty", got)
	}
}
