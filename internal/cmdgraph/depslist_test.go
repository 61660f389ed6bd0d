package cmdgraph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCmdFileDeps(t *testing.T) {
	got := ParseCmdFileDeps([]string{
		"foo.c",
		"$(wildcard include/config/CONFIG_SOMETHING)",
		"$(wildcard ./tools/objtool/objtool)",
		"$(wildcard include/generated/autoconf.h)",
		"not a valid path !!",
	})
	want := []PathStr{"foo.c", "include/generated/autoconf.h"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseCmdFileDeps() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCmdFileDepsEmpty(t *testing.T) {
	if got := ParseCmdFileDeps(nil); got != nil {
		t.Fatalf("ParseCmdFileDeps(nil) = %v, want nil", got)
	}
}
