package cmdgraph

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tngtech/kernelsbom/internal/env"
)

func TestHardcodedDependenciesExpandsArch(t *testing.T) {
	objTree := t.TempDir()
	touch(t, filepath.Join(objTree, "arch/x86/kernel/asm-offsets.s"))

	environment := env.New(map[string]string{"SRCARCH": "x86"})
	got := HardcodedDependencies(filepath.Join(objTree, "include/generated/asm-offsets.h"), objTree, "/src", environment)

	want := []PathStr{"arch/x86/kernel/asm-offsets.s"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("HardcodedDependencies() mismatch (-want +got):\n%s", diff)
	}
}

func TestHardcodedDependenciesMissingArchEnvVar(t *testing.T) {
	objTree := t.TempDir()
	environment := env.New(nil)
	got := HardcodedDependencies(filepath.Join(objTree, "include/generated/asm-offsets.h"), objTree, "/src", environment)
	if got != nil {
		t.Fatalf("HardcodedDependencies() = %v, want nil when SRCARCH is unset", got)
	}
}

func TestHardcodedDependenciesNoEntry(t *testing.T) {
	objTree := t.TempDir()
	environment := env.New(nil)
	got := HardcodedDependencies(filepath.Join(objTree, "some/unrelated/file.o"), objTree, "/src", environment)
	if got != nil {
		t.Fatalf("HardcodedDependencies() = %v, want nil for a path with no table entry", got)
	}
}

func TestHardcodedDependenciesSourceTreeFallback(t *testing.T) {
	objTree := t.TempDir()
	srcTree := t.TempDir()
	touch(t, filepath.Join(srcTree, "kernel/sched/rq-offsets.s"))

	environment := env.New(nil)
	got := HardcodedDependencies(filepath.Join(objTree, "include/generated/rq-offsets.h"), objTree, srcTree, environment)

	rel, _ := filepath.Rel(objTree, filepath.Join(srcTree, "kernel/sched/rq-offsets.s"))
	want := []PathStr{rel}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("HardcodedDependencies() mismatch (-want +got):\n%s", diff)
	}
}
