package cmdgraph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tngtech/kernelsbom/internal/env"
)

func writeCmdFile(t *testing.T, objTree, target, command string) {
	t.Helper()
	dir := filepath.Dir(filepath.Join(objTree, target))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	cmdPath := filepath.Join(dir, "."+filepath.Base(target)+".cmd")
	contents := "savedcmd_" + target + " := " + command + "\n"
	if err := os.WriteFile(cmdPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestBuildToolsBuildGraph(t *testing.T) {
	objTree := t.TempDir()
	writeCmdFile(t, objTree, "bzImage", "arch/x86/boot/tools/build a.o b.o c.o bzImage")
	touch(t, filepath.Join(objTree, "a.o"))
	touch(t, filepath.Join(objTree, "b.o"))
	touch(t, filepath.Join(objTree, "c.o"))
	touch(t, filepath.Join(objTree, "bzImage"))

	graph := Build(context.Background(), []string{"bzImage"}, BuildConfig{
		SrcTree:     objTree,
		ObjTree:     objTree,
		Environment: env.New(nil),
	})

	if len(graph.Roots()) != 1 {
		t.Fatalf("len(Roots()) = %d, want 1", len(graph.Roots()))
	}
	root := graph.Roots()[0]
	if filepath.Base(string(root.AbsolutePath)) != "bzImage" {
		t.Fatalf("root = %q, want basename bzImage", root.AbsolutePath)
	}

	nodes := graph.BFS()
	if len(nodes) != 4 {
		t.Fatalf("len(BFS()) = %d, want 4: %v", len(nodes), nodes)
	}

	var bases []string
	for _, n := range nodes {
		bases = append(bases, filepath.Base(string(n.AbsolutePath)))
	}
	want := []string{"bzImage", "a.o", "b.o", "c.o"}
	for i, w := range want {
		if bases[i] != w {
			t.Fatalf("BFS()[%d] = %q, want %q (full order %v)", i, bases[i], w, bases)
		}
	}

	edges := 0
	for _, n := range nodes {
		for range n.Children() {
			edges++
		}
	}
	if edges != 3 {
		t.Fatalf("edge count = %d, want 3", edges)
	}
}

func TestBuildSelfCycleElimination(t *testing.T) {
	objTree := t.TempDir()
	writeCmdFile(t, objTree, "X", "objcopy X X")
	touch(t, filepath.Join(objTree, "X"))

	graph := Build(context.Background(), []string{"X"}, BuildConfig{
		SrcTree:     objTree,
		ObjTree:     objTree,
		Environment: env.New(nil),
	})

	nodes := graph.BFS()
	if len(nodes) != 1 {
		t.Fatalf("len(BFS()) = %d, want 1: %v", len(nodes), nodes)
	}

	node := nodes[0]
	if len(node.CmdFileDependencies) != 0 {
		t.Fatalf("len(CmdFileDependencies) = %d, want 0 after self-cycle elimination", len(node.CmdFileDependencies))
	}
}
