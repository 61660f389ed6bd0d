package cmdgraph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitCommandsSingle(t *testing.T) {
	got := SplitCommands(`gcc -c -o foo.o foo.c`)
	want := []CommandEntry{PlainCommand(`gcc -c -o foo.o foo.c`)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SplitCommands() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitCommandsSemicolonChain(t *testing.T) {
	got := SplitCommands(`rm -f foo.o; gcc -c -o foo.o foo.c`)
	want := []CommandEntry{
		PlainCommand(`rm -f foo.o`),
		PlainCommand(`gcc -c -o foo.o foo.c`),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SplitCommands() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitCommandsAndAndChain(t *testing.T) {
	got := SplitCommands(`dd if=a of=b && cat b >> c`)
	want := []CommandEntry{
		PlainCommand(`dd if=a of=b`),
		PlainCommand(`cat b >> c`),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SplitCommands() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitCommandsIgnoresSeparatorsInsideQuotes(t *testing.T) {
	got := SplitCommands(`echo "a; b && c"`)
	want := []CommandEntry{PlainCommand(`echo "a; b && c"`)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SplitCommands() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitCommandsIgnoresSeparatorsInsideParens(t *testing.T) {
	got := SplitCommands(`printf '%s\n' $(cat list; echo done) | xargs ar rcs lib.a`)
	want := []CommandEntry{
		PlainCommand(`printf '%s\n' $(cat list; echo done) | xargs ar rcs lib.a`),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SplitCommands() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitCommandsUnwrapsOuterParens(t *testing.T) {
	got := SplitCommands(`(gcc -c -o foo.o foo.c)`)
	want := []CommandEntry{PlainCommand(`gcc -c -o foo.o foo.c`)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SplitCommands() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitCommandsIfBlock(t *testing.T) {
	got := SplitCommands(`if [ -f foo.o ]; then rm foo.o; fi`)
	want := []CommandEntry{
		IfBlock{Condition: `[ -f foo.o ]`, ThenStatement: `rm foo.o`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SplitCommands() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitCommandsIfBlockFollowedByCommand(t *testing.T) {
	got := SplitCommands(`if [ -f foo.o ]; then rm foo.o; fi; gcc -c -o foo.o foo.c`)
	want := []CommandEntry{
		IfBlock{Condition: `[ -f foo.o ]`, ThenStatement: `rm foo.o`},
		PlainCommand(`gcc -c -o foo.o foo.c`),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SplitCommands() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnwrapOuterParensNoMatchingOuterPair(t *testing.T) {
	got := unwrapOuterParens(`(a) && (b)`)
	want := `(a) && (b)`
	if got != want {
		t.Fatalf("unwrapOuterParens() = %q, want %q", got, want)
	}
}
