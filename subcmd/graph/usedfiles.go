package graph

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/tngtech/kernelsbom/internal/diag"
)

const usedfilesUsage = `list source files used in the build

 $ kernelsbom graph usedfiles -src-tree DIR -obj-tree DIR -root PATH

Prints a flat list of every source file reachable from the given roots,
one path (relative to -src-tree) per line. If -src-tree and -obj-tree are
the same directory, source files cannot be reliably told apart from build
artifacts, so every reachable file is printed instead.
`

type usedfilesCommand struct {
	commonFlags
}

func (*usedfilesCommand) Name() string { return "usedfiles" }

func (*usedfilesCommand) Synopsis() string { return "list source files used in the build" }

func (*usedfilesCommand) Usage() string { return usedfilesUsage }

func (c *usedfilesCommand) SetFlags(flagSet *flag.FlagSet) {
	c.commonFlags.SetFlags(flagSet)
}

func (c *usedfilesCommand) Execute(ctx context.Context, flagSet *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	err := c.run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usedfilesUsage)
			return subcommands.ExitUsageError
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if diag.Default.Failed() {
		diag.Default.Summarize(0)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *usedfilesCommand) run(ctx context.Context) error {
	g, err := c.buildOrLoadGraph(ctx)
	if err != nil {
		return err
	}

	srcTree, err := filepath.Abs(c.srcTree)
	if err != nil {
		return err
	}
	objTree, err := filepath.Abs(c.objTree)
	if err != nil {
		return err
	}

	sameTree := srcTree == objTree
	if sameTree {
		diag.Default.Warning("extracting all files from the command graph because -src-tree and -obj-tree are identical, so source files cannot be reliably classified")
	}

	for n := range g.All() {
		if !sameTree {
			if !isRelativeTo(n.AbsolutePath, srcTree) || isRelativeTo(n.AbsolutePath, objTree) {
				continue
			}
		}
		rel, err := filepath.Rel(srcTree, n.AbsolutePath)
		if err != nil {
			continue
		}
		fmt.Println(rel)
	}
	return nil
}

func isRelativeTo(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	if rel == ".." {
		return false
	}
	prefix := ".." + string(filepath.Separator)
	return len(rel) < len(prefix) || rel[:len(prefix)] != prefix
}
