package graph

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tngtech/kernelsbom/internal/diag"
)

const buildUsage = `build the command graph

 $ kernelsbom graph build -src-tree DIR -obj-tree DIR -root PATH [-root PATH]...

Builds (or loads from -cache, if present) a Command Graph rooted at the
given artifacts and prints a one-line summary of its size and the number
of diagnostics recorded while building it.
`

type buildCommand struct {
	commonFlags
}

func (*buildCommand) Name() string { return "build" }

func (*buildCommand) Synopsis() string { return "build the command graph and print a summary" }

func (*buildCommand) Usage() string { return buildUsage }

func (c *buildCommand) SetFlags(flagSet *flag.FlagSet) {
	c.commonFlags.SetFlags(flagSet)
}

func (c *buildCommand) Execute(ctx context.Context, flagSet *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	err := c.run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, buildUsage)
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

func (c *buildCommand) run(ctx context.Context) error {
	g, err := c.buildOrLoadGraph(ctx)
	if err != nil {
		return err
	}

	nodes := g.BFS()
	edges := 0
	for _, n := range nodes {
		for range n.Children() {
			edges++
		}
	}
	errs, warnings := diag.Default.Counts()
	fmt.Printf("roots=%d nodes=%d edges=%d errors=%d warnings=%d\n", len(g.Roots()), len(nodes), edges, errs, warnings)
	return nil
}
