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

const rootsUsage = `print the graph's root node paths

 $ kernelsbom graph roots -src-tree DIR -obj-tree DIR -root PATH

Prints the absolute path of each root node, in the order given on the
command line. Useful for sanity-checking that -root arguments resolved
to the artifacts the caller expected; the whole graph is built (or loaded
from -cache) to do so.
`

type rootsCommand struct {
	commonFlags
}

func (*rootsCommand) Name() string { return "roots" }

func (*rootsCommand) Synopsis() string { return "print the graph's root node paths" }

func (*rootsCommand) Usage() string { return rootsUsage }

func (c *rootsCommand) SetFlags(flagSet *flag.FlagSet) {
	c.commonFlags.SetFlags(flagSet)
}

func (c *rootsCommand) Execute(ctx context.Context, flagSet *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	err := c.run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, rootsUsage)
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

func (c *rootsCommand) run(ctx context.Context) error {
	g, err := c.buildOrLoadGraph(ctx)
	if err != nil {
		return err
	}
	for _, root := range g.Roots() {
		fmt.Println(root.AbsolutePath)
	}
	return nil
}
