package graph

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/tngtech/kernelsbom/internal/cmdgraph"
	"github.com/tngtech/kernelsbom/internal/diag"
)

const digraphUsage = `show digraph

 $ kernelsbom graph digraph -src-tree DIR -obj-tree DIR -root PATH

Prints a directed graph of the command graph, one line per node: the
node's path followed by the paths of its direct children.

This output can be passed to the digraph command, installed by
 $ go install golang.org/x/tools/cmd/digraph@latest
`

type digraphCommand struct {
	commonFlags
}

func (*digraphCommand) Name() string { return "digraph" }

func (*digraphCommand) Synopsis() string { return "show digraph" }

func (*digraphCommand) Usage() string { return digraphUsage }

func (c *digraphCommand) SetFlags(flagSet *flag.FlagSet) {
	c.commonFlags.SetFlags(flagSet)
}

func (c *digraphCommand) Execute(ctx context.Context, flagSet *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	err := c.run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, digraphUsage)
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

func (c *digraphCommand) run(ctx context.Context) error {
	g, err := c.buildOrLoadGraph(ctx)
	if err != nil {
		return err
	}
	for n := range g.All() {
		printDigraphLine(n)
	}
	return nil
}

func printDigraphLine(n *cmdgraph.Node) {
	var children []string
	for child := range n.Children() {
		children = append(children, child.AbsolutePath)
	}
	fmt.Printf("%s %s\n", n.AbsolutePath, strings.Join(children, " "))
}
