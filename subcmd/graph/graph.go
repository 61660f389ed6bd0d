// Package graph is the graph subcommand group: build, inspect, and export
// the Command Graph for a Linux kernel build (SPEC_FULL.md §1.1/§6).
package graph

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

// Cmd returns the Command for the `graph` subcommand group.
func Cmd() Command {
	return Command{}
}

// Command implements the graph subcommand group.
type Command struct{}

func (Command) Name() string { return "graph" }

func (Command) Synopsis() string {
	return "command group to build and inspect the kernel command graph"
}

func (Command) Usage() string {
	return `command group to build and inspect the kernel command graph.

Use "kernelsbom graph" to display subcommands.
Use "kernelsbom graph help [subcommand]" for more information about a subcommand.
`
}

func (Command) SetFlags(*flag.FlagSet) {}

func (c Command) Execute(ctx context.Context, flagSet *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	commander := subcommands.NewCommander(flagSet, c.Name())
	commander.Register(&buildCommand{}, "")
	commander.Register(&digraphCommand{}, "")
	commander.Register(&usedfilesCommand{}, "")
	commander.Register(&rootsCommand{}, "")
	commander.Register(commander.HelpCommand(), "command-help")
	return commander.Execute(ctx)
}
