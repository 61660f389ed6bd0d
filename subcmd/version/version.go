// Package version provides the version subcommand.
package version

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// Cmd returns the Command for the `version` subcommand.
func Cmd(ver string) *Command {
	return &Command{version: ver}
}

// Command implements the version subcommand.
type Command struct {
	version string
}

func (*Command) Name() string { return "version" }

func (*Command) Synopsis() string { return "prints the executable version" }

func (*Command) Usage() string { return "Prints the kernelsbom version.\n" }

func (*Command) SetFlags(*flag.FlagSet) {}

func (c *Command) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	fmt.Println(c.version)
	return subcommands.ExitSuccess
}
