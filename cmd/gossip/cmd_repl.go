package main

import (
	"context"
	"flag"

	"github.com/fatih/color"
	"github.com/google/subcommands"
)

// replCmd implements `gossip repl`: an interactive tree-walking session.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive tree-walking session" }
func (*replCmd) Usage() string    { return "repl\n  Start the Gossip REPL (tree-walking interpreter).\n" }
func (*replCmd) SetFlags(*flag.FlagSet) {}

func (*replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if err := runREPL(false); err != nil {
		color.Red("%v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
