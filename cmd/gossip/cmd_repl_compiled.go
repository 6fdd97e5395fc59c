package main

import (
	"context"
	"flag"

	"github.com/fatih/color"
	"github.com/google/subcommands"
)

// replCompiledCmd implements `gossip replc`: an interactive session that
// compiles each entry to bytecode and runs it on the VM.
type replCompiledCmd struct{}

func (*replCompiledCmd) Name() string     { return "replc" }
func (*replCompiledCmd) Synopsis() string { return "start an interactive compiled (VM) session" }
func (*replCompiledCmd) Usage() string {
	return "replc\n  Start the Gossip REPL (compiled, stack-VM execution).\n"
}
func (*replCompiledCmd) SetFlags(*flag.FlagSet) {}

func (*replCompiledCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if err := runREPL(true); err != nil {
		color.Red("%v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
