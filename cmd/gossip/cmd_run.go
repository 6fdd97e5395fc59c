package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/subcommands"

	"gossip/interpreter"
	"gossip/parser"
)

// runCmd implements `gossip run <file.gsp>`: compile_and_run over the
// tree-walking interpreter (spec.md §6).
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run a .gsp source file with the tree-walking interpreter" }
func (*runCmd) Usage() string {
	return "run <file.gsp>\n  Interpret a Gossip program directly from its AST.\n"
}
func (*runCmd) SetFlags(*flag.FlagSet) {}

func (*runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gossip run <file.gsp>")
		return subcommands.ExitUsageError
	}
	src, err := loadSource(f.Arg(0))
	if err != nil {
		color.Red("%v", err)
		return subcommands.ExitFailure
	}
	if err := compileAndRun(src); err != nil {
		color.Red("%v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// compileAndRun parses src and evaluates it with the tree-walking
// interpreter, the external interface spec.md §6 names `compile_and_run`.
func compileAndRun(src string) error {
	p, err := parser.New(src)
	if err != nil {
		return err
	}
	program, err := p.Parse()
	if err != nil {
		return err
	}
	interp := interpreter.New(os.Stdout)
	_, err = interp.Interpret(program)
	return err
}
