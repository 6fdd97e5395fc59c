package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/subcommands"

	"gossip/compiler"
	"gossip/parser"
)

// emitCmd implements `gossip emit <file.gsp>`: compiles a program and
// prints its disassembled bytecode, feeding spec.md §1's AST/bytecode
// visualizer tooling without rendering the graph itself (out of scope).
type emitCmd struct{}

func (*emitCmd) Name() string     { return "emit" }
func (*emitCmd) Synopsis() string { return "compile a .gsp source file and print its bytecode" }
func (*emitCmd) Usage() string {
	return "emit <file.gsp>\n  Print the disassembled bytecode for a Gossip program.\n"
}
func (*emitCmd) SetFlags(*flag.FlagSet) {}

func (*emitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gossip emit <file.gsp>")
		return subcommands.ExitUsageError
	}
	src, err := loadSource(f.Arg(0))
	if err != nil {
		color.Red("%v", err)
		return subcommands.ExitFailure
	}
	p, err := parser.New(src)
	if err != nil {
		color.Red("%v", err)
		return subcommands.ExitFailure
	}
	program, err := p.Parse()
	if err != nil {
		color.Red("%v", err)
		return subcommands.ExitFailure
	}
	code, err := compiler.CompileAST(program)
	if err != nil {
		color.Red("%v", err)
		return subcommands.ExitFailure
	}
	fmt.Print(code.Disassemble())
	return subcommands.ExitSuccess
}
