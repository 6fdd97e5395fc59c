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
	"gossip/vm"
)

// runCompiledCmd implements `gossip runc <file.gsp>`: compile to Bytecode
// and execute it on the stack VM.
type runCompiledCmd struct{}

func (*runCompiledCmd) Name() string     { return "runc" }
func (*runCompiledCmd) Synopsis() string { return "compile a .gsp source file and run it on the VM" }
func (*runCompiledCmd) Usage() string {
	return "runc <file.gsp>\n  Compile a Gossip program to bytecode and execute it.\n"
}
func (*runCompiledCmd) SetFlags(*flag.FlagSet) {}

func (*runCompiledCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gossip runc <file.gsp>")
		return subcommands.ExitUsageError
	}
	src, err := loadSource(f.Arg(0))
	if err != nil {
		color.Red("%v", err)
		return subcommands.ExitFailure
	}
	if err := compileAndRunVM(src); err != nil {
		color.Red("%v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func compileAndRunVM(src string) error {
	p, err := parser.New(src)
	if err != nil {
		return err
	}
	program, err := p.Parse()
	if err != nil {
		return err
	}
	code, err := compiler.CompileAST(program)
	if err != nil {
		return err
	}
	machine := vm.New(os.Stdout)
	_, err = machine.Run(code)
	return err
}
