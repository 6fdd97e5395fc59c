package main

import (
	"errors"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"gossip/compiler"
	"gossip/interpreter"
	"gossip/langerr"
	"gossip/parser"
	"gossip/value"
	"gossip/vm"
)

// replStep parses and evaluates one buffered chunk of REPL input,
// reporting whether more input is needed (see isIncomplete), the
// external interface spec.md §6 names `repl_step`.
func replStep(src string, compile bool) (result value.Value, needMore bool, err error) {
	p, perr := parser.New(src)
	if perr != nil {
		var eos langerr.EndOfStream
		if errors.As(perr, &eos) {
			return value.Value{}, true, nil
		}
		return value.Value{}, false, perr
	}
	program, perr := p.Parse()
	if perr != nil {
		if isIncomplete(perr) {
			return value.Value{}, true, nil
		}
		return value.Value{}, false, perr
	}

	if compile {
		code, cerr := compiler.CompileAST(program)
		if cerr != nil {
			return value.Value{}, false, cerr
		}
		machine := vm.New(os.Stdout)
		v, rerr := machine.Run(code)
		return v, false, rerr
	}

	interp := interpreter.New(os.Stdout)
	v, rerr := interp.Interpret(program)
	return v, false, rerr
}

// isIncomplete reports whether err signals that the REPL should read
// another line and retry, rather than report a real syntax error —
// langerr.EndOfTokens, which the parser returns when it needs an operand
// at end of input (e.g. after a trailing operator or `=`), is the
// multi-line-continuation signal, the same role the teacher's
// isInputReady/allParseErrorsAtEOF helpers play. An `if`/`while`/function
// body missing its closing `end` is reported as a SyntaxError, not
// continued.
func isIncomplete(err error) bool {
	var eot langerr.EndOfTokens
	return errors.As(err, &eot)
}

// runREPL drives an interactive loop over readline, accumulating lines
// until a complete expression parses, then evaluating it with either the
// tree-walking interpreter or the compiled VM depending on compile.
func runREPL(compile bool) error {
	prompt := "gossip> "
	if compile {
		prompt = "gossipc> "
	}
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	var buffer string
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if buffer == "" {
				break
			}
			buffer = ""
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if buffer == "" {
			buffer = line
		} else {
			buffer = buffer + "\n" + line
		}

		_, needMore, evalErr := replStep(buffer, compile)
		if needMore {
			rl.SetPrompt("...     ")
			continue
		}
		rl.SetPrompt(prompt)
		if evalErr != nil {
			color.Red("%v", evalErr)
		}
		buffer = ""
	}
	return nil
}

