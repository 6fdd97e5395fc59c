package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gossip/ast"
	"gossip/compiler"
	"gossip/parser"
)

func compileSrc(t *testing.T, src string) *compiler.Bytecode {
	t.Helper()
	p, err := parser.New(src)
	require.NoError(t, err)
	program, err := p.Parse()
	require.NoError(t, err)
	code, err := compiler.CompileAST(program)
	require.NoError(t, err)
	return code
}

func TestCompilesArithmetic(t *testing.T) {
	code := compileSrc(t, "1 + 2 * 3")
	require.NotEmpty(t, code.Instructions)
	assert.Equal(t, compiler.OpHalt, code.Instructions[len(code.Instructions)-1].Op)
}

func TestCompilesIfWithLabels(t *testing.T) {
	code := compileSrc(t, "if true then 1 else 2 end")
	var sawJmpIfFalse bool
	for _, instr := range code.Instructions {
		if instr.Op == compiler.OpJmpIfFalse {
			sawJmpIfFalse = true
			lbl, ok := instr.Operand.(*compiler.Label)
			require.True(t, ok)
			assert.GreaterOrEqual(t, lbl.Index, 0)
		}
	}
	assert.True(t, sawJmpIfFalse)
}

func TestUnsupportedNodeRaisesDeveloperError(t *testing.T) {
	_, err := compiler.CompileAST(&ast.ListObject{})
	assert.Error(t, err)
	assert.IsType(t, compiler.DeveloperError{}, err)
}

func TestCompilesFunctionDefAndCall(t *testing.T) {
	code := compileSrc(t, "deffunct add(a, b) do functret a + b end; callfun add(1, 2)")
	var sawCall bool
	for _, instr := range code.Instructions {
		if instr.Op == compiler.OpCall {
			sawCall = true
			call, ok := instr.Operand.(compiler.CallOperand)
			require.True(t, ok)
			assert.Equal(t, "add", call.Name)
			assert.Equal(t, 2, call.Argc)
		}
	}
	assert.True(t, sawCall)
}
