package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gossip/ast"
	"gossip/parser"
)

func parse(t *testing.T, src string) ast.Node {
	t.Helper()
	p, err := parser.New(src)
	require.NoError(t, err)
	program, err := p.Parse()
	require.NoError(t, err)
	return program
}

func TestParsesDeclare(t *testing.T) {
	n := parse(t, "declare x = 5")
	decl, ok := n.(*ast.Declare)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name)
	_, ok = decl.Value.(*ast.NumLiteral)
	assert.True(t, ok)
}

func TestParsesIfThenElse(t *testing.T) {
	n := parse(t, "if true then 1 else 2 end")
	ifNode, ok := n.(*ast.If)
	require.True(t, ok)
	assert.NotNil(t, ifNode.Then)
	assert.NotNil(t, ifNode.Else)
}

func TestParsesWhile(t *testing.T) {
	n := parse(t, "while x < 10 do assign x = x + 1 end")
	w, ok := n.(*ast.While)
	require.True(t, ok)
	assert.NotNil(t, w.Cond)
	assert.NotNil(t, w.Body)
}

func TestParsesFunctionDefAndCall(t *testing.T) {
	n := parse(t, "deffunct add(a, b) do functret a + b end")
	def, ok := n.(*ast.FunctDef)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, def.Params)

	n2 := parse(t, "callfun add(1, 2)")
	call, ok := n2.(*ast.FunctCall)
	require.True(t, ok)
	assert.Equal(t, "add", call.Name)
	assert.Len(t, call.Args, 2)
}

func TestParsesListLiteralAndCons(t *testing.T) {
	n := parse(t, "[1, 2, 3].cons(0)")
	cons, ok := n.(*ast.ListCons)
	require.True(t, ok)
	_, ok = cons.Base.(*ast.ListObject)
	assert.True(t, ok)
}

func TestParsesListIndexAndStringSlice(t *testing.T) {
	n := parse(t, "xs[0]")
	idx, ok := n.(*ast.ListIndex)
	require.True(t, ok)
	assert.NotNil(t, idx.Index)

	n2 := parse(t, `s[0:3]`)
	slice, ok := n2.(*ast.StringSlice)
	require.True(t, ok)
	assert.NotNil(t, slice.Start)
	assert.NotNil(t, slice.End)
}

func TestOperatorPrecedence(t *testing.T) {
	n := parse(t, "1 + 2 * 3")
	bin, ok := n.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
	right, ok := bin.Right.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, right.Op)
}

func TestShortCircuitOperatorsParse(t *testing.T) {
	n := parse(t, "true and false or true")
	bin, ok := n.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, ast.OpOr, bin.Op)
}

func TestLetTwoArgSugar(t *testing.T) {
	n := parse(t, "let x = 5")
	let, ok := n.(*ast.Let)
	require.True(t, ok)
	assert.Nil(t, let.Body)
}

func TestLetWithBody(t *testing.T) {
	n := parse(t, "let x = 5 in x + 1 end")
	let, ok := n.(*ast.Let)
	require.True(t, ok)
	assert.NotNil(t, let.Body)
}

func TestSequenceOfStatements(t *testing.T) {
	n := parse(t, "declare x = 1; assign x = 2; x")
	seq, ok := n.(*ast.Sequence)
	require.True(t, ok)
	assert.Len(t, seq.Nodes, 3)
}

func TestMalformedProgramIsSyntaxError(t *testing.T) {
	p, err := parser.New("if true")
	require.NoError(t, err)
	_, err = p.Parse()
	assert.Error(t, err)
}
