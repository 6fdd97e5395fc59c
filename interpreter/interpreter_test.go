package interpreter_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gossip/interpreter"
	"gossip/parser"
	"gossip/value"
)

func run(t *testing.T, src string) (value.Value, error) {
	t.Helper()
	p, err := parser.New(src)
	require.NoError(t, err)
	program, err := p.Parse()
	require.NoError(t, err)
	interp := interpreter.New(&bytes.Buffer{})
	return interp.Interpret(program)
}

func TestWhileSum(t *testing.T) {
	src := `
		declare total = 0;
		declare i = 1;
		while i <= 10 do
			assign total = total + i;
			assign i = i + 1
		end;
		total
	`
	v, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "55", v.String())
}

func TestFactorialRecursion(t *testing.T) {
	src := `
		deffunct fact(n) do
			if n <= 1 then
				functret 1
			else
				functret n * callfun fact(n - 1)
			end
		end;
		callfun fact(5)
	`
	v, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "120", v.String())
}

func TestListCons(t *testing.T) {
	src := `
		declare y = [1, 2, 3, 4, 5];
		y.cons(9);
		y.head
	`
	v, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "9", v.String())
}

func TestListConsMutatesVariableBinding(t *testing.T) {
	src := `
		declare y = [1, 2, 3, 4, 5];
		y.cons(9);
		y.tail
	`
	v, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "[1, 2, 3, 4, 5]", v.String())
}

func TestListConsRejectsElementTagMismatch(t *testing.T) {
	src := `
		declare y = [1, 2, 3];
		y.cons("x")
	`
	_, err := run(t, src)
	assert.Error(t, err)
}

func TestListLiteralRejectsMixedElementTags(t *testing.T) {
	_, err := run(t, `[1, "two", 3]`)
	assert.Error(t, err)
}

func TestBadAssignmentTypeMismatch(t *testing.T) {
	src := `
		declare x = 5;
		assign x = "oops"
	`
	_, err := run(t, src)
	assert.Error(t, err)
}

func TestShortCircuitAndDoesNotEvaluateRight(t *testing.T) {
	src := `
		declare guard = false;
		deffunct boom() do
			declare crash = 1 / 0;
			functret crash
		end;
		false and (callfun boom() == 0)
	`
	v, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "false", v.String())
}

func TestExponentiationIsRightAssociative(t *testing.T) {
	v, err := run(t, "2 ** 3 ** 2")
	require.NoError(t, err)
	assert.Equal(t, "512", v.String())
}

func TestDivisionByZero(t *testing.T) {
	_, err := run(t, "1 / 0")
	assert.Error(t, err)
}

func TestStringConcatenation(t *testing.T) {
	v, err := run(t, `"hello " + "world"`)
	require.NoError(t, err)
	assert.Equal(t, "hello world", v.String())
}

func TestStringSlice(t *testing.T) {
	v, err := run(t, `"hello world"[0:5]`)
	require.NoError(t, err)
	assert.Equal(t, "hello", v.String())
}

func TestIndexOutOfBounds(t *testing.T) {
	_, err := run(t, "[1,2,3][10]")
	assert.Error(t, err)
}

func TestForLoopOverRange(t *testing.T) {
	src := `
		declare total = 0;
		for i in range(0, 5) do
			assign total = total + i
		end;
		total
	`
	v, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "15", v.String())
}

func TestDoWhileRunsBodyAtLeastOnce(t *testing.T) {
	src := `
		declare n = 0;
		repeat
			assign n = n + 1
		while n < 0 end;
		n
	`
	v, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "1", v.String())
}

func TestArityErrorOnFunctionCall(t *testing.T) {
	src := `
		deffunct add(a, b) do functret a + b end;
		callfun add(1)
	`
	_, err := run(t, src)
	assert.Error(t, err)
}
