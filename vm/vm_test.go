package vm_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gossip/compiler"
	"gossip/parser"
	"gossip/value"
	"gossip/vm"
)

func runVM(t *testing.T, src string) (value.Value, error) {
	t.Helper()
	p, err := parser.New(src)
	require.NoError(t, err)
	program, err := p.Parse()
	require.NoError(t, err)
	code, err := compiler.CompileAST(program)
	require.NoError(t, err)
	machine := vm.New(&bytes.Buffer{})
	return machine.Run(code)
}

func TestArithmeticOnVM(t *testing.T) {
	v, err := runVM(t, "1 + 2 * 3")
	require.NoError(t, err)
	assert.Equal(t, "7", v.String())
}

func TestExponentiationOnVM(t *testing.T) {
	v, err := runVM(t, "2 ** 3 ** 2")
	require.NoError(t, err)
	assert.Equal(t, "512", v.String())
}

func TestWhileSumOnVM(t *testing.T) {
	src := `
		declare total = 0;
		declare i = 1;
		while i <= 10 do
			assign total = total + i;
			assign i = i + 1
		end;
		total
	`
	v, err := runVM(t, src)
	require.NoError(t, err)
	assert.Equal(t, "55", v.String())
}

func TestFactorialRecursionOnVM(t *testing.T) {
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
	v, err := runVM(t, src)
	require.NoError(t, err)
	assert.Equal(t, "120", v.String())
}

func TestShortCircuitOnVM(t *testing.T) {
	src := `false and (1 / 0 == 0)`
	v, err := runVM(t, src)
	require.NoError(t, err)
	assert.Equal(t, "false", v.String())
}

func TestDoWhileOnVM(t *testing.T) {
	src := `
		declare n = 0;
		repeat
			assign n = n + 1
		while n < 3 end;
		n
	`
	v, err := runVM(t, src)
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())
}

func TestDivisionByZeroOnVM(t *testing.T) {
	_, err := runVM(t, "1 / 0")
	assert.Error(t, err)
}

// A functret firing from inside an if's own pushed frame must not leak
// that frame: the outer scope's declarations must still resolve
// correctly for every subsequent call, not just the first.
func TestNestedReturnDoesNotLeakFrames(t *testing.T) {
	src := `
		deffunct fact(n) do
			if n <= 1 then
				functret 1
			else
				functret n * callfun fact(n - 1)
			end
		end;
		declare a = callfun fact(4);
		declare b = callfun fact(3);
		a + b
	`
	v, err := runVM(t, src)
	require.NoError(t, err)
	assert.Equal(t, "30", v.String())
}

func TestArityErrorOnVM(t *testing.T) {
	src := `
		deffunct add(a, b) do functret a + b end;
		callfun add(1)
	`
	_, err := runVM(t, src)
	assert.Error(t, err)
}
