package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gossip/lexer"
	"gossip/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := lexer.New(src)
	var toks []token.Token
	for {
		tok, err := l.Scan()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func TestScansNumberAndIdentifier(t *testing.T) {
	toks := scanAll(t, "declare x = 12")
	require.Len(t, toks, 5)
	assert.Equal(t, token.KEYWORD, toks[0].Kind)
	assert.Equal(t, "declare", toks[0].Text)
	assert.Equal(t, token.IDENTIFIER, toks[1].Kind)
	assert.Equal(t, "x", toks[1].Text)
	assert.Equal(t, token.OPERATOR, toks[2].Kind)
	assert.Equal(t, "=", toks[2].Text)
	assert.Equal(t, token.NUM, toks[3].Kind)
	assert.Equal(t, token.EOF, toks[4].Kind)
}

func TestScansFractionalNumber(t *testing.T) {
	toks := scanAll(t, "3.14")
	require.GreaterOrEqual(t, len(toks), 1)
	assert.Equal(t, token.NUM, toks[0].Kind)
	assert.Equal(t, "3.14", toks[0].Text)
}

func TestScansStringLiteral(t *testing.T) {
	toks := scanAll(t, `"hello world"`)
	require.GreaterOrEqual(t, len(toks), 1)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestMaximalMunchOnComparisonOperators(t *testing.T) {
	toks := scanAll(t, "a <= b")
	require.Len(t, toks, 4)
	assert.Equal(t, "<=", toks[1].Text)
}

func TestBoolLiterals(t *testing.T) {
	toks := scanAll(t, "true false")
	require.Len(t, toks, 3)
	assert.Equal(t, token.BOOL, toks[0].Kind)
	assert.Equal(t, true, toks[0].Literal)
	assert.Equal(t, false, toks[1].Literal)
}

func TestWordOperatorsClassifyAsOperator(t *testing.T) {
	toks := scanAll(t, "a and b or not c")
	var texts []string
	for _, tk := range toks {
		if tk.Kind == token.OPERATOR {
			texts = append(texts, tk.Text)
		}
	}
	assert.Equal(t, []string{"and", "or", "not"}, texts)
}

func TestMaximalMunchOnExponentOperator(t *testing.T) {
	toks := scanAll(t, "a ** b")
	require.Len(t, toks, 4)
	assert.Equal(t, token.OPERATOR, toks[1].Kind)
	assert.Equal(t, "**", toks[1].Text)
}

func TestUnrecognizedCharacterIsTokenError(t *testing.T) {
	l := lexer.New("@")
	_, err := l.Scan()
	assert.Error(t, err)
}
