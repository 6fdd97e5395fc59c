// Package lexer turns a charstream.Stream into a token.Token stream. It
// follows the teacher's lexer/lexer.go shape (readChar/peek/handleX
// helpers driving a single Scan loop) rewired onto charstream.Stream and
// Gossip's own vocabulary (token.Keywords/WordOperators/Symbols), and
// implements spec.md §9's Open Question resolution: literals are widened
// to proper quoted strings rather than staying a bare character-soup
// token.
package lexer

import (
	"strings"
	"unicode"

	"gossip/charstream"
	"gossip/langerr"
	"gossip/rational"
	"gossip/token"
)

// Lexer produces Gossip tokens from a character stream.
type Lexer struct {
	stream *charstream.Stream
}

// New builds a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{stream: charstream.New(src)}
}

// Scan returns the next token, or a token.EOF token once the source is
// exhausted.
func (l *Lexer) Scan() (token.Token, error) {
	if err := l.skipWhitespace(); err != nil {
		return token.Token{}, err
	}

	line, col := l.stream.Position()

	r, ok := l.stream.Peek()
	if !ok {
		return token.Token{Kind: token.EOF, Line: line, Column: col}, nil
	}

	switch {
	case unicode.IsDigit(r):
		return l.scanNumber()
	case unicode.IsLetter(r) || r == '_':
		return l.scanWord()
	case r == '"' || r == '\'':
		return l.scanString(r)
	case token.IsSymbolChar(r):
		return l.scanOperator()
	case token.Symbols[r]:
		_, _ = l.stream.Next()
		return token.Token{Kind: token.SYMBOL, Text: string(r), Line: line, Column: col}, nil
	default:
		_, _ = l.stream.Next()
		return token.Token{}, langerr.TokenError{Line: line, Column: col, Lexeme: string(r)}
	}
}

func (l *Lexer) skipWhitespace() error {
	for {
		r, ok := l.stream.Peek()
		if !ok {
			return nil
		}
		if !unicode.IsSpace(r) {
			return nil
		}
		if _, err := l.stream.Next(); err != nil {
			return err
		}
	}
}

func (l *Lexer) scanNumber() (token.Token, error) {
	line, col := l.stream.Position()
	var sb strings.Builder

	for {
		r, ok := l.stream.Peek()
		if !ok || !unicode.IsDigit(r) {
			break
		}
		_, _ = l.stream.Next()
		sb.WriteRune(r)
	}

	if r, ok := l.stream.Peek(); ok && r == '.' {
		if next, ok2 := l.stream.PeekAt(1); ok2 && unicode.IsDigit(next) {
			_, _ = l.stream.Next()
			sb.WriteRune('.')
			for {
				r, ok := l.stream.Peek()
				if !ok || !unicode.IsDigit(r) {
					break
				}
				_, _ = l.stream.Next()
				sb.WriteRune(r)
			}
		}
	}

	text := sb.String()
	num, err := rational.Parse(text)
	if err != nil {
		return token.Token{}, langerr.TokenError{Line: line, Column: col, Lexeme: text}
	}
	return token.Token{Kind: token.NUM, Text: text, Literal: num, Line: line, Column: col}, nil
}

func (l *Lexer) scanWord() (token.Token, error) {
	line, col := l.stream.Position()
	var sb strings.Builder

	for {
		r, ok := l.stream.Peek()
		if !ok || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			break
		}
		_, _ = l.stream.Next()
		sb.WriteRune(r)
	}

	word := sb.String()
	switch word {
	case "true", "false":
		return token.Token{Kind: token.BOOL, Text: word, Literal: word == "true", Line: line, Column: col}, nil
	}
	if token.Keywords[word] {
		return token.Token{Kind: token.KEYWORD, Text: word, Line: line, Column: col}, nil
	}
	if token.WordOperators[word] {
		return token.Token{Kind: token.OPERATOR, Text: word, Line: line, Column: col}, nil
	}
	return token.Token{Kind: token.IDENTIFIER, Text: word, Line: line, Column: col}, nil
}

func (l *Lexer) scanString(quote rune) (token.Token, error) {
	line, col := l.stream.Position()
	_, _ = l.stream.Next() // consume opening quote

	var sb strings.Builder
	for {
		r, err := l.stream.Next()
		if err != nil {
			return token.Token{}, langerr.TokenError{Line: line, Column: col, Lexeme: sb.String()}
		}
		if r == quote {
			break
		}
		if r == '\\' {
			esc, err := l.stream.Next()
			if err != nil {
				return token.Token{}, langerr.TokenError{Line: line, Column: col, Lexeme: sb.String()}
			}
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case '\\', '"', '\'':
				sb.WriteRune(esc)
			default:
				sb.WriteRune(esc)
			}
			continue
		}
		sb.WriteRune(r)
	}

	return token.Token{Kind: token.STRING, Text: sb.String(), Literal: sb.String(), Line: line, Column: col}, nil
}

// maximalOperators lists every multi-character operator recognized by
// maximal munch, longest first within each starting character.
var maximalOperators = []string{"<=", ">=", "==", "!=", "&&", "||", "**"}

func (l *Lexer) scanOperator() (token.Token, error) {
	line, col := l.stream.Position()
	first, _ := l.stream.Next()

	if second, ok := l.stream.Peek(); ok {
		candidate := string(first) + string(second)
		for _, op := range maximalOperators {
			if op == candidate {
				_, _ = l.stream.Next()
				return token.Token{Kind: token.OPERATOR, Text: candidate, Line: line, Column: col}, nil
			}
		}
	}

	return token.Token{Kind: token.OPERATOR, Text: string(first), Line: line, Column: col}, nil
}
