package parser

import (
	"fmt"

	"gossip/ast"
	"gossip/langerr"
	"gossip/lexer"
	"gossip/token"
)

// Parser consumes a token stream and builds an ast.Node tree, following
// the teacher's Peek/previous/advance/isMatch/consume recursive-descent
// shape (informatter-nilan/parser/parser.go), generalized onto Gossip's
// grammar (spec.md §4.3): every keyword-led construct (let, declare,
// assign, if, while, repeat/while, for, print, deffunct, callfun,
// functret) is itself a primary-level expression, since Gossip has no
// statement/expression split.
type Parser struct {
	lex     *lexer.Lexer
	current token.Token
	peeked  *token.Token
}

// New builds a Parser over src.
func New(src string) (*Parser, error) {
	p := &Parser{lex: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse consumes the entire token stream and returns the program as a
// single ast.Node (an ast.Sequence when the source has more than one
// top-level expression).
func (p *Parser) Parse() (ast.Node, error) {
	var nodes []ast.Node
	for !p.check(token.EOF) {
		n, err := p.expression()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		if p.checkSymbol(";") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if !p.check(token.EOF) {
		return nil, p.syntaxErrorf("expected end of input, found %q", p.current.Text)
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return &ast.Sequence{Nodes: nodes}, nil
}

func (p *Parser) advance() error {
	if p.peeked != nil {
		p.current = *p.peeked
		p.peeked = nil
		return nil
	}
	tok, err := p.lex.Scan()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *Parser) peekNext() (token.Token, error) {
	if p.peeked == nil {
		tok, err := p.lex.Scan()
		if err != nil {
			return token.Token{}, err
		}
		p.peeked = &tok
	}
	return *p.peeked, nil
}

func (p *Parser) check(k token.Kind) bool {
	return p.current.Kind == k
}

func (p *Parser) checkKeyword(text string) bool {
	return p.current.Kind == token.KEYWORD && p.current.Text == text
}

func (p *Parser) checkSymbol(text string) bool {
	return p.current.Kind == token.SYMBOL && p.current.Text == text
}

func (p *Parser) checkOperator(text string) bool {
	return p.current.Kind == token.OPERATOR && p.current.Text == text
}

func (p *Parser) expectKeyword(text string) error {
	if !p.checkKeyword(text) {
		return p.syntaxErrorf("expected keyword %q, found %q", text, p.current.Text)
	}
	return p.advance()
}

func (p *Parser) expectSymbol(text string) error {
	if !p.checkSymbol(text) {
		return p.syntaxErrorf("expected %q, found %q", text, p.current.Text)
	}
	return p.advance()
}

func (p *Parser) expectIdentifier() (string, error) {
	if p.current.Kind != token.IDENTIFIER {
		return "", p.syntaxErrorf("expected identifier, found %q", p.current.Text)
	}
	name := p.current.Text
	if err := p.advance(); err != nil {
		return "", err
	}
	return name, nil
}

func (p *Parser) syntaxErrorf(format string, args ...any) error {
	return SyntaxError{Line: p.current.Line, Column: p.current.Column, Message: fmt.Sprintf(format, args...)}
}

// expression is the single top-level production. Every keyword-led
// construct (let, declare, assign, if, while, repeat/while, for, print,
// deffunct, callfun, functret) is handled down in primary() instead of
// here, since Gossip has no statement/expression split: a call like
// `callfun fact(n-1)` must be usable as an ordinary operand wherever a
// value is expected, e.g. the right side of `n * callfun fact(n-1)`.
func (p *Parser) expression() (ast.Node, error) {
	return p.orExpr()
}

// block parses a ';'-separated run of expressions until a keyword in
// terminators is found (not consumed). Used for control-construct bodies.
func (p *Parser) block(terminators ...string) (ast.Node, error) {
	var nodes []ast.Node
	for {
		stop := false
		for _, t := range terminators {
			if p.checkKeyword(t) {
				stop = true
			}
		}
		if stop || p.check(token.EOF) {
			break
		}
		n, err := p.expression()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		if p.checkSymbol(";") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return &ast.Sequence{Nodes: nodes}, nil
}

func (p *Parser) letExpr() (ast.Node, error) {
	line, col := p.current.Line, p.current.Column
	if err := p.expectKeyword("let"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.checkKeyword("in") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		body, err := p.block("end")
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("end"); err != nil {
			return nil, err
		}
		return &ast.Let{Name: name, Value: value, Body: body, Line: line, Column: col}, nil
	}
	// Two-argument form: sugar for Declare(name, value) followed by
	// Variable(name), per spec.md §9's Open Question resolution.
	return &ast.Let{Name: name, Value: value, Body: nil, Line: line, Column: col}, nil
}

func (p *Parser) declareExpr() (ast.Node, error) {
	line, col := p.current.Line, p.current.Column
	if err := p.expectKeyword("declare"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.Declare{Name: name, Value: value, Line: line, Column: col}, nil
}

func (p *Parser) assignExpr() (ast.Node, error) {
	line, col := p.current.Line, p.current.Column
	if err := p.expectKeyword("assign"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Name: name, Value: value, Line: line, Column: col}, nil
}

func (p *Parser) ifExpr() (ast.Node, error) {
	line, col := p.current.Line, p.current.Column
	if err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	thenBranch, err := p.block("else", "end")
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Node
	if p.checkKeyword("else") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBranch, err = p.block("end")
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return &ast.If{Cond: cond, Then: thenBranch, Else: elseBranch, Line: line, Column: col}, nil
}

func (p *Parser) whileExpr() (ast.Node, error) {
	line, col := p.current.Line, p.current.Column
	if err := p.expectKeyword("while"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	body, err := p.block("end")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, Line: line, Column: col}, nil
}

func (p *Parser) doWhileExpr() (ast.Node, error) {
	line, col := p.current.Line, p.current.Column
	if err := p.expectKeyword("repeat"); err != nil {
		return nil, err
	}
	body, err := p.block("while")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("while"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return &ast.DoWhile{Body: body, Cond: cond, Line: line, Column: col}, nil
}

func (p *Parser) forExpr() (ast.Node, error) {
	line, col := p.current.Line, p.current.Column
	if err := p.expectKeyword("for"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("in"); err != nil {
		return nil, err
	}
	iterable, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	body, err := p.block("end")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return &ast.ForLoop{Var: name, Iterable: iterable, Body: body, Line: line, Column: col}, nil
}

func (p *Parser) printExpr() (ast.Node, error) {
	line, col := p.current.Line, p.current.Column
	if err := p.expectKeyword("print"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.Print{Value: value, Line: line, Column: col}, nil
}

func (p *Parser) functDefExpr() (ast.Node, error) {
	line, col := p.current.Line, p.current.Column
	if err := p.expectKeyword("deffunct"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var params []string
	for !p.checkSymbol(")") {
		param, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.checkSymbol(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	body, err := p.block("end")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return &ast.FunctDef{Name: name, Params: params, Body: body, Line: line, Column: col}, nil
}

func (p *Parser) functCallExpr() (ast.Node, error) {
	line, col := p.current.Line, p.current.Column
	if err := p.expectKeyword("callfun"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	args, err := p.argList()
	if err != nil {
		return nil, err
	}
	return &ast.FunctCall{Name: name, Args: args, Line: line, Column: col}, nil
}

func (p *Parser) functReturnExpr() (ast.Node, error) {
	line, col := p.current.Line, p.current.Column
	if err := p.expectKeyword("functret"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.FunctReturn{Value: value, Line: line, Column: col}, nil
}

func (p *Parser) argList() ([]ast.Node, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var args []ast.Node
	for !p.checkSymbol(")") {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.checkSymbol(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) expectOperator(text string) error {
	if !p.checkOperator(text) {
		return p.syntaxErrorf("expected %q, found %q", text, p.current.Text)
	}
	return p.advance()
}

// orExpr .. unary form the binary-operator precedence chain (spec.md
// §4.3): or -> and -> equality -> comparison -> addition ->
// multiplication -> quot/rem -> exponent (**) -> unary -> postfix ->
// primary.

func (p *Parser) orExpr() (ast.Node, error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.checkOperator("or") || p.checkOperator("||") {
		line, col := p.current.Line, p.current.Column
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: ast.OpOr, Left: left, Right: right, Line: line, Column: col}
	}
	return left, nil
}

func (p *Parser) andExpr() (ast.Node, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.checkOperator("and") || p.checkOperator("&&") {
		line, col := p.current.Line, p.current.Column
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: ast.OpAnd, Left: left, Right: right, Line: line, Column: col}
	}
	return left, nil
}

var equalityOps = map[string]ast.BinOpKind{"==": ast.OpEq, "!=": ast.OpNeq}

func (p *Parser) equality() (ast.Node, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.current.Kind == token.OPERATOR {
		op, ok := equalityOps[p.current.Text]
		if !ok {
			break
		}
		line, col := p.current.Line, p.current.Column
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: op, Left: left, Right: right, Line: line, Column: col}
	}
	return left, nil
}

var comparisonOps = map[string]ast.BinOpKind{"<": ast.OpLt, ">": ast.OpGt, "<=": ast.OpLe, ">=": ast.OpGe}

func (p *Parser) comparison() (ast.Node, error) {
	left, err := p.addition()
	if err != nil {
		return nil, err
	}
	for p.current.Kind == token.OPERATOR {
		op, ok := comparisonOps[p.current.Text]
		if !ok {
			break
		}
		line, col := p.current.Line, p.current.Column
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.addition()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: op, Left: left, Right: right, Line: line, Column: col}
	}
	return left, nil
}

func (p *Parser) addition() (ast.Node, error) {
	left, err := p.multiplication()
	if err != nil {
		return nil, err
	}
	for p.checkOperator("+") || p.checkOperator("-") {
		op := ast.OpAdd
		if p.current.Text == "-" {
			op = ast.OpSub
		}
		line, col := p.current.Line, p.current.Column
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.multiplication()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: op, Left: left, Right: right, Line: line, Column: col}
	}
	return left, nil
}

func (p *Parser) multiplication() (ast.Node, error) {
	left, err := p.modTerm()
	if err != nil {
		return nil, err
	}
	for p.checkOperator("*") || p.checkOperator("/") {
		op := ast.OpMul
		if p.current.Text == "/" {
			op = ast.OpDiv
		}
		line, col := p.current.Line, p.current.Column
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.modTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: op, Left: left, Right: right, Line: line, Column: col}
	}
	return left, nil
}

func (p *Parser) modTerm() (ast.Node, error) {
	left, err := p.exponent()
	if err != nil {
		return nil, err
	}
	for p.checkOperator("quot") || p.checkOperator("rem") {
		op := ast.OpQuot
		if p.current.Text == "rem" {
			op = ast.OpRem
		}
		line, col := p.current.Line, p.current.Column
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.exponent()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: op, Left: left, Right: right, Line: line, Column: col}
	}
	return left, nil
}

func (p *Parser) exponent() (ast.Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	if p.checkOperator("**") {
		line, col := p.current.Line, p.current.Column
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.exponent() // right-associative
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Op: ast.OpExp, Left: left, Right: right, Line: line, Column: col}, nil
	}
	return left, nil
}

func (p *Parser) unary() (ast.Node, error) {
	if p.checkOperator("-") {
		line, col := p.current.Line, p.current.Column
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnOp{Operand: operand, Line: line, Column: col}, nil
	}
	if p.checkOperator("not") || p.checkOperator("!") {
		line, col := p.current.Line, p.current.Column
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Not{Operand: operand, Line: line, Column: col}, nil
	}
	return p.postfix()
}

func (p *Parser) postfix() (ast.Node, error) {
	node, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.checkSymbol("."):
			line, col := p.current.Line, p.current.Column
			if err := p.advance(); err != nil {
				return nil, err
			}
			name, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			switch name {
			case "head":
				node = &ast.ListOp{Op: ast.ListHead, List: node, Line: line, Column: col}
			case "tail":
				node = &ast.ListOp{Op: ast.ListTail, List: node, Line: line, Column: col}
			case "is_empty":
				node = &ast.ListOp{Op: ast.ListIsEmpty, List: node, Line: line, Column: col}
			case "cons":
				if err := p.expectSymbol("("); err != nil {
					return nil, err
				}
				elem, err := p.expression()
				if err != nil {
					return nil, err
				}
				if err := p.expectSymbol(")"); err != nil {
					return nil, err
				}
				node = &ast.ListCons{Base: node, Element: elem, Line: line, Column: col}
			default:
				return nil, p.syntaxErrorf("unknown list/string member %q", name)
			}
		case p.checkSymbol("["):
			line, col := p.current.Line, p.current.Column
			if err := p.advance(); err != nil {
				return nil, err
			}
			first, err := p.expression()
			if err != nil {
				return nil, err
			}
			if p.checkSymbol(":") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				second, err := p.expression()
				if err != nil {
					return nil, err
				}
				if err := p.expectSymbol("]"); err != nil {
					return nil, err
				}
				node = &ast.StringSlice{Base: node, Start: first, End: second, Line: line, Column: col}
			} else {
				if err := p.expectSymbol("]"); err != nil {
					return nil, err
				}
				node = &ast.ListIndex{List: node, Index: first, Line: line, Column: col}
			}
		default:
			return node, nil
		}
	}
}

func (p *Parser) primary() (ast.Node, error) {
	line, col := p.current.Line, p.current.Column
	switch {
	case p.checkKeyword("let"):
		return p.letExpr()
	case p.checkKeyword("declare"):
		return p.declareExpr()
	case p.checkKeyword("assign"):
		return p.assignExpr()
	case p.checkKeyword("if"):
		return p.ifExpr()
	case p.checkKeyword("while"):
		return p.whileExpr()
	case p.checkKeyword("repeat"):
		return p.doWhileExpr()
	case p.checkKeyword("for"):
		return p.forExpr()
	case p.checkKeyword("print"):
		return p.printExpr()
	case p.checkKeyword("deffunct"):
		return p.functDefExpr()
	case p.checkKeyword("callfun"):
		return p.functCallExpr()
	case p.checkKeyword("functret"):
		return p.functReturnExpr()
	case p.check(token.NUM):
		lit := p.current.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.NumLiteral{Value: lit, Line: line, Column: col}, nil
	case p.check(token.BOOL):
		lit, _ := p.current.Literal.(bool)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.BoolLiteral{Value: lit, Line: line, Column: col}, nil
	case p.check(token.STRING):
		lit, _ := p.current.Literal.(string)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.StringLiteral{Value: lit, Line: line, Column: col}, nil
	case p.checkKeyword("range"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		args, err := p.argList()
		if err != nil {
			return nil, err
		}
		if len(args) != 2 {
			return nil, p.syntaxErrorf("range expects 2 arguments, found %d", len(args))
		}
		return &ast.Range{Start: args[0], End: args[1], Line: line, Column: col}, nil
	case p.checkSymbol("("):
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return inner, nil
	case p.checkSymbol("["):
		if err := p.advance(); err != nil {
			return nil, err
		}
		var elems []ast.Node
		for !p.checkSymbol("]") {
			e, err := p.expression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.checkSymbol(",") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		if err := p.expectSymbol("]"); err != nil {
			return nil, err
		}
		return &ast.ListObject{Elements: elems, Line: line, Column: col}, nil
	case p.check(token.IDENTIFIER):
		name := p.current.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Variable{Name: name, Line: line, Column: col}, nil
	case p.check(token.EOF):
		return nil, langerr.EndOfTokens{}
	default:
		return nil, p.syntaxErrorf("unexpected token %q", p.current.Text)
	}
}
