// Package ast defines Gossip's abstract syntax tree. Unlike the teacher's
// split Expression/Stmt interfaces (informatter-nilan/ast), Gossip's own
// grammar (spec.md §4.3) has no statement/expression distinction — every
// construct, including If and While, is itself an expression that
// produces a Value. So this package uses a single Node/Visitor pair,
// following the same Accept/Visit double-dispatch shape the teacher uses,
// generalized to one interface instead of two. See DESIGN.md.
package ast

// Node is any AST node. Accept performs double dispatch into a Visitor.
type Node interface {
	Accept(v Visitor) (any, error)
}

// Visitor dispatches over every node kind in the language. Each pipeline
// stage (interpreter, compiler) implements this interface once.
type Visitor interface {
	VisitNumLiteral(n *NumLiteral) (any, error)
	VisitBoolLiteral(n *BoolLiteral) (any, error)
	VisitStringLiteral(n *StringLiteral) (any, error)
	VisitStringSlice(n *StringSlice) (any, error)
	VisitListObject(n *ListObject) (any, error)
	VisitListCons(n *ListCons) (any, error)
	VisitListOp(n *ListOp) (any, error)
	VisitListIndex(n *ListIndex) (any, error)
	VisitVariable(n *Variable) (any, error)
	VisitDeclare(n *Declare) (any, error)
	VisitAssign(n *Assign) (any, error)
	VisitLet(n *Let) (any, error)
	VisitBinOp(n *BinOp) (any, error)
	VisitUnOp(n *UnOp) (any, error)
	VisitNot(n *Not) (any, error)
	VisitIf(n *If) (any, error)
	VisitWhile(n *While) (any, error)
	VisitDoWhile(n *DoWhile) (any, error)
	VisitForLoop(n *ForLoop) (any, error)
	VisitRange(n *Range) (any, error)
	VisitSequence(n *Sequence) (any, error)
	VisitPrint(n *Print) (any, error)
	VisitFunctDef(n *FunctDef) (any, error)
	VisitFunctCall(n *FunctCall) (any, error)
	VisitFunctReturn(n *FunctReturn) (any, error)
}

// NumLiteral is an exact rational number constant.
type NumLiteral struct {
	Value any // holds a rational.Rational
	Line, Column int
}

func (n *NumLiteral) Accept(v Visitor) (any, error) { return v.VisitNumLiteral(n) }

// BoolLiteral is a true/false constant.
type BoolLiteral struct {
	Value        bool
	Line, Column int
}

func (n *BoolLiteral) Accept(v Visitor) (any, error) { return v.VisitBoolLiteral(n) }

// StringLiteral is a quoted string constant.
type StringLiteral struct {
	Value        string
	Line, Column int
}

func (n *StringLiteral) Accept(v Visitor) (any, error) { return v.VisitStringLiteral(n) }

// StringSlice is base[start:end].
type StringSlice struct {
	Base, Start, End Node
	Line, Column     int
}

func (n *StringSlice) Accept(v Visitor) (any, error) { return v.VisitStringSlice(n) }

// ListObject is a list literal: [e1, e2, ...].
type ListObject struct {
	Elements     []Node
	Line, Column int
}

func (n *ListObject) Accept(v Visitor) (any, error) { return v.VisitListObject(n) }

// ListCons prepends Element onto Base. If Base is a Variable, evaluation
// mutates that binding in place (see SPEC_FULL.md §4, grounded on
// original_source/core.py's ListCons case).
type ListCons struct {
	Base, Element Node
	Line, Column  int
}

func (n *ListCons) Accept(v Visitor) (any, error) { return v.VisitListCons(n) }

// ListOpKind names which list accessor a ListOp node performs.
type ListOpKind int

const (
	ListIsEmpty ListOpKind = iota
	ListHead
	ListTail
)

// ListOp is a unary list accessor: is-empty?, head, or tail.
type ListOp struct {
	Op           ListOpKind
	List         Node
	Line, Column int
}

func (n *ListOp) Accept(v Visitor) (any, error) { return v.VisitListOp(n) }

// ListIndex is List[Index].
type ListIndex struct {
	List, Index  Node
	Line, Column int
}

func (n *ListIndex) Accept(v Visitor) (any, error) { return v.VisitListIndex(n) }

// Variable references a previously declared name.
type Variable struct {
	Name         string
	Line, Column int
}

func (n *Variable) Accept(v Visitor) (any, error) { return v.VisitVariable(n) }

// Declare introduces Name in the active frame, bound to Value.
type Declare struct {
	Name         string
	Value        Node
	Line, Column int
}

func (n *Declare) Accept(v Visitor) (any, error) { return v.VisitDeclare(n) }

// Assign rebinds an already-declared Name to Value.
type Assign struct {
	Name         string
	Value        Node
	Line, Column int
}

func (n *Assign) Accept(v Visitor) (any, error) { return v.VisitAssign(n) }

// Let is sugar for Declare(Name, Value) followed by Body, or — in its
// two-argument form per spec.md §9's Open Question resolution — sugar for
// Declare(Name, Value) followed by Variable(Name).
type Let struct {
	Name         string
	Value        Node
	Body         Node // nil in the two-argument form
	Line, Column int
}

func (n *Let) Accept(v Visitor) (any, error) { return v.VisitLet(n) }

// BinOpKind names a binary operator.
type BinOpKind int

const (
	OpAdd BinOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpQuot
	OpRem
	OpExp
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
)

// BinOp is a binary operation over Left and Right.
type BinOp struct {
	Op           BinOpKind
	Left, Right  Node
	Line, Column int
}

func (n *BinOp) Accept(v Visitor) (any, error) { return v.VisitBinOp(n) }

// UnOp is arithmetic negation: -Operand.
type UnOp struct {
	Operand      Node
	Line, Column int
}

func (n *UnOp) Accept(v Visitor) (any, error) { return v.VisitUnOp(n) }

// Not is boolean negation: not Operand.
type Not struct {
	Operand      Node
	Line, Column int
}

func (n *Not) Accept(v Visitor) (any, error) { return v.VisitNot(n) }

// If evaluates Cond; if true evaluates Then, else Else (nil if absent).
type If struct {
	Cond, Then, Else Node
	Line, Column     int
}

func (n *If) Accept(v Visitor) (any, error) { return v.VisitIf(n) }

// While repeats Body while Cond holds.
type While struct {
	Cond, Body   Node
	Line, Column int
}

func (n *While) Accept(v Visitor) (any, error) { return v.VisitWhile(n) }

// DoWhile runs Body once, then repeats while Cond holds.
type DoWhile struct {
	Body, Cond   Node
	Line, Column int
}

func (n *DoWhile) Accept(v Visitor) (any, error) { return v.VisitDoWhile(n) }

// ForLoop declares Var over each element of Iterable in turn, running Body.
type ForLoop struct {
	Var          string
	Iterable     Node
	Body         Node
	Line, Column int
}

func (n *ForLoop) Accept(v Visitor) (any, error) { return v.VisitForLoop(n) }

// Range produces a List from Start to End, inclusive of both ends.
type Range struct {
	Start, End   Node
	Line, Column int
}

func (n *Range) Accept(v Visitor) (any, error) { return v.VisitRange(n) }

// Sequence evaluates each Node in order, producing the value of the last.
type Sequence struct {
	Nodes        []Node
	Line, Column int
}

func (n *Sequence) Accept(v Visitor) (any, error) { return v.VisitSequence(n) }

// Print evaluates Value and writes its display form to the host's output.
type Print struct {
	Value        Node
	Line, Column int
}

func (n *Print) Accept(v Visitor) (any, error) { return v.VisitPrint(n) }

// FunctDef registers a function under Name with the given parameter names
// and Body, evaluating to Number zero (see SPEC_FULL.md §4).
type FunctDef struct {
	Name         string
	Params       []string
	Body         Node
	Line, Column int
}

func (n *FunctDef) Accept(v Visitor) (any, error) { return v.VisitFunctDef(n) }

// FunctCall invokes the function registered under Name with Args.
type FunctCall struct {
	Name         string
	Args         []Node
	Line, Column int
}

func (n *FunctCall) Accept(v Visitor) (any, error) { return v.VisitFunctCall(n) }

// FunctReturn evaluates Value and unwinds the active function call with it.
type FunctReturn struct {
	Value        Node
	Line, Column int
}

func (n *FunctReturn) Accept(v Visitor) (any, error) { return v.VisitFunctReturn(n) }
