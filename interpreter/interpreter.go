// Package interpreter implements Gossip's tree-walking evaluator
// (spec.md §4.4), following the teacher's TreeWalkInterpreter shape
// (informatter-nilan/interpreter/interpreter.go): a Visitor implementation
// with a top-level Interpret method that recovers from unexpected panics
// and reports them as a RuntimeError, pushing/popping env.Stack frames at
// block, loop, and function boundaries.
package interpreter

import (
	"fmt"
	"io"

	"gossip/ast"
	"gossip/env"
	"gossip/langerr"
	"gossip/rational"
	"gossip/value"
)

// returnSignal is an internal control-transfer error: VisitFunctReturn
// returns it to unwind through whatever nested If/While/Sequence nodes
// sit between it and the enclosing FunctCall, which is the only place
// that consumes it. It never escapes the interpreter package.
type returnSignal struct {
	value value.Value
}

func (returnSignal) Error() string { return "functret control signal" }

// TreeWalkInterpreter evaluates an ast.Node tree directly, without first
// lowering it to bytecode.
type TreeWalkInterpreter struct {
	frames *env.Stack
	out    io.Writer
}

// New builds a TreeWalkInterpreter that writes Print output to out.
func New(out io.Writer) *TreeWalkInterpreter {
	return &TreeWalkInterpreter{frames: env.New(), out: out}
}

// Interpret evaluates program and returns its value, recovering from any
// unexpected panic (an invariant violation, not a user-facing mistake)
// and reporting it as a RuntimeError the way the teacher's Interpret does.
func (ti *TreeWalkInterpreter) Interpret(program ast.Node) (result value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = RuntimeError{Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()
	v, evalErr := ti.eval(program)
	if evalErr != nil {
		if _, ok := evalErr.(returnSignal); ok {
			return value.Value{}, langerr.InvalidProgramError{Message: "functret used outside of a function body"}
		}
		return value.Value{}, evalErr
	}
	return v, nil
}

func (ti *TreeWalkInterpreter) eval(n ast.Node) (value.Value, error) {
	res, err := n.Accept(ti)
	if v, ok := res.(value.Value); ok {
		return v, err
	}
	return value.Value{}, err
}

func runtimeErr(line, col int, format string, args ...any) error {
	return RuntimeError{Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}

func (ti *TreeWalkInterpreter) VisitNumLiteral(n *ast.NumLiteral) (any, error) {
	r, _ := n.Value.(rational.Rational)
	return value.NewNumber(r), nil
}

func (ti *TreeWalkInterpreter) VisitBoolLiteral(n *ast.BoolLiteral) (any, error) {
	return value.NewBool(n.Value), nil
}

func (ti *TreeWalkInterpreter) VisitStringLiteral(n *ast.StringLiteral) (any, error) {
	return value.NewString(n.Value), nil
}

func (ti *TreeWalkInterpreter) VisitStringSlice(n *ast.StringSlice) (any, error) {
	base, err := ti.eval(n.Base)
	if err != nil {
		return nil, err
	}
	if base.Kind != value.String {
		return nil, runtimeErr(n.Line, n.Column, "slice target must be String, got %s", base.TypeName())
	}
	startV, err := ti.eval(n.Start)
	if err != nil {
		return nil, err
	}
	endV, err := ti.eval(n.End)
	if err != nil {
		return nil, err
	}
	if startV.Kind != value.Number || endV.Kind != value.Number {
		return nil, runtimeErr(n.Line, n.Column, "slice bounds must be Number")
	}
	runes := []rune(base.Str)
	start := int(startV.Num.Int64())
	end := int(endV.Num.Int64())
	if start < 0 || end > len(runes) || start > end {
		return nil, langerr.IndexOutOfBoundsError{Index: end, Length: len(runes)}
	}
	return value.NewString(string(runes[start:end])), nil
}

func (ti *TreeWalkInterpreter) VisitListObject(n *ast.ListObject) (any, error) {
	elems := make([]value.Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := ti.eval(e)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	if len(elems) > 1 {
		tag := elems[0].TypeName()
		for _, e := range elems[1:] {
			if e.TypeName() != tag {
				return nil, langerr.ListError{Op: "list literal", Message: fmt.Sprintf("element tag mismatch: expected %s, got %s", tag, e.TypeName())}
			}
		}
	}
	return value.NewList(elems), nil
}

func (ti *TreeWalkInterpreter) VisitListCons(n *ast.ListCons) (any, error) {
	elem, err := ti.eval(n.Element)
	if err != nil {
		return nil, err
	}

	if v, ok := n.Base.(*ast.Variable); ok {
		current, err := ti.frames.Lookup(v.Name)
		if err != nil {
			return nil, err
		}
		baseList, ok := current.(value.Value)
		if !ok || baseList.Kind != value.List {
			return nil, langerr.ListError{Op: "cons", Message: "target is not a List"}
		}
		if baseList.ElemTag != "" && elem.TypeName() != baseList.ElemTag {
			return nil, langerr.ListError{Op: "cons", Message: fmt.Sprintf("element tag mismatch: expected %s, got %s", baseList.ElemTag, elem.TypeName())}
		}
		newElems := make([]value.Value, 0, len(baseList.List)+1)
		newElems = append(newElems, elem)
		newElems = append(newElems, baseList.List...)
		newList := value.NewList(newElems)
		if err := ti.frames.MutateList(v.Name, newList); err != nil {
			return nil, err
		}
		return newList, nil
	}

	base, err := ti.eval(n.Base)
	if err != nil {
		return nil, err
	}
	if base.Kind != value.List {
		return nil, langerr.ListError{Op: "cons", Message: "target is not a List"}
	}
	if base.ElemTag != "" && elem.TypeName() != base.ElemTag {
		return nil, langerr.ListError{Op: "cons", Message: fmt.Sprintf("element tag mismatch: expected %s, got %s", base.ElemTag, elem.TypeName())}
	}
	newElems := make([]value.Value, 0, len(base.List)+1)
	newElems = append(newElems, elem)
	newElems = append(newElems, base.List...)
	return value.NewList(newElems), nil
}

func (ti *TreeWalkInterpreter) VisitListOp(n *ast.ListOp) (any, error) {
	list, err := ti.eval(n.List)
	if err != nil {
		return nil, err
	}
	if list.Kind != value.List {
		return nil, langerr.ListError{Op: "list operation", Message: "operand is not a List"}
	}
	switch n.Op {
	case ast.ListIsEmpty:
		return value.NewBool(len(list.List) == 0), nil
	case ast.ListHead:
		if len(list.List) == 0 {
			return nil, langerr.ListError{Op: "head", Message: "list is empty"}
		}
		return list.List[0], nil
	case ast.ListTail:
		if len(list.List) == 0 {
			return nil, langerr.ListError{Op: "tail", Message: "list is empty"}
		}
		return value.NewList(append([]value.Value{}, list.List[1:]...)), nil
	default:
		return nil, runtimeErr(n.Line, n.Column, "unknown list operation")
	}
}

func (ti *TreeWalkInterpreter) VisitListIndex(n *ast.ListIndex) (any, error) {
	list, err := ti.eval(n.List)
	if err != nil {
		return nil, err
	}
	if list.Kind != value.List {
		return nil, langerr.ListError{Op: "index", Message: "operand is not a List"}
	}
	idxV, err := ti.eval(n.Index)
	if err != nil {
		return nil, err
	}
	if idxV.Kind != value.Number {
		return nil, runtimeErr(n.Line, n.Column, "index must be Number")
	}
	idx := int(idxV.Num.Int64())
	if idx < 0 || idx >= len(list.List) {
		return nil, langerr.IndexOutOfBoundsError{Index: idx, Length: len(list.List)}
	}
	return list.List[idx], nil
}

func (ti *TreeWalkInterpreter) VisitVariable(n *ast.Variable) (any, error) {
	v, err := ti.frames.Lookup(n.Name)
	if err != nil {
		return nil, err
	}
	val, _ := v.(value.Value)
	return val, nil
}

func (ti *TreeWalkInterpreter) VisitDeclare(n *ast.Declare) (any, error) {
	val, err := ti.eval(n.Value)
	if err != nil {
		return nil, err
	}
	if err := ti.frames.Declare(n.Name, val, val.TypeName()); err != nil {
		return nil, err
	}
	return val, nil
}

func (ti *TreeWalkInterpreter) VisitAssign(n *ast.Assign) (any, error) {
	val, err := ti.eval(n.Value)
	if err != nil {
		return nil, err
	}
	if err := ti.frames.Assign(n.Name, val, val.TypeName()); err != nil {
		return nil, err
	}
	return val, nil
}

func (ti *TreeWalkInterpreter) VisitLet(n *ast.Let) (any, error) {
	val, err := ti.eval(n.Value)
	if err != nil {
		return nil, err
	}
	if n.Body == nil {
		if err := ti.frames.Declare(n.Name, val, val.TypeName()); err != nil {
			return nil, err
		}
		return val, nil
	}
	ti.frames.Push()
	defer ti.frames.Pop()
	if err := ti.frames.Declare(n.Name, val, val.TypeName()); err != nil {
		return nil, err
	}
	return ti.eval(n.Body)
}

func (ti *TreeWalkInterpreter) VisitBinOp(n *ast.BinOp) (any, error) {
	if n.Op == ast.OpAnd || n.Op == ast.OpOr {
		left, err := ti.eval(n.Left)
		if err != nil {
			return nil, err
		}
		if left.Kind != value.Bool {
			return nil, langerr.InvalidOperation{Op: "and/or", Left: left.TypeName(), Right: "?"}
		}
		if n.Op == ast.OpAnd && !left.Bool {
			return value.NewBool(false), nil
		}
		if n.Op == ast.OpOr && left.Bool {
			return value.NewBool(true), nil
		}
		right, err := ti.eval(n.Right)
		if err != nil {
			return nil, err
		}
		if right.Kind != value.Bool {
			return nil, langerr.InvalidOperation{Op: "and/or", Left: left.TypeName(), Right: right.TypeName()}
		}
		return value.NewBool(right.Bool), nil
	}

	left, err := ti.eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := ti.eval(n.Right)
	if err != nil {
		return nil, err
	}
	return evalBinOp(n, left, right)
}

func opSymbol(op ast.BinOpKind) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpQuot:
		return "quot"
	case ast.OpRem:
		return "rem"
	case ast.OpExp:
		return "**"
	case ast.OpEq:
		return "=="
	case ast.OpNeq:
		return "!="
	case ast.OpLt:
		return "<"
	case ast.OpGt:
		return ">"
	case ast.OpLe:
		return "<="
	case ast.OpGe:
		return ">="
	default:
		return "?"
	}
}

func evalBinOp(n *ast.BinOp, left, right value.Value) (any, error) {
	switch n.Op {
	case ast.OpAdd:
		if left.Kind == value.Number && right.Kind == value.Number {
			return value.NewNumber(left.Num.Add(right.Num)), nil
		}
		if left.Kind == value.String || right.Kind == value.String {
			if left.Kind != value.String || right.Kind != value.String {
				return nil, langerr.InvalidConcatenationError{Left: left.TypeName(), Right: right.TypeName()}
			}
			return value.NewString(left.Str + right.Str), nil
		}
		return nil, langerr.InvalidOperation{Op: "+", Left: left.TypeName(), Right: right.TypeName()}
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpQuot, ast.OpRem, ast.OpExp:
		if left.Kind != value.Number || right.Kind != value.Number {
			return nil, langerr.InvalidOperation{Op: opSymbol(n.Op), Left: left.TypeName(), Right: right.TypeName()}
		}
		switch n.Op {
		case ast.OpSub:
			return value.NewNumber(left.Num.Sub(right.Num)), nil
		case ast.OpMul:
			return value.NewNumber(left.Num.Mul(right.Num)), nil
		case ast.OpDiv:
			if right.Num.IsZero() {
				return nil, langerr.InvalidOperation{Op: "/", Left: left.TypeName(), Right: right.TypeName(), Reason: "division by zero"}
			}
			return value.NewNumber(left.Num.Div(right.Num)), nil
		case ast.OpQuot, ast.OpRem:
			if !left.Num.IsIntegral() || !right.Num.IsIntegral() {
				return nil, langerr.InvalidOperation{Op: opSymbol(n.Op), Left: left.TypeName(), Right: right.TypeName(), Reason: "quot/rem require integer operands"}
			}
			if right.Num.IsZero() {
				return nil, langerr.InvalidOperation{Op: opSymbol(n.Op), Left: left.TypeName(), Right: right.TypeName(), Reason: "division by zero"}
			}
			if n.Op == ast.OpQuot {
				return value.NewNumber(left.Num.Quot(right.Num)), nil
			}
			return value.NewNumber(left.Num.Rem(right.Num)), nil
		case ast.OpExp:
			return value.NewNumber(left.Num.Pow(right.Num)), nil
		}
	case ast.OpEq:
		return value.NewBool(left.Equal(right)), nil
	case ast.OpNeq:
		return value.NewBool(!left.Equal(right)), nil
	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		if left.Kind != value.Number || right.Kind != value.Number {
			return nil, langerr.InvalidOperation{Op: opSymbol(n.Op), Left: left.TypeName(), Right: right.TypeName()}
		}
		cmp := left.Num.Cmp(right.Num)
		switch n.Op {
		case ast.OpLt:
			return value.NewBool(cmp < 0), nil
		case ast.OpGt:
			return value.NewBool(cmp > 0), nil
		case ast.OpLe:
			return value.NewBool(cmp <= 0), nil
		case ast.OpGe:
			return value.NewBool(cmp >= 0), nil
		}
	}
	return nil, runtimeErr(n.Line, n.Column, "unsupported binary operator")
}

func (ti *TreeWalkInterpreter) VisitUnOp(n *ast.UnOp) (any, error) {
	v, err := ti.eval(n.Operand)
	if err != nil {
		return nil, err
	}
	if v.Kind != value.Number {
		return nil, runtimeErr(n.Line, n.Column, "unary - requires Number, got %s", v.TypeName())
	}
	return value.NewNumber(v.Num.Neg()), nil
}

func (ti *TreeWalkInterpreter) VisitNot(n *ast.Not) (any, error) {
	v, err := ti.eval(n.Operand)
	if err != nil {
		return nil, err
	}
	if v.Kind != value.Bool {
		return nil, runtimeErr(n.Line, n.Column, "not requires Bool, got %s", v.TypeName())
	}
	return value.NewBool(!v.Bool), nil
}

func (ti *TreeWalkInterpreter) VisitIf(n *ast.If) (any, error) {
	cond, err := ti.eval(n.Cond)
	if err != nil {
		return nil, err
	}
	if cond.Kind != value.Bool {
		return nil, langerr.InvalidConditionError{Got: cond.TypeName()}
	}
	if cond.Bool {
		ti.frames.Push()
		defer ti.frames.Pop()
		return ti.eval(n.Then)
	}
	if n.Else != nil {
		ti.frames.Push()
		defer ti.frames.Pop()
		return ti.eval(n.Else)
	}
	return value.NewUnit(), nil
}

func (ti *TreeWalkInterpreter) VisitWhile(n *ast.While) (any, error) {
	for {
		cond, err := ti.eval(n.Cond)
		if err != nil {
			return nil, err
		}
		if cond.Kind != value.Bool {
			return nil, langerr.InvalidConditionError{Got: cond.TypeName()}
		}
		if !cond.Bool {
			break
		}
		ti.frames.Push()
		_, err = ti.eval(n.Body)
		ti.frames.Pop()
		if err != nil {
			return nil, err
		}
	}
	return value.NewUnit(), nil
}

func (ti *TreeWalkInterpreter) VisitDoWhile(n *ast.DoWhile) (any, error) {
	for {
		ti.frames.Push()
		_, err := ti.eval(n.Body)
		ti.frames.Pop()
		if err != nil {
			return nil, err
		}
		cond, err := ti.eval(n.Cond)
		if err != nil {
			return nil, err
		}
		if cond.Kind != value.Bool {
			return nil, langerr.InvalidConditionError{Got: cond.TypeName()}
		}
		if !cond.Bool {
			break
		}
	}
	return value.NewUnit(), nil
}

func (ti *TreeWalkInterpreter) VisitForLoop(n *ast.ForLoop) (any, error) {
	iterable, err := ti.eval(n.Iterable)
	if err != nil {
		return nil, err
	}
	if iterable.Kind != value.List {
		return nil, runtimeErr(n.Line, n.Column, "for ... in requires a List, got %s", iterable.TypeName())
	}

	ti.frames.Push()
	defer ti.frames.Pop()

	for i, elem := range iterable.List {
		if i == 0 {
			if err := ti.frames.Declare(n.Var, elem, elem.TypeName()); err != nil {
				return nil, err
			}
		} else if err := ti.frames.Assign(n.Var, elem, elem.TypeName()); err != nil {
			return nil, err
		}
		ti.frames.Push()
		_, err := ti.eval(n.Body)
		ti.frames.Pop()
		if err != nil {
			return nil, err
		}
	}
	return value.NewUnit(), nil
}

// VisitRange builds the inclusive integer sequence from floor(Start) to
// floor(End), matching spec.md §4.4's "⌊L⌋ to ⌊R⌋ inclusive".
func (ti *TreeWalkInterpreter) VisitRange(n *ast.Range) (any, error) {
	startV, err := ti.eval(n.Start)
	if err != nil {
		return nil, err
	}
	endV, err := ti.eval(n.End)
	if err != nil {
		return nil, err
	}
	if startV.Kind != value.Number || endV.Kind != value.Number {
		return nil, runtimeErr(n.Line, n.Column, "range bounds must be Number")
	}
	start, end := startV.Num.Floor(), endV.Num.Floor()
	var elems []value.Value
	for i := start; i <= end; i++ {
		elems = append(elems, value.NewNumber(rational.FromInt64(i)))
	}
	return value.NewList(elems), nil
}

func (ti *TreeWalkInterpreter) VisitSequence(n *ast.Sequence) (any, error) {
	var result value.Value
	for _, node := range n.Nodes {
		v, err := ti.eval(node)
		if err != nil {
			return v, err
		}
		result = v
	}
	return result, nil
}

func (ti *TreeWalkInterpreter) VisitPrint(n *ast.Print) (any, error) {
	v, err := ti.eval(n.Value)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(ti.out, v.String())
	return value.NewUnit(), nil
}

func (ti *TreeWalkInterpreter) VisitFunctDef(n *ast.FunctDef) (any, error) {
	fn := &value.Function{Name: n.Name, Params: n.Params, Body: n.Body}
	fnVal := value.NewFunc(fn)
	if err := ti.frames.Declare(n.Name, fnVal, fnVal.TypeName()); err != nil {
		return nil, err
	}
	return value.NewNumber(rational.FromInt64(0)), nil
}

func (ti *TreeWalkInterpreter) VisitFunctCall(n *ast.FunctCall) (any, error) {
	raw, err := ti.frames.Lookup(n.Name)
	if err != nil {
		return nil, err
	}
	fnVal, ok := raw.(value.Value)
	if !ok || fnVal.Kind != value.Func {
		return nil, langerr.DeclarationError{Name: n.Name}
	}
	fn := fnVal.Func

	if len(n.Args) != len(fn.Params) {
		return nil, langerr.ArityError{Name: n.Name, Want: len(fn.Params), Got: len(n.Args)}
	}

	argVals := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := ti.eval(a)
		if err != nil {
			return nil, err
		}
		argVals[i] = v
	}

	ti.frames.Push()
	defer ti.frames.Pop()
	for i, param := range fn.Params {
		if err := ti.frames.Declare(param, argVals[i], argVals[i].TypeName()); err != nil {
			return nil, err
		}
	}

	result, err := ti.eval(fn.Body)
	if err != nil {
		if rs, ok := err.(returnSignal); ok {
			return rs.value, nil
		}
		return nil, err
	}
	return result, nil
}

func (ti *TreeWalkInterpreter) VisitFunctReturn(n *ast.FunctReturn) (any, error) {
	v, err := ti.eval(n.Value)
	if err != nil {
		return nil, err
	}
	return v, returnSignal{value: v}
}
