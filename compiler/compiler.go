package compiler

import (
	"gossip/ast"
	"gossip/rational"
	"gossip/value"
)

// ASTCompiler walks an ast.Node tree and emits Bytecode, implementing
// ast.Visitor the same way the teacher's ASTCompiler
// (informatter-nilan/compiler/ast_compiler.go) does, restricted to the
// node-kind subset SPEC_FULL.md §4a scopes the generator to. Nodes outside
// that subset raise DeveloperError via CompileAST's recover, matching the
// teacher's compiler panic/recover convention.
type ASTCompiler struct {
	code *Bytecode
}

// NewCompiler returns an ASTCompiler with a fresh Bytecode.
func NewCompiler() *ASTCompiler {
	return &ASTCompiler{code: NewBytecode()}
}

// CompileAST compiles program into Bytecode, recovering from any
// DeveloperError/SemanticError panic raised deep in the Visit chain and
// returning it as a regular error, the way the teacher's CompileAST does.
func CompileAST(program ast.Node) (code *Bytecode, err error) {
	c := NewCompiler()
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	if _, visitErr := program.Accept(c); visitErr != nil {
		return nil, visitErr
	}
	c.code.Emit(OpHalt, nil)
	return c.code, nil
}

func (c *ASTCompiler) compile(n ast.Node) error {
	_, err := n.Accept(c)
	return err
}

func (c *ASTCompiler) VisitNumLiteral(n *ast.NumLiteral) (any, error) {
	r, _ := n.Value.(rational.Rational)
	c.code.Emit(OpPush, value.NewNumber(r))
	return nil, nil
}

func (c *ASTCompiler) VisitBoolLiteral(n *ast.BoolLiteral) (any, error) {
	c.code.Emit(OpPush, value.NewBool(n.Value))
	return nil, nil
}

func (c *ASTCompiler) VisitStringLiteral(n *ast.StringLiteral) (any, error) {
	c.code.Emit(OpPush, value.NewString(n.Value))
	return nil, nil
}

func (c *ASTCompiler) VisitStringSlice(n *ast.StringSlice) (any, error) {
	panic(DeveloperError{NodeKind: "StringSlice"})
}

func (c *ASTCompiler) VisitListObject(n *ast.ListObject) (any, error) {
	panic(DeveloperError{NodeKind: "ListObject"})
}

func (c *ASTCompiler) VisitListCons(n *ast.ListCons) (any, error) {
	panic(DeveloperError{NodeKind: "ListCons"})
}

func (c *ASTCompiler) VisitListOp(n *ast.ListOp) (any, error) {
	panic(DeveloperError{NodeKind: "ListOp"})
}

func (c *ASTCompiler) VisitListIndex(n *ast.ListIndex) (any, error) {
	panic(DeveloperError{NodeKind: "ListIndex"})
}

func (c *ASTCompiler) VisitForLoop(n *ast.ForLoop) (any, error) {
	panic(DeveloperError{NodeKind: "ForLoop"})
}

func (c *ASTCompiler) VisitRange(n *ast.Range) (any, error) {
	panic(DeveloperError{NodeKind: "Range"})
}

func (c *ASTCompiler) VisitVariable(n *ast.Variable) (any, error) {
	c.code.Emit(OpLoad, n.Name)
	return nil, nil
}

func (c *ASTCompiler) VisitDeclare(n *ast.Declare) (any, error) {
	if err := c.compile(n.Value); err != nil {
		return nil, err
	}
	c.code.Emit(OpDup, nil)
	c.code.Emit(OpDeclare, n.Name)
	return nil, nil
}

func (c *ASTCompiler) VisitAssign(n *ast.Assign) (any, error) {
	if err := c.compile(n.Value); err != nil {
		return nil, err
	}
	c.code.Emit(OpDup, nil)
	c.code.Emit(OpStore, n.Name)
	return nil, nil
}

func (c *ASTCompiler) VisitLet(n *ast.Let) (any, error) {
	if err := c.compile(n.Value); err != nil {
		return nil, err
	}
	if n.Body == nil {
		c.code.Emit(OpDup, nil)
		c.code.Emit(OpDeclare, n.Name)
		return nil, nil
	}
	c.code.Emit(OpPushFrame, nil)
	c.code.Emit(OpDeclare, n.Name)
	if err := c.compile(n.Body); err != nil {
		return nil, err
	}
	c.code.Emit(OpPopFrame, nil)
	return nil, nil
}

var binOpcodes = map[ast.BinOpKind]Opcode{
	ast.OpAdd: OpAdd, ast.OpSub: OpSub, ast.OpMul: OpMul, ast.OpDiv: OpDiv,
	ast.OpQuot: OpQuot, ast.OpRem: OpRem, ast.OpExp: OpExp, ast.OpEq: OpEq,
	ast.OpNeq: OpNeq, ast.OpLt: OpLt, ast.OpGt: OpGt, ast.OpLe: OpLe, ast.OpGe: OpGe,
}

func (c *ASTCompiler) VisitBinOp(n *ast.BinOp) (any, error) {
	if n.Op == ast.OpAnd {
		if err := c.compile(n.Left); err != nil {
			return nil, err
		}
		shortLabel := NewLabel("and_short")
		endLabel := NewLabel("and_end")
		c.code.Emit(OpJmpIfFalse, shortLabel)
		if err := c.compile(n.Right); err != nil {
			return nil, err
		}
		c.code.Emit(OpJmp, endLabel)
		c.code.EmitLabel(shortLabel)
		c.code.Emit(OpPush, value.NewBool(false))
		c.code.EmitLabel(endLabel)
		return nil, nil
	}
	if n.Op == ast.OpOr {
		if err := c.compile(n.Left); err != nil {
			return nil, err
		}
		shortLabel := NewLabel("or_short")
		endLabel := NewLabel("or_end")
		c.code.Emit(OpJmpIfTrue, shortLabel)
		if err := c.compile(n.Right); err != nil {
			return nil, err
		}
		c.code.Emit(OpJmp, endLabel)
		c.code.EmitLabel(shortLabel)
		c.code.Emit(OpPush, value.NewBool(true))
		c.code.EmitLabel(endLabel)
		return nil, nil
	}

	if err := c.compile(n.Left); err != nil {
		return nil, err
	}
	if err := c.compile(n.Right); err != nil {
		return nil, err
	}
	op, ok := binOpcodes[n.Op]
	if !ok {
		panic(SemanticError{Message: "unsupported binary operator in bytecode compilation"})
	}
	c.code.Emit(op, nil)
	return nil, nil
}

func (c *ASTCompiler) VisitUnOp(n *ast.UnOp) (any, error) {
	if err := c.compile(n.Operand); err != nil {
		return nil, err
	}
	c.code.Emit(OpUminus, nil)
	return nil, nil
}

func (c *ASTCompiler) VisitNot(n *ast.Not) (any, error) {
	if err := c.compile(n.Operand); err != nil {
		return nil, err
	}
	c.code.Emit(OpNot, nil)
	return nil, nil
}

func (c *ASTCompiler) VisitIf(n *ast.If) (any, error) {
	if err := c.compile(n.Cond); err != nil {
		return nil, err
	}
	elseLabel := NewLabel("if_else")
	endLabel := NewLabel("if_end")
	c.code.Emit(OpJmpIfFalse, elseLabel)

	c.code.Emit(OpPushFrame, nil)
	if err := c.compile(n.Then); err != nil {
		return nil, err
	}
	c.code.Emit(OpPopFrame, nil)
	c.code.Emit(OpJmp, endLabel)

	c.code.EmitLabel(elseLabel)
	if n.Else != nil {
		c.code.Emit(OpPushFrame, nil)
		if err := c.compile(n.Else); err != nil {
			return nil, err
		}
		c.code.Emit(OpPopFrame, nil)
	} else {
		c.code.Emit(OpPush, value.NewUnit())
	}
	c.code.EmitLabel(endLabel)
	return nil, nil
}

func (c *ASTCompiler) VisitWhile(n *ast.While) (any, error) {
	startLabel := NewLabel("while_start")
	endLabel := NewLabel("while_end")
	c.code.EmitLabel(startLabel)
	if err := c.compile(n.Cond); err != nil {
		return nil, err
	}
	c.code.Emit(OpJmpIfFalse, endLabel)
	c.code.Emit(OpPushFrame, nil)
	if err := c.compile(n.Body); err != nil {
		return nil, err
	}
	c.code.Emit(OpPop, nil)
	c.code.Emit(OpPopFrame, nil)
	c.code.Emit(OpJmp, startLabel)
	c.code.EmitLabel(endLabel)
	c.code.Emit(OpPush, value.NewUnit())
	return nil, nil
}

func (c *ASTCompiler) VisitDoWhile(n *ast.DoWhile) (any, error) {
	bodyLabel := NewLabel("do_body")
	c.code.EmitLabel(bodyLabel)
	c.code.Emit(OpPushFrame, nil)
	if err := c.compile(n.Body); err != nil {
		return nil, err
	}
	c.code.Emit(OpPop, nil)
	c.code.Emit(OpPopFrame, nil)
	if err := c.compile(n.Cond); err != nil {
		return nil, err
	}
	c.code.Emit(OpJmpIfTrue, bodyLabel)
	c.code.Emit(OpPush, value.NewUnit())
	return nil, nil
}

func (c *ASTCompiler) VisitSequence(n *ast.Sequence) (any, error) {
	if len(n.Nodes) == 0 {
		c.code.Emit(OpPush, value.NewUnit())
		return nil, nil
	}
	for i, node := range n.Nodes {
		if err := c.compile(node); err != nil {
			return nil, err
		}
		if i < len(n.Nodes)-1 {
			c.code.Emit(OpPop, nil)
		}
	}
	return nil, nil
}

func (c *ASTCompiler) VisitPrint(n *ast.Print) (any, error) {
	if err := c.compile(n.Value); err != nil {
		return nil, err
	}
	c.code.Emit(OpPrint, nil)
	c.code.Emit(OpPush, value.NewUnit())
	return nil, nil
}

func (c *ASTCompiler) VisitFunctDef(n *ast.FunctDef) (any, error) {
	skipLabel := NewLabel("fn_skip")
	c.code.Emit(OpJmp, skipLabel)
	// OpCall itself pushes the callee's frame and binds each parameter
	// name directly (see vm.VM's OpCall handling), so the entry point
	// here is just the body — no PUSH_FRAME/DECLARE pair for params.
	entry := len(c.code.Instructions)
	if err := c.compile(n.Body); err != nil {
		return nil, err
	}
	c.code.Emit(OpReturn, nil)
	c.code.EmitLabel(skipLabel)

	fn := &value.Function{Name: n.Name, Params: n.Params, Entry: entry}
	c.code.Emit(OpPush, value.NewFunc(fn))
	c.code.Emit(OpDeclare, n.Name)
	c.code.Emit(OpPush, value.NewNumber(rational.FromInt64(0)))
	return nil, nil
}

func (c *ASTCompiler) VisitFunctCall(n *ast.FunctCall) (any, error) {
	for _, arg := range n.Args {
		if err := c.compile(arg); err != nil {
			return nil, err
		}
	}
	c.code.Emit(OpCall, CallOperand{Name: n.Name, Argc: len(n.Args)})
	return nil, nil
}

func (c *ASTCompiler) VisitFunctReturn(n *ast.FunctReturn) (any, error) {
	if err := c.compile(n.Value); err != nil {
		return nil, err
	}
	c.code.Emit(OpReturn, nil)
	return nil, nil
}
