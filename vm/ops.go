package vm

import (
	"gossip/compiler"
	"gossip/langerr"
	"gossip/value"
)

// applyBinary evaluates a two-operand arithmetic/comparison opcode. The
// short-circuiting &&/|| opcodes never reach here — the compiler lowers
// them to JMP_IF_FALSE/JMP_IF_TRUE sequences instead (see
// compiler.VisitBinOp), mirroring spec.md §9's REQUIRED short-circuit
// override in the bytecode path as well as the tree-walker.
func applyBinary(op compiler.Opcode, left, right value.Value) (value.Value, error) {
	switch op {
	case compiler.OpAdd:
		if left.Kind == value.Number && right.Kind == value.Number {
			return value.NewNumber(left.Num.Add(right.Num)), nil
		}
		if left.Kind == value.String || right.Kind == value.String {
			if left.Kind != value.String || right.Kind != value.String {
				return value.Value{}, langerr.InvalidConcatenationError{Left: left.TypeName(), Right: right.TypeName()}
			}
			return value.NewString(left.Str + right.Str), nil
		}
		return value.Value{}, langerr.InvalidOperation{Op: "+", Left: left.TypeName(), Right: right.TypeName()}
	case compiler.OpSub, compiler.OpMul, compiler.OpDiv, compiler.OpQuot, compiler.OpRem, compiler.OpExp:
		if left.Kind != value.Number || right.Kind != value.Number {
			return value.Value{}, langerr.InvalidOperation{Op: op.String(), Left: left.TypeName(), Right: right.TypeName()}
		}
		switch op {
		case compiler.OpSub:
			return value.NewNumber(left.Num.Sub(right.Num)), nil
		case compiler.OpMul:
			return value.NewNumber(left.Num.Mul(right.Num)), nil
		case compiler.OpDiv:
			if right.Num.IsZero() {
				return value.Value{}, langerr.InvalidOperation{Op: "/", Left: left.TypeName(), Right: right.TypeName(), Reason: "division by zero"}
			}
			return value.NewNumber(left.Num.Div(right.Num)), nil
		case compiler.OpQuot, compiler.OpRem:
			if !left.Num.IsIntegral() || !right.Num.IsIntegral() {
				return value.Value{}, langerr.InvalidOperation{Op: op.String(), Left: left.TypeName(), Right: right.TypeName(), Reason: "quot/rem require integer operands"}
			}
			if right.Num.IsZero() {
				return value.Value{}, langerr.InvalidOperation{Op: op.String(), Left: left.TypeName(), Right: right.TypeName(), Reason: "division by zero"}
			}
			if op == compiler.OpQuot {
				return value.NewNumber(left.Num.Quot(right.Num)), nil
			}
			return value.NewNumber(left.Num.Rem(right.Num)), nil
		case compiler.OpExp:
			return value.NewNumber(left.Num.Pow(right.Num)), nil
		}
	case compiler.OpEq:
		return value.NewBool(left.Equal(right)), nil
	case compiler.OpNeq:
		return value.NewBool(!left.Equal(right)), nil
	case compiler.OpLt, compiler.OpGt, compiler.OpLe, compiler.OpGe:
		if left.Kind != value.Number || right.Kind != value.Number {
			return value.Value{}, langerr.InvalidOperation{Op: op.String(), Left: left.TypeName(), Right: right.TypeName()}
		}
		cmp := left.Num.Cmp(right.Num)
		switch op {
		case compiler.OpLt:
			return value.NewBool(cmp < 0), nil
		case compiler.OpGt:
			return value.NewBool(cmp > 0), nil
		case compiler.OpLe:
			return value.NewBool(cmp <= 0), nil
		case compiler.OpGe:
			return value.NewBool(cmp >= 0), nil
		}
	}
	return value.Value{}, RuntimeError{Message: "unsupported opcode " + op.String()}
}
