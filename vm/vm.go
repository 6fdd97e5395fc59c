// Package vm implements Gossip's stack-based virtual machine (spec.md
// §4.6), playing bytecode produced by the compiler package. Grounded on
// the teacher's minimal VM{stack, ip, debug} shape
// (informatter-nilan/vm/vm.go), generalized with the frame stack
// (env.Stack, shared with the interpreter), a return-address stack and a
// parallel call-depth stack that together implement the dynamic-scoping
// CALL/RETURN pair original_source/bytecode.py's VM class uses
// (ret_scope()/funct_sc) — CALL pushes onto both stacks together and
// RETURN pops both and unwinds the frame stack to the recorded depth, so
// there is no separate scope counter to drift out of sync with it (see
// DESIGN.md).
package vm

import (
	"fmt"
	"io"

	"gossip/compiler"
	"gossip/env"
	"gossip/langerr"
	"gossip/value"
)

// VM executes a compiler.Bytecode program.
type VM struct {
	stack       Stack
	frames      *env.Stack
	returnAddrs []int
	callDepths  []int // frame depth to restore to on the matching OP_RETURN
	ip          int
	out         io.Writer
}

// New builds a VM that writes Print output to out.
func New(out io.Writer) *VM {
	return &VM{frames: env.New(), out: out}
}

// Run executes code from instruction 0 until OP_HALT and returns the
// final value left on the operand stack, or Unit if the stack is empty.
func (m *VM) Run(code *compiler.Bytecode) (result value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = RuntimeError{Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	m.ip = 0
	for m.ip < len(code.Instructions) {
		instr := code.Instructions[m.ip]
		switch instr.Op {
		case compiler.OpHalt:
			return m.finalValue()

		case compiler.OpPush:
			v, _ := instr.Operand.(value.Value)
			m.stack.Push(v)

		case compiler.OpPop:
			if _, err := m.stack.Pop(); err != nil {
				return value.Value{}, err
			}

		case compiler.OpDup:
			v, err := m.stack.Peek()
			if err != nil {
				return value.Value{}, err
			}
			m.stack.Push(v)

		case compiler.OpUminus:
			v, err := m.stack.Pop()
			if err != nil {
				return value.Value{}, err
			}
			if v.Kind != value.Number {
				return value.Value{}, RuntimeError{Message: "unary - requires Number, got " + v.TypeName()}
			}
			m.stack.Push(value.NewNumber(v.Num.Neg()))

		case compiler.OpNot:
			v, err := m.stack.Pop()
			if err != nil {
				return value.Value{}, err
			}
			if v.Kind != value.Bool {
				return value.Value{}, RuntimeError{Message: "not requires Bool, got " + v.TypeName()}
			}
			m.stack.Push(value.NewBool(!v.Bool))

		case compiler.OpAdd, compiler.OpSub, compiler.OpMul, compiler.OpDiv,
			compiler.OpQuot, compiler.OpRem, compiler.OpExp, compiler.OpEq,
			compiler.OpNeq, compiler.OpLt, compiler.OpGt, compiler.OpLe, compiler.OpGe:
			right, err := m.stack.Pop()
			if err != nil {
				return value.Value{}, err
			}
			left, err := m.stack.Pop()
			if err != nil {
				return value.Value{}, err
			}
			v, err := applyBinary(instr.Op, left, right)
			if err != nil {
				return value.Value{}, err
			}
			m.stack.Push(v)

		case compiler.OpJmp:
			lbl, _ := instr.Operand.(*compiler.Label)
			m.ip = lbl.Index
			continue

		case compiler.OpJmpIfFalse:
			v, err := m.stack.Pop()
			if err != nil {
				return value.Value{}, err
			}
			if v.Kind != value.Bool {
				return value.Value{}, langerr.InvalidConditionError{Got: v.TypeName()}
			}
			if !v.Bool {
				lbl, _ := instr.Operand.(*compiler.Label)
				m.ip = lbl.Index
				continue
			}

		case compiler.OpJmpIfTrue:
			v, err := m.stack.Pop()
			if err != nil {
				return value.Value{}, err
			}
			if v.Kind != value.Bool {
				return value.Value{}, langerr.InvalidConditionError{Got: v.TypeName()}
			}
			if v.Bool {
				lbl, _ := instr.Operand.(*compiler.Label)
				m.ip = lbl.Index
				continue
			}

		case compiler.OpLoad:
			name, _ := instr.Operand.(string)
			raw, err := m.frames.Lookup(name)
			if err != nil {
				return value.Value{}, err
			}
			v, _ := raw.(value.Value)
			m.stack.Push(v)

		case compiler.OpStore:
			name, _ := instr.Operand.(string)
			v, err := m.stack.Pop()
			if err != nil {
				return value.Value{}, err
			}
			if err := m.frames.Assign(name, v, v.TypeName()); err != nil {
				return value.Value{}, err
			}

		case compiler.OpDeclare:
			name, _ := instr.Operand.(string)
			v, err := m.stack.Pop()
			if err != nil {
				return value.Value{}, err
			}
			if err := m.frames.Declare(name, v, v.TypeName()); err != nil {
				return value.Value{}, err
			}

		case compiler.OpPushFrame:
			m.frames.Push()

		case compiler.OpPopFrame:
			m.frames.Pop()

		case compiler.OpCall:
			call, _ := instr.Operand.(compiler.CallOperand)
			raw, err := m.frames.Lookup(call.Name)
			if err != nil {
				return value.Value{}, err
			}
			fnVal, ok := raw.(value.Value)
			if !ok || fnVal.Kind != value.Func {
				return value.Value{}, langerr.DeclarationError{Name: call.Name}
			}
			fn := fnVal.Func
			if call.Argc != len(fn.Params) {
				return value.Value{}, langerr.ArityError{Name: call.Name, Want: len(fn.Params), Got: call.Argc}
			}
			args := make([]value.Value, call.Argc)
			for i := call.Argc - 1; i >= 0; i-- {
				v, err := m.stack.Pop()
				if err != nil {
					return value.Value{}, err
				}
				args[i] = v
			}
			restoreDepth := m.frames.Depth()
			m.frames.Push()
			for i, param := range fn.Params {
				if err := m.frames.Declare(param, args[i], args[i].TypeName()); err != nil {
					return value.Value{}, err
				}
			}
			m.returnAddrs = append(m.returnAddrs, m.ip+1)
			m.callDepths = append(m.callDepths, restoreDepth)
			m.ip = fn.Entry
			continue

		case compiler.OpReturn:
			if len(m.returnAddrs) == 0 {
				return value.Value{}, langerr.InvalidProgramError{Message: "functret used outside of a function body"}
			}
			last := len(m.returnAddrs) - 1
			m.frames.PopTo(m.callDepths[last])
			m.ip = m.returnAddrs[last]
			m.returnAddrs = m.returnAddrs[:last]
			m.callDepths = m.callDepths[:last]
			continue

		case compiler.OpPrint:
			v, err := m.stack.Pop()
			if err != nil {
				return value.Value{}, err
			}
			fmt.Fprintln(m.out, v.String())

		default:
			return value.Value{}, RuntimeError{Message: "unknown opcode " + instr.Op.String()}
		}
		m.ip++
	}
	return m.finalValue()
}

func (m *VM) finalValue() (value.Value, error) {
	if m.stack.IsEmpty() {
		return value.NewUnit(), nil
	}
	return m.stack.Peek()
}
