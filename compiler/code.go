package compiler

import "fmt"

// Opcode names one VM instruction. Grounded on original_source/bytecode.py's
// per-opcode dataclasses (PUSH, ADD, JMP, ...) rather than the teacher's
// byte-packed compiler/code.go scheme: Gossip's operands are
// variable-typed (a value.Value literal, a variable name, a *Label), which
// a fixed-width byte encoding would force through an unwanted constant-pool
// indirection. See DESIGN.md.
type Opcode int

const (
	OpPush Opcode = iota
	OpUminus
	OpAdd
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
	OpNot
	OpJmp
	OpJmpIfFalse
	OpJmpIfTrue
	OpPop
	OpDup
	OpLoad
	OpStore
	OpDeclare
	OpPushFrame
	OpPopFrame
	OpCall
	OpReturn
	OpPrint
	OpHalt
)

var opcodeNames = map[Opcode]string{
	OpPush: "PUSH", OpUminus: "UMINUS", OpAdd: "ADD", OpSub: "SUB", OpMul: "MUL",
	OpDiv: "DIV", OpQuot: "QUOT", OpRem: "REM", OpExp: "EXP", OpEq: "EQ",
	OpNeq: "NEQ", OpLt: "LT", OpGt: "GT", OpLe: "LE", OpGe: "GE", OpNot: "NOT",
	OpJmp: "JMP", OpJmpIfFalse: "JMP_IF_FALSE", OpJmpIfTrue: "JMP_IF_TRUE",
	OpPop: "POP", OpDup: "DUP", OpLoad: "LOAD", OpStore: "STORE",
	OpDeclare: "DECLARE", OpPushFrame: "PUSH_FRAME", OpPopFrame: "POP_FRAME",
	OpCall: "CALL", OpReturn: "RETURN", OpPrint: "PRINT", OpHalt: "HALT",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// Label is a mutable, forward-declarable jump target. EmitLabel patches
// Index to the instruction position once the generator reaches it — the
// same backpatching technique original_source/bytecode.py's Label class
// uses, instead of the teacher's fixed-width relative-offset encoding.
type Label struct {
	Name  string
	Index int
}

// NewLabel returns an unresolved Label.
func NewLabel(name string) *Label {
	return &Label{Name: name, Index: -1}
}

// CallOperand is OpCall's operand: the callee name and argument count.
type CallOperand struct {
	Name string
	Argc int
}

// Instruction is one bytecode instruction. Operand's dynamic type depends
// on Op: value.Value for OpPush, string for OpLoad/OpStore/OpDeclare,
// *Label for the jump family, CallOperand for OpCall, nil otherwise.
type Instruction struct {
	Op      Opcode
	Operand any
}

// Bytecode is the linear instruction sequence a Gossip program compiles
// to, played by vm.VM.
type Bytecode struct {
	Instructions []Instruction
}

// NewBytecode returns an empty Bytecode.
func NewBytecode() *Bytecode {
	return &Bytecode{}
}

// Emit appends an instruction and returns its index.
func (b *Bytecode) Emit(op Opcode, operand any) int {
	b.Instructions = append(b.Instructions, Instruction{Op: op, Operand: operand})
	return len(b.Instructions) - 1
}

// EmitLabel patches l to the current (about to be emitted) instruction
// index.
func (b *Bytecode) EmitLabel(l *Label) {
	l.Index = len(b.Instructions)
}

// Disassemble renders the instruction list for the `emit` CLI subcommand.
func (b *Bytecode) Disassemble() string {
	out := ""
	for i, instr := range b.Instructions {
		out += fmt.Sprintf("%04d %-14s", i, instr.Op)
		switch operand := instr.Operand.(type) {
		case *Label:
			out += fmt.Sprintf("-> %04d", operand.Index)
		case CallOperand:
			out += fmt.Sprintf("%s/%d", operand.Name, operand.Argc)
		case string:
			out += operand
		case nil:
		default:
			out += fmt.Sprintf("%v", operand)
		}
		out += "\n"
	}
	return out
}
