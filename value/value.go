// Package value defines Gossip's runtime Value domain (spec.md §3.1):
// Number, Bool, String, List, Function, and Unit. It plays the role the
// teacher's interpreter package fills inline with bare `any` — Gossip's
// richer data model (exact rationals, homogeneous lists, functions as
// first-class-enough to store in an environment) earns its own package.
package value

import (
	"fmt"
	"strings"

	"gossip/ast"
	"gossip/rational"
)

// Kind identifies which alternative of Value is populated.
type Kind int

const (
	Number Kind = iota
	Bool
	String
	List
	Func
	Unit
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "Number"
	case Bool:
		return "Bool"
	case String:
		return "String"
	case List:
		return "List"
	case Func:
		return "Function"
	case Unit:
		return "Unit"
	default:
		return "Unknown"
	}
}

// Function is a registered Gossip function: its parameter names and body,
// looked up and called under dynamic scoping (spec.md §3.3, §4.4) — the
// caller's frame chain is visible to the callee, there is no captured
// closure environment.
type Function struct {
	Name   string
	Params []string
	Body   ast.Node // used by the tree-walking interpreter
	Entry  int       // bytecode instruction index; used by the compiled path
}

// Value is a tagged union over Gossip's runtime values. Exactly one field
// matching Kind is meaningful.
type Value struct {
	Kind Kind
	Num  rational.Rational
	Bool bool
	Str  string
	List []Value
	Func *Function

	// ElemTag is the declared element tag of a List value (spec.md §3.1,
	// §3.3): the TypeName of its elements. Empty for a List with no
	// elements yet, meaning its tag is still unconstrained. Homogeneity
	// itself is enforced by the caller (interpreter.VisitListObject /
	// VisitListCons) before building the Value — NewList just tags.
	ElemTag string
}

// NewNumber wraps a rational.Rational as a Number value.
func NewNumber(r rational.Rational) Value { return Value{Kind: Number, Num: r} }

// NewBool wraps a bool as a Bool value.
func NewBool(b bool) Value { return Value{Kind: Bool, Bool: b} }

// NewString wraps a string as a String value.
func NewString(s string) Value { return Value{Kind: String, Str: s} }

// NewList wraps a slice of Value as a List value, tagged with the
// TypeName of its first element (empty if elems is empty).
func NewList(elems []Value) Value {
	tag := ""
	if len(elems) > 0 {
		tag = elems[0].TypeName()
	}
	return Value{Kind: List, List: elems, ElemTag: tag}
}

// NewFunc wraps a *Function as a Function value.
func NewFunc(f *Function) Value { return Value{Kind: Func, Func: f} }

// NewUnit is the Unit value, returned by constructs with no meaningful
// result (e.g. Print in the tree-walker).
func NewUnit() Value { return Value{Kind: Unit} }

// TypeName reports the display name of v's kind, used in error messages.
func (v Value) TypeName() string { return v.Kind.String() }

// Equal reports structural equality, used by the "==" / "!=" operators.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Number:
		return v.Num.Equal(other.Num)
	case Bool:
		return v.Bool == other.Bool
	case String:
		return v.Str == other.Str
	case List:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	case Func:
		return v.Func == other.Func
	case Unit:
		return true
	default:
		return false
	}
}

// String renders v the way Print displays it.
func (v Value) String() string {
	switch v.Kind {
	case Number:
		return v.Num.String()
	case Bool:
		if v.Bool {
			return "true"
		}
		return "false"
	case String:
		return v.Str
	case List:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Func:
		return fmt.Sprintf("<function %s/%d>", v.Func.Name, len(v.Func.Params))
	case Unit:
		return "unit"
	default:
		return "?"
	}
}
