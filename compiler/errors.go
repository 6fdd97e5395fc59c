// Package compiler lowers an ast.Node tree to Bytecode (spec.md §4.5).
package compiler

import "fmt"

// SemanticError reports a construct the compiler cannot lower, such as a
// binary operator with no matching opcode, named the way the teacher's
// compiler/errors.go does.
type SemanticError struct {
	Message string
}

func (e SemanticError) Error() string {
	return fmt.Sprintf("🤖 Gossip SemanticError: %s", e.Message)
}

// DeveloperError reports an AST node kind the bytecode generator does not
// lower, per SPEC_FULL.md §4a's scoping of the compiler to the subset the
// reference bytecode generator itself handles.
type DeveloperError struct {
	NodeKind string
}

func (e DeveloperError) Error() string {
	return fmt.Sprintf("🤖 Gossip DeveloperError: %s not yet supported in bytecode compilation", e.NodeKind)
}
