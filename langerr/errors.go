// Package langerr centralizes the flat error taxonomy shared by more than
// one pipeline stage, following the teacher's convention of a small
// per-package error.go — except these kinds cross package boundaries (the
// tree-walker and the VM must raise identically-typed errors for identical
// mistakes), so they live here instead of being duplicated per package.
package langerr

import "fmt"

// EndOfStream is raised by charstream when a caller reads past the last
// character.
type EndOfStream struct{}

func (EndOfStream) Error() string { return "end of character stream" }

// EndOfTokens is raised by the parser when it needs another token but the
// lexer has none left.
type EndOfTokens struct{}

func (EndOfTokens) Error() string { return "end of token stream" }

// TokenError reports a lexeme the lexer could not classify.
type TokenError struct {
	Line, Column int
	Lexeme       string
}

func (e TokenError) Error() string {
	return fmt.Sprintf("line %d, column %d: unrecognized token %q", e.Line, e.Column, e.Lexeme)
}

// DeclarationError reports a reference to a name that was never declared.
type DeclarationError struct {
	Name string
}

func (e DeclarationError) Error() string {
	return fmt.Sprintf("%q is not declared", e.Name)
}

// VariableRedeclarationError reports a declare of a name already bound in
// the active frame.
type VariableRedeclarationError struct {
	Name string
}

func (e VariableRedeclarationError) Error() string {
	return fmt.Sprintf("%q is already declared in this scope", e.Name)
}

// BadAssignment reports an assignment whose value's type does not match
// the variable's declared type.
type BadAssignment struct {
	Name     string
	Expected string
	Got      string
}

func (e BadAssignment) Error() string {
	return fmt.Sprintf("cannot assign %s to %q (expected %s)", e.Got, e.Name, e.Expected)
}

// InvalidConditionError reports a non-Bool value used where a condition is
// required (if/while/do-while guards).
type InvalidConditionError struct {
	Got string
}

func (e InvalidConditionError) Error() string {
	return fmt.Sprintf("condition must be Bool, got %s", e.Got)
}

// InvalidConcatenationError reports an attempt to concatenate a String
// with an operand that is not itself String-compatible.
type InvalidConcatenationError struct {
	Left, Right string
}

func (e InvalidConcatenationError) Error() string {
	return fmt.Sprintf("cannot concatenate %s with %s", e.Left, e.Right)
}

// InvalidOperation reports an operator applied to operand types it does
// not support, including division by zero.
type InvalidOperation struct {
	Op          string
	Left, Right string
	Reason      string
}

func (e InvalidOperation) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid operation %s %s %s: %s", e.Left, e.Op, e.Right, e.Reason)
	}
	return fmt.Sprintf("invalid operation %s %s %s", e.Left, e.Op, e.Right)
}

// IndexOutOfBoundsError reports an out-of-range list or string index or
// slice bound.
type IndexOutOfBoundsError struct {
	Index, Length int
}

func (e IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("index %d out of bounds for length %d", e.Index, e.Length)
}

// ListError reports a list operation (head/tail/cons) on a value that is
// not a List, or an empty-list violation.
type ListError struct {
	Op      string
	Message string
}

func (e ListError) Error() string {
	return fmt.Sprintf("list error in %s: %s", e.Op, e.Message)
}

// InvalidProgramError reports a structural problem in the program that
// isn't captured by a more specific kind (e.g. a functret outside any
// function body).
type InvalidProgramError struct {
	Message string
}

func (e InvalidProgramError) Error() string {
	return fmt.Sprintf("invalid program: %s", e.Message)
}

// InvalidFileExtensionError reports a source file name the host interfaces
// reject (spec.md §6 requires a ".gsp" extension).
type InvalidFileExtensionError struct {
	Path string
}

func (e InvalidFileExtensionError) Error() string {
	return fmt.Sprintf("invalid file extension: %s (expected .gsp)", e.Path)
}

// ArityError reports a function call whose argument count does not match
// its declaration. Not named in spec.md's §7 taxonomy directly, but
// required by original_source/core.py's funct_call arity check
// ("Not enough arguements") — see SPEC_FULL.md §4.
type ArityError struct {
	Name     string
	Want, Got int
}

func (e ArityError) Error() string {
	return fmt.Sprintf("function %q expects %d argument(s), got %d", e.Name, e.Want, e.Got)
}
