// Package parser implements Gossip's recursive-descent parser.
package parser

import "fmt"

// SyntaxError reports a malformed token sequence the grammar rejects,
// named and formatted the way the teacher's parser/error.go does.
type SyntaxError struct {
	Line, Column int
	Message      string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 Gossip Syntax error:\nline:%d, column:%d - %s", e.Line, e.Column, e.Message)
}
