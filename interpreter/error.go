package interpreter

import "fmt"

// RuntimeError reports a failure during tree-walking evaluation, named
// and formatted the way the teacher's interpreter/error.go does.
type RuntimeError struct {
	Line, Column int
	Message      string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 Gossip Runtime error:\nline:%d, column:%d - %s", e.Line, e.Column, e.Message)
}
