package vm

import "fmt"

// RuntimeError reports a failure during bytecode execution, named and
// formatted the way the teacher's vm/errors.go does.
type RuntimeError struct {
	Message string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: %s", e.Message)
}
