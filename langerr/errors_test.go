package langerr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gossip/langerr"
)

func TestErrorMessagesAreNonEmpty(t *testing.T) {
	errs := []error{
		langerr.EndOfStream{},
		langerr.EndOfTokens{},
		langerr.TokenError{Line: 1, Column: 2, Lexeme: "@"},
		langerr.DeclarationError{Name: "x"},
		langerr.VariableRedeclarationError{Name: "x"},
		langerr.BadAssignment{Name: "x", Expected: "Number", Got: "String"},
		langerr.InvalidConditionError{Got: "Number"},
		langerr.InvalidConcatenationError{Left: "String", Right: "Number"},
		langerr.InvalidOperation{Op: "/", Left: "Number", Right: "Number", Reason: "division by zero"},
		langerr.IndexOutOfBoundsError{Index: 5, Length: 3},
		langerr.ListError{Op: "head", Message: "list is empty"},
		langerr.InvalidProgramError{Message: "functret outside function"},
		langerr.InvalidFileExtensionError{Path: "foo.txt"},
		langerr.ArityError{Name: "add", Want: 2, Got: 1},
	}
	for _, err := range errs {
		assert.NotEmpty(t, err.Error())
	}
}
