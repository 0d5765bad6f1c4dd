package markup

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// SyntaxError reports a document that could not be tokenised.
type SyntaxError struct {
	// Line is the 1-based input line, or 0 when unknown.
	Line  int
	Cause error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("markup syntax error at line %d: %v", e.Line, e.Cause)
	}
	return fmt.Sprintf("markup syntax error: %v", e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

func newSyntaxError(cause error) *SyntaxError {
	se := &SyntaxError{Cause: cause}
	var xe *xml.SyntaxError
	if errors.As(cause, &xe) {
		se.Line = xe.Line
	}
	return se
}
