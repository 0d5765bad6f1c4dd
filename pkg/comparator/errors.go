package comparator

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDocument is returned when either document is absent or empty.
	ErrMissingDocument = errors.New("missing document")

	// ErrMissingCredentials is returned when enrichment is requested with
	// incomplete credentials.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrUnreadableDocument is returned when a document cannot be parsed.
	ErrUnreadableDocument = errors.New("unreadable document")
)

// InputError is a precondition failure. Field names the offending input
// ("old", "new" or "credentials").
type InputError struct {
	Field string
	Kind  error
	Cause error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v: %v", e.Field, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Kind)
}

// Unwrap returns both the kind sentinel and the cause.
func (e *InputError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// NewInputError creates a new InputError.
func NewInputError(field string, kind, cause error) *InputError {
	return &InputError{Field: field, Kind: kind, Cause: cause}
}

// IsInputError reports whether err is a precondition failure.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
