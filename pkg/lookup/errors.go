package lookup

import "fmt"

// LookupError reports a failed lookup for one rule.
type LookupError struct {
	Name       string // Rule name
	Backend    string // "http", "store", ...
	StatusCode int    // HTTP status, when the backend is HTTP
	Cause      error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("lookup %q via %s failed with status %d: %v", e.Name, e.Backend, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("lookup %q via %s failed: %v", e.Name, e.Backend, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *LookupError) Unwrap() error {
	return e.Cause
}

// NewLookupError creates a new LookupError.
func NewLookupError(name, backend string, cause error) *LookupError {
	return &LookupError{
		Name:    name,
		Backend: backend,
		Cause:   cause,
	}
}
