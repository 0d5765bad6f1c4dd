package store

import (
	"errors"
	"fmt"
)

// ErrInvalidIdentifier is returned for table or column names that are not
// plain SQL identifiers.
var ErrInvalidIdentifier = errors.New("invalid SQL identifier")

// ErrUnsupportedDriver is returned for an unknown driver name.
var ErrUnsupportedDriver = errors.New("unsupported driver")

// StoreError represents an error from the database.
type StoreError struct {
	Driver    string // "oracle", "sqlite", "sqlite3"
	Operation string // "open", "ping", "query", "scan", ...
	Cause     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store error [driver=%s, operation=%s]: %v", e.Driver, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NewStoreError creates a new StoreError.
func NewStoreError(driver, operation string, cause error) *StoreError {
	return &StoreError{
		Driver:    driver,
		Operation: operation,
		Cause:     cause,
	}
}
