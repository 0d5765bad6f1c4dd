package report

import "fmt"

// ExportError is returned when a report cannot be written.
type ExportError struct {
	Format string
	Target string
	Cause  error
}

func (e *ExportError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("export %s to %s: %v", e.Format, e.Target, e.Cause)
	}
	return fmt.Sprintf("export %s: %v", e.Format, e.Cause)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new ExportError.
func NewExportError(format, target string, cause error) *ExportError {
	return &ExportError{Format: format, Target: target, Cause: cause}
}
