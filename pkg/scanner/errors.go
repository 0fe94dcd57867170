package scanner

import "fmt"

// PermissionError represents a permission-related error during scanning
type PermissionError struct {
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s: %v", e.Path, e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// ReadError represents any other filesystem failure while walking or reading.
// Op names the failing step: "stat", "readdir", "open" or "read".
type ReadError struct {
	Path string
	Op   string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
