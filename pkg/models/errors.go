package models

import (
	"fmt"
)

// InvalidDirectoryError reports a target path that is missing or not a
// directory. It is raised before any side effects are attempted.
type InvalidDirectoryError struct {
	Path   string
	Reason string
}

func (e *InvalidDirectoryError) Error() string {
	return fmt.Sprintf("invalid directory %q: %s", e.Path, e.Reason)
}

// MoveError reports a failed file move. It aborts the remaining placement;
// moves already completed are not rolled back.
type MoveError struct {
	Source string
	Dest   string
	Err    error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("failed to move %q to %q: %v", e.Source, e.Dest, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// LogWriteError reports a failure appending to the run log. The placement
// that already happened remains valid.
type LogWriteError struct {
	Path string
	Err  error
}

func (e *LogWriteError) Error() string {
	return fmt.Sprintf("failed to write run log %q: %v", e.Path, e.Err)
}

func (e *LogWriteError) Unwrap() error {
	return e.Err
}

// ValidationError represents a configuration or flag validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
