package models

import (
	"fmt"
	"time"
)

// MoveRecord maps each category to the final destination filenames placed
// into its folder, in move order (post collision resolution).
type MoveRecord map[CategoryKey][]string

// FileCount returns the total number of files placed across categories.
func (m MoveRecord) FileCount() int {
	n := 0
	for _, names := range m {
		n += len(names)
	}
	return n
}

// FolderStatus maps each category to whether its destination folder
// pre-existed (true) or was created during the run (false).
type FolderStatus map[CategoryKey]bool

// Violation describes one file the verifier found out of place.
type Violation struct {
	// Name is the offending filename
	Name string `json:"name"`

	// Folder is the base name of the folder containing the file;
	// empty for files sitting at the top level
	Folder string `json:"folder,omitempty"`

	// Expected is the category folder the file belongs in
	Expected CategoryKey `json:"expected,omitempty"`
}

// String renders the violation the way the run log and CLI report it.
func (v Violation) String() string {
	if v.Folder == "" {
		return fmt.Sprintf("Top level: %s", v.Name)
	}
	return fmt.Sprintf("%s in %s/ (should be in %s/)", v.Name, v.Folder, v.Expected)
}

// RunStatus represents the overall result of an organize run.
type RunStatus string

const (
	// StatusSuccess indicates files were placed and verification passed
	StatusSuccess RunStatus = "success"
	// StatusNothingToDo indicates the scan found no eligible files
	StatusNothingToDo RunStatus = "nothing-to-do"
	// StatusUnverified indicates placement completed but verification
	// found violations
	StatusUnverified RunStatus = "unverified"
	// StatusFailed indicates the run aborted on an error
	StatusFailed RunStatus = "failed"
	// StatusCancelled indicates the run was interrupted by the user
	StatusCancelled RunStatus = "cancelled"
)

// ExitCode returns the process exit code the CLI reports for the status.
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusNothingToDo, StatusUnverified, StatusFailed:
		return 1
	case StatusCancelled:
		return 130
	default:
		return 1
	}
}

// RunResult aggregates the outcome of a single organize run. It is built by
// the runner, rendered by the output formatters and the run log, and never
// persisted as an object.
type RunResult struct {
	// RunID uniquely identifies this invocation
	RunID string

	// Directory is the absolute path of the organized directory
	Directory string

	// Moved lists the final filenames placed, per category
	Moved MoveRecord

	// Folders records which category folders pre-existed
	Folders FolderStatus

	// Verified is the post-placement verification outcome
	Verified bool

	// Violations lists what the verifier flagged, empty when Verified
	Violations []Violation

	// FileCount is the total number of files placed
	FileCount int

	// LogErr holds a run-log write failure; placement stands regardless
	LogErr error

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Status RunStatus
}
