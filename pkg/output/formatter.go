// Package output renders organize results for the caller-facing channels:
// console text, JSON, and progress display. The core pipeline never prints;
// it emits structured data these formatters turn into output.
package output

import (
	"io"

	"github.com/jverhoeven/sortdir/pkg/models"
)

// Update types reported during placement.
const (
	// UpdateFolder announces a category folder (created or reused)
	UpdateFolder = "folder"
	// UpdateFile announces one completed move
	UpdateFile = "file"
)

// ProgressUpdate represents a progress notification during placement.
type ProgressUpdate struct {
	Type          string
	Category      models.CategoryKey
	Name          string
	FolderExisted bool
	Index         int
	Total         int
}

// Formatter defines the interface for rendering an organize run.
type Formatter interface {
	// Start initializes the formatter for a new run
	Start(writer io.Writer, directory string) error

	// Progress reports placement progress
	Progress(update ProgressUpdate) error

	// Complete finalizes output and displays the run summary
	Complete(result *models.RunResult) error

	// Error reports a run-aborting error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
