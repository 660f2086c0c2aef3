package output

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jverhoeven/sortdir/pkg/models"
)

// HumanFormatter renders the run as console text.
type HumanFormatter struct {
	writer io.Writer
}

// NewHumanFormatter creates a new human-readable formatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter.
func (f *HumanFormatter) Start(writer io.Writer, directory string) error {
	f.writer = writer
	if writer != nil {
		fmt.Fprintf(writer, "Organizing: %s\n", directory)
	}
	return nil
}

// Progress reports placement progress.
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	if f.writer == nil {
		return nil
	}

	switch update.Type {
	case UpdateFolder:
		if update.FolderExisted {
			fmt.Fprintf(f.writer, "→ Using: %s/\n", update.Category)
		} else {
			fmt.Fprintf(f.writer, "✓ Created: %s/\n", update.Category)
		}
	case UpdateFile:
		fmt.Fprintf(f.writer, "  → %s\n", update.Name)
	}

	return nil
}

// Complete finalizes output and displays the summary.
func (f *HumanFormatter) Complete(result *models.RunResult) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	if result.Status == models.StatusNothingToDo {
		fmt.Fprintf(f.writer, "\n→ No files to organize\n")
		return nil
	}

	fmt.Fprintf(f.writer, "\n--- Verification ---\n")
	if result.Verified {
		fmt.Fprintf(f.writer, "✓ All files organized correctly\n")
	} else {
		fmt.Fprintf(f.writer, "✗ Issues found:\n")
		for _, violation := range result.Violations {
			fmt.Fprintf(f.writer, "  • %s\n", violation)
		}
	}

	if result.LogErr != nil {
		fmt.Fprintf(f.writer, "\n✗ Log update failed: %v\n", result.LogErr)
	} else {
		fmt.Fprintf(f.writer, "\n✓ Log updated: organization_log.txt\n")
	}

	fmt.Fprintf(f.writer, "\nSummary:\n")
	fmt.Fprintf(f.writer, "  Files organized: %d\n", result.FileCount)
	fmt.Fprintf(f.writer, "  Categories:      %d\n", len(result.Moved))

	categories := make([]string, 0, len(result.Moved))
	for category := range result.Moved {
		categories = append(categories, string(category))
	}
	sort.Strings(categories)
	for _, category := range categories {
		status := "NEW"
		if result.Folders[models.CategoryKey(category)] {
			status = "EXISTING"
		}
		fmt.Fprintf(f.writer, "    %s/ (%s): %d file(s)\n",
			category, status, len(result.Moved[models.CategoryKey(category)]))
	}

	fmt.Fprintf(f.writer, "  Duration:        %s\n", result.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "\nStatus: %s\n", result.Status)

	return nil
}

// Error reports an error.
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "✗ Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name.
func (f *HumanFormatter) Name() string {
	return "human"
}
