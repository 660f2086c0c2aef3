package output

import (
	"io"

	"github.com/cheggaaa/pb/v3"

	"github.com/jverhoeven/sortdir/pkg/models"
)

// ProgressFormatter shows a progress bar while files are moved, then prints
// the human-readable summary.
type ProgressFormatter struct {
	writer io.Writer
	bar    *pb.ProgressBar
	human  *HumanFormatter
}

// NewProgressFormatter creates a new progress bar formatter.
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{human: NewHumanFormatter()}
}

// Start initializes the formatter. The bar itself is created on the first
// file update, once the total is known.
func (f *ProgressFormatter) Start(writer io.Writer, directory string) error {
	f.writer = writer
	return f.human.Start(writer, directory)
}

// Progress advances the bar on completed moves.
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	if update.Type != UpdateFile {
		return nil
	}

	if f.bar == nil {
		f.bar = pb.New(update.Total)
		if f.writer != nil {
			f.bar.SetWriter(f.writer)
		}
		f.bar.Start()
	}
	f.bar.Increment()

	return nil
}

// Complete finishes the bar and prints the summary.
func (f *ProgressFormatter) Complete(result *models.RunResult) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	return f.human.Complete(result)
}

// Error reports an error.
func (f *ProgressFormatter) Error(err error) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	return f.human.Error(err)
}

// Name returns the formatter name.
func (f *ProgressFormatter) Name() string {
	return "progress"
}
