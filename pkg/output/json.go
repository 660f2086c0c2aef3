package output

import (
	"encoding/json"
	"io"

	"github.com/jverhoeven/sortdir/pkg/models"
)

// JSONFormatter renders the run result as a single JSON document for
// automation and scripting. Progress events are not streamed.
type JSONFormatter struct {
	writer io.Writer
}

// JSONResult is the wire shape of a completed run.
type JSONResult struct {
	RunID       string                          `json:"run_id"`
	Directory   string                          `json:"directory"`
	MovedFiles  map[models.CategoryKey][]string `json:"moved_files"`
	Folders     map[models.CategoryKey]string   `json:"folder_status"`
	IsOrganized bool                            `json:"is_organized"`
	Violations  []models.Violation              `json:"violations,omitempty"`
	FileCount   int                             `json:"file_count"`
	DurationMs  int64                           `json:"duration_ms"`
	Status      models.RunStatus                `json:"status"`
	LogError    string                          `json:"log_error,omitempty"`
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter.
func (f *JSONFormatter) Start(writer io.Writer, directory string) error {
	f.writer = writer
	return nil
}

// Progress is a no-op for JSON output.
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete writes the result document.
func (f *JSONFormatter) Complete(result *models.RunResult) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	doc := JSONResult{
		RunID:       result.RunID,
		Directory:   result.Directory,
		MovedFiles:  result.Moved,
		Folders:     FolderStatusLabels(result.Folders),
		IsOrganized: result.Verified,
		Violations:  result.Violations,
		FileCount:   result.FileCount,
		DurationMs:  result.Duration.Milliseconds(),
		Status:      result.Status,
	}
	if result.LogErr != nil {
		doc.LogError = result.LogErr.Error()
	}

	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Error writes an error document.
func (f *JSONFormatter) Error(err error) error {
	if f.writer == nil {
		return nil
	}
	return json.NewEncoder(f.writer).Encode(map[string]string{"error": err.Error()})
}

// Name returns the formatter name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// FolderStatusLabels converts the pre-existed booleans to the NEW/EXISTING
// labels callers display.
func FolderStatusLabels(folders models.FolderStatus) map[models.CategoryKey]string {
	labels := make(map[models.CategoryKey]string, len(folders))
	for category, existed := range folders {
		if existed {
			labels[category] = "EXISTING"
		} else {
			labels[category] = "NEW"
		}
	}
	return labels
}
