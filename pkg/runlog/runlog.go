// Package runlog appends human-readable run records to the organization log
// kept inside each organized directory. The log is append-only UTF-8 text;
// prior content is never truncated or rewritten.
package runlog

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jverhoeven/sortdir/pkg/models"
	"github.com/jverhoeven/sortdir/pkg/storage"
)

const (
	// FileName is the fixed log filename inside the organized directory.
	FileName = "organization_log.txt"

	// FilePrefix is the reserved name prefix; top-level files carrying it
	// are exempt from verification.
	FilePrefix = "organization_log"
)

const separatorWidth = 60

// Append writes one run block describing the completed placement to the
// directory's log file, creating it if needed. A write failure is returned
// as a *models.LogWriteError; the placement itself remains valid.
func Append(dir *storage.Dir, moved models.MoveRecord, folders models.FolderStatus) error {
	path := dir.Join(FileName)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return &models.LogWriteError{Path: path, Err: err}
	}
	defer f.Close()

	if err := WriteBlock(f, time.Now(), dir.Name(), moved, folders); err != nil {
		return &models.LogWriteError{Path: path, Err: err}
	}
	return nil
}

// WriteBlock renders a single run block. Categories and filenames are
// sorted lexicographically, independent of move order, so repeated runs
// produce deterministic, diffable entries.
func WriteBlock(w io.Writer, now time.Time, dirName string, moved models.MoveRecord, folders models.FolderStatus) error {
	separator := strings.Repeat("=", separatorWidth)

	header := fmt.Sprintf("\n%s\n[%s @ %s] %s/\n%s\n",
		separator,
		now.Format("02 Jan 2006"),
		now.Format("15:04:05"),
		dirName,
		separator,
	)
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	categories := make([]string, 0, len(moved))
	for category := range moved {
		categories = append(categories, string(category))
	}
	sort.Strings(categories)

	for _, category := range categories {
		names := moved[models.CategoryKey(category)]

		status := "NEW"
		if folders[models.CategoryKey(category)] {
			status = "EXISTING"
		}

		if _, err := fmt.Fprintf(w, "\n[%s/] %s • %d file(s)\n", category, status, len(names)); err != nil {
			return err
		}

		sorted := make([]string, len(names))
		copy(sorted, names)
		sort.Strings(sorted)

		for _, name := range sorted {
			if _, err := fmt.Fprintf(w, "  → %s\n", name); err != nil {
				return err
			}
		}
	}

	return nil
}

// Read returns the full log content for a directory and whether the log
// file exists.
func Read(dir *storage.Dir) (string, bool, error) {
	data, err := os.ReadFile(dir.Join(FileName))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}
