// Package verify checks, without mutating anything, that every file in a
// directory tree sits in the folder matching its extension. It makes no
// assumptions about how the tree was produced, so it works equally on
// hand-edited directories.
package verify

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jverhoeven/sortdir/pkg/classify"
	"github.com/jverhoeven/sortdir/pkg/models"
	"github.com/jverhoeven/sortdir/pkg/runlog"
	"github.com/jverhoeven/sortdir/pkg/storage"
)

// Tree walks the directory recursively and reports whether it is fully
// organized. Any top-level file other than the run log is a violation; a
// file anywhere deeper must sit in a folder whose name equals the file's
// category. Returns true iff the violation list is empty.
func Tree(dir *storage.Dir) (bool, []models.Violation, error) {
	var violations []models.Violation

	err := dir.Walk(func(rel string, entry fs.DirEntry) error {
		if entry.IsDir() {
			return nil
		}

		name := entry.Name()
		parent := filepath.Dir(rel)

		if parent == "." {
			// Top level holds only category folders and the run log
			if !strings.HasPrefix(name, runlog.FilePrefix) {
				violations = append(violations, models.Violation{Name: name})
			}
			return nil
		}

		folder := filepath.Base(parent)
		if expected := classify.Category(name); string(expected) != folder {
			violations = append(violations, models.Violation{
				Name:     name,
				Folder:   folder,
				Expected: expected,
			})
		}
		return nil
	})
	if err != nil {
		return false, nil, err
	}

	return len(violations) == 0, violations, nil
}
