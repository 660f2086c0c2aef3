// Package storage provides filesystem access scoped to a single validated
// directory. The organize engine and the verifier operate exclusively
// through a Dir so every path they touch stays inside the target.
package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jverhoeven/sortdir/pkg/models"
)

// Dir is a handle on an existing directory. All relative paths passed to
// its methods are resolved against the directory root.
type Dir struct {
	root string
}

// Open validates that path exists and is a directory and returns a handle
// on it. The path is resolved to an absolute path first.
func Open(path string) (*Dir, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return nil, &models.InvalidDirectoryError{Path: absPath, Reason: "path does not exist"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, &models.InvalidDirectoryError{Path: absPath, Reason: "path is not a directory"}
	}

	return &Dir{root: absPath}, nil
}

// Root returns the absolute path of the directory.
func (d *Dir) Root() string {
	return d.root
}

// Name returns the base name of the directory.
func (d *Dir) Name() string {
	return filepath.Base(d.root)
}

// Join resolves a relative path against the directory root.
func (d *Dir) Join(elem ...string) string {
	return filepath.Join(append([]string{d.root}, elem...)...)
}

// Entries lists the directory non-recursively, in the order the underlying
// listing provides. No filtering is applied; callers decide eligibility.
func (d *Dir) Entries() ([]models.DirEntry, error) {
	items, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	entries := make([]models.DirEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, models.DirEntry{
			Name:   item.Name(),
			IsFile: !item.IsDir(),
		})
	}
	return entries, nil
}

// Exists checks whether a relative path exists inside the directory.
func (d *Dir) Exists(rel string) bool {
	_, err := os.Stat(d.Join(rel))
	return err == nil
}

// IsDir checks whether a relative path is an existing subdirectory.
func (d *Dir) IsDir(rel string) bool {
	info, err := os.Stat(d.Join(rel))
	return err == nil && info.IsDir()
}

// MkdirAll creates a subdirectory and any necessary parents.
func (d *Dir) MkdirAll(rel string) error {
	if err := os.MkdirAll(d.Join(rel), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Rename moves a file inside the directory. On platforms where rename is
// atomic this replaces an existing destination in one step.
func (d *Dir) Rename(oldRel, newRel string) error {
	return os.Rename(d.Join(oldRel), d.Join(newRel))
}

// Walk traverses the directory tree recursively. The callback receives each
// entry's path relative to the root; the root itself is skipped.
func (d *Dir) Walk(fn func(rel string, entry fs.DirEntry) error) error {
	return filepath.WalkDir(d.root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == d.root {
			return nil
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		return fn(rel, entry)
	})
}
