package models

import (
	"strings"
)

// CategoryKey is the normalized extension string used as both grouping key
// and destination folder name. It is never empty and never contains a path
// separator.
type CategoryKey string

// NoExtension is the sentinel category for files without an extension.
const NoExtension CategoryKey = "no_extension"

// DirEntry represents a single item from a non-recursive directory scan.
type DirEntry struct {
	// Name is the base name of the entry, without any path component
	Name string

	// IsFile indicates a regular file (directories are never organized)
	IsFile bool
}

// Hidden reports whether the entry name starts with a dot.
// Hidden entries are excluded from organization entirely.
func (e DirEntry) Hidden() bool {
	return strings.HasPrefix(e.Name, ".")
}

// Eligible reports whether the entry takes part in organization.
func (e DirEntry) Eligible() bool {
	return e.IsFile && !e.Hidden()
}
