// Package classify maps filenames to normalized category keys.
package classify

import (
	"strings"

	"github.com/jverhoeven/sortdir/pkg/models"
)

// Category returns the category key for a filename: the substring after the
// last dot, lowercased. Names without an extension (no dot, a leading dot
// only, or a trailing dot) map to models.NoExtension. A name with multiple
// dots uses only the final segment ("archive.backup.tar" -> "tar").
func Category(name string) models.CategoryKey {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return models.NoExtension
	}
	return models.CategoryKey(strings.ToLower(name[i+1:]))
}

// Split separates a filename into its stem and extension suffix (including
// the dot), mirroring the rules Category applies. Used when synthesizing
// non-colliding copy names: stem "doc1" + "_copy1" + ".pdf".
func Split(name string) (stem, suffix string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i:]
}
