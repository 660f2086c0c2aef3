package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jverhoeven/sortdir/pkg/storage"
)

func newTree(t *testing.T, files map[string]string) *storage.Dir {
	t.Helper()
	tempDir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(tempDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	dir, err := storage.Open(tempDir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return dir
}

// TestTreeOrganized tests a correctly organized tree
func TestTreeOrganized(t *testing.T) {
	dir := newTree(t, map[string]string{
		"pdf/doc1.pdf":           "content",
		"jpg/img1.jpg":           "content",
		"no_extension/README":    "content",
		"tar/archive.backup.tar": "content",
	})

	organized, violations, err := Tree(dir)
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if !organized {
		t.Errorf("Tree() = false, violations: %v", violations)
	}
	if len(violations) != 0 {
		t.Errorf("violations = %v, want none", violations)
	}
}

// TestTreeMisplacedFile tests extension/folder mismatches
func TestTreeMisplacedFile(t *testing.T) {
	dir := newTree(t, map[string]string{
		"pdf/doc1.jpg": "content",
	})

	organized, violations, err := Tree(dir)
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if organized {
		t.Error("Tree() = true for a misplaced file")
	}
	if len(violations) != 1 {
		t.Fatalf("violations = %v, want exactly one", violations)
	}
	v := violations[0]
	if v.Name != "doc1.jpg" || v.Folder != "pdf" || v.Expected != "jpg" {
		t.Errorf("violation = %+v", v)
	}
	want := "doc1.jpg in pdf/ (should be in jpg/)"
	if v.String() != want {
		t.Errorf("String() = %q, want %q", v.String(), want)
	}
}

// TestTreeTopLevelFile tests unorganized top-level files
func TestTreeTopLevelFile(t *testing.T) {
	dir := newTree(t, map[string]string{
		"unorganized.pdf": "content",
	})

	organized, violations, err := Tree(dir)
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if organized {
		t.Error("Tree() = true with a top-level file present")
	}
	if len(violations) != 1 || violations[0].String() != "Top level: unorganized.pdf" {
		t.Errorf("violations = %v", violations)
	}
}

// TestTreeLogFileAllowed tests the run-log exemption
func TestTreeLogFileAllowed(t *testing.T) {
	dir := newTree(t, map[string]string{
		"pdf/doc1.pdf":         "content",
		"organization_log.txt": "log content",
	})

	organized, violations, err := Tree(dir)
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if !organized {
		t.Errorf("Tree() = false, violations: %v", violations)
	}
}

// TestTreeNestedFolders verifies files are checked against their immediate
// parent at any depth
func TestTreeNestedFolders(t *testing.T) {
	dir := newTree(t, map[string]string{
		"pdf/txt/note.txt": "content",
		"pdf/txt/bad.pdf":  "content",
	})

	organized, violations, err := Tree(dir)
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if organized {
		t.Error("Tree() = true despite bad.pdf inside txt/")
	}
	if len(violations) != 1 || violations[0].Name != "bad.pdf" || violations[0].Folder != "txt" {
		t.Errorf("violations = %v", violations)
	}
}

// TestTreeEmptyDirectory tests a directory with nothing in it
func TestTreeEmptyDirectory(t *testing.T) {
	dir := newTree(t, nil)

	organized, violations, err := Tree(dir)
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if !organized || len(violations) != 0 {
		t.Errorf("Tree() = %v, %v for empty directory", organized, violations)
	}
}
