package integration

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/jverhoeven/sortdir/pkg/models"
	"github.com/jverhoeven/sortdir/pkg/organize"
	"github.com/jverhoeven/sortdir/pkg/runlog"
	"github.com/jverhoeven/sortdir/pkg/storage"
	"github.com/jverhoeven/sortdir/pkg/verify"
)

// TestHelper provides utilities for integration tests
type TestHelper struct {
	t       *testing.T
	tempDir string
	dir     *storage.Dir
}

// NewTestHelper creates a temp directory and opens it for organizing
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "sortdir-integration-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dir, err := storage.Open(tempDir)
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("failed to open directory: %v", err)
	}

	return &TestHelper{t: t, tempDir: tempDir, dir: dir}
}

// Cleanup removes all temporary files
func (h *TestHelper) Cleanup() {
	os.RemoveAll(h.tempDir)
}

// CreateFile creates a file under the temp directory
func (h *TestHelper) CreateFile(rel string, content []byte) {
	h.t.Helper()
	path := filepath.Join(h.tempDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		h.t.Fatalf("failed to create file %s: %v", rel, err)
	}
}

// AssertFileExists fails if the given relative path does not exist
func (h *TestHelper) AssertFileExists(rel string) {
	h.t.Helper()
	if _, err := os.Stat(filepath.Join(h.tempDir, filepath.FromSlash(rel))); err != nil {
		h.t.Errorf("expected %s to exist: %v", rel, err)
	}
}

// AssertFileAbsent fails if the given relative path exists
func (h *TestHelper) AssertFileAbsent(rel string) {
	h.t.Helper()
	if _, err := os.Stat(filepath.Join(h.tempDir, filepath.FromSlash(rel))); err == nil {
		h.t.Errorf("expected %s to be gone", rel)
	}
}

// Run executes a full organize run with the given policy
func (h *TestHelper) Run(policy models.DuplicatePolicy) (*models.RunResult, error) {
	h.t.Helper()
	runner, err := organize.NewRunner(h.dir, organize.Options{Policy: policy}, nil)
	if err != nil {
		h.t.Fatalf("NewRunner() error = %v", err)
	}
	return runner.Run(context.Background())
}

// TestFullOrganizeRun exercises the whole pipeline end to end
func TestFullOrganizeRun(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	h.CreateFile("report.pdf", []byte("report"))
	h.CreateFile("invoice.PDF", []byte("invoice"))
	h.CreateFile("photo.jpg", []byte("photo"))
	h.CreateFile("README", []byte("readme"))

	result, err := h.Run(models.PolicyAutoCopy)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Status != models.StatusSuccess {
		t.Errorf("status = %s, want %s (violations: %v)", result.Status, models.StatusSuccess, result.Violations)
	}
	if !result.Verified {
		t.Errorf("verified = false, violations: %v", result.Violations)
	}
	if result.FileCount != 4 {
		t.Errorf("file count = %d, want 4", result.FileCount)
	}
	if result.LogErr != nil {
		t.Errorf("log error = %v", result.LogErr)
	}

	// Case-insensitive extension grouping
	pdfs := append([]string(nil), result.Moved["pdf"]...)
	sort.Strings(pdfs)
	if len(pdfs) != 2 || pdfs[0] != "invoice.PDF" || pdfs[1] != "report.pdf" {
		t.Errorf("pdf moves = %v", result.Moved["pdf"])
	}

	h.AssertFileExists("pdf/report.pdf")
	h.AssertFileExists("pdf/invoice.PDF")
	h.AssertFileExists("jpg/photo.jpg")
	h.AssertFileExists("no_extension/README")
	h.AssertFileAbsent("report.pdf")

	// All created folders were new on the first run
	for category, existed := range result.Folders {
		if existed {
			t.Errorf("folder %s reported as pre-existing on first run", category)
		}
	}
}

// TestHiddenAndNestedStayPut verifies that hidden files and subdirectory
// contents are never moved, and that leftovers surface as violations
func TestHiddenAndNestedStayPut(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	h.CreateFile("doc.pdf", []byte("doc"))
	h.CreateFile(".env", []byte("secret"))
	h.CreateFile("nested/ignored.txt", []byte("nested"))

	result, err := h.Run(models.PolicyAutoCopy)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.FileCount != 1 {
		t.Errorf("file count = %d, want 1", result.FileCount)
	}
	h.AssertFileExists("pdf/doc.pdf")
	h.AssertFileExists(".env")
	h.AssertFileExists("nested/ignored.txt")

	// The remaining top-level file and the misplaced nested file both fail
	// verification
	if result.Status != models.StatusUnverified {
		t.Errorf("status = %s, want %s", result.Status, models.StatusUnverified)
	}
	if len(result.Violations) != 2 {
		t.Errorf("violations = %v, want two", result.Violations)
	}
}

// TestRunLogAccumulates checks the log across two runs against one directory
func TestRunLogAccumulates(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	h.CreateFile("a.txt", []byte("a"))
	if _, err := h.Run(models.PolicyAutoCopy); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	h.CreateFile("b.txt", []byte("b"))
	result, err := h.Run(models.PolicyAutoCopy)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if !result.Folders["txt"] {
		t.Error("txt/ should be reported as pre-existing on the second run")
	}

	content, exists, err := runlog.Read(h.dir)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !exists {
		t.Fatal("run log missing after two runs")
	}
	if !strings.Contains(content, "[txt/] NEW • 1 file(s)") {
		t.Errorf("log missing first block:\n%s", content)
	}
	if !strings.Contains(content, "[txt/] EXISTING • 1 file(s)") {
		t.Errorf("log missing second block:\n%s", content)
	}
	if got := strings.Count(content, "→ a.txt"); got != 1 {
		t.Errorf("a.txt logged %d times, want 1", got)
	}
}

// TestSecondRunNothingToDo verifies idempotency of an organized directory
func TestSecondRunNothingToDo(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	h.CreateFile("doc.pdf", []byte("doc"))
	if _, err := h.Run(models.PolicyAutoCopy); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	logBefore, _, err := runlog.Read(h.dir)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	result, err := h.Run(models.PolicyAutoCopy)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if result.Status != models.StatusNothingToDo {
		t.Errorf("status = %s, want %s", result.Status, models.StatusNothingToDo)
	}
	if result.FileCount != 0 {
		t.Errorf("file count = %d, want 0", result.FileCount)
	}

	// The run log must not grow when nothing was moved
	logAfter, _, err := runlog.Read(h.dir)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if logAfter != logBefore {
		t.Error("run log changed on a run that moved nothing")
	}
}

// TestDuplicatePoliciesEndToEnd runs each non-interactive policy against a
// directory with a pre-existing destination file
func TestDuplicatePoliciesEndToEnd(t *testing.T) {
	t.Run("AutoCopy", func(t *testing.T) {
		h := NewTestHelper(t)
		defer h.Cleanup()

		h.CreateFile("pdf/doc.pdf", []byte("old"))
		h.CreateFile("doc.pdf", []byte("new"))

		result, err := h.Run(models.PolicyAutoCopy)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if result.Status != models.StatusSuccess {
			t.Errorf("status = %s", result.Status)
		}

		h.AssertFileExists("pdf/doc_copy1.pdf")
		old, _ := os.ReadFile(filepath.Join(h.tempDir, "pdf", "doc.pdf"))
		if string(old) != "old" {
			t.Errorf("original content = %q, want untouched", old)
		}
	})

	t.Run("AutoOverwrite", func(t *testing.T) {
		h := NewTestHelper(t)
		defer h.Cleanup()

		h.CreateFile("pdf/doc.pdf", []byte("old"))
		h.CreateFile("doc.pdf", []byte("new"))

		result, err := h.Run(models.PolicyAutoOverwrite)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if result.Status != models.StatusSuccess {
			t.Errorf("status = %s", result.Status)
		}

		h.AssertFileAbsent("pdf/doc_copy1.pdf")
		data, _ := os.ReadFile(filepath.Join(h.tempDir, "pdf", "doc.pdf"))
		if string(data) != "new" {
			t.Errorf("content = %q, want the replacement", data)
		}
	})
}

// TestUnverifiedRun covers a run that moves files but leaves the tree with a
// pre-existing mismatch deeper down
func TestUnverifiedRun(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	h.CreateFile("txt/stray.pdf", []byte("stray"))
	h.CreateFile("note.txt", []byte("note"))

	result, err := h.Run(models.PolicyAutoCopy)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Status != models.StatusUnverified {
		t.Errorf("status = %s, want %s", result.Status, models.StatusUnverified)
	}
	if result.Verified {
		t.Error("verified = true despite txt/stray.pdf")
	}
	if len(result.Violations) != 1 || result.Violations[0].Name != "stray.pdf" {
		t.Errorf("violations = %v", result.Violations)
	}

	// An unverified run still moves files and writes the log
	h.AssertFileExists("txt/note.txt")
	if _, exists, _ := runlog.Read(h.dir); !exists {
		t.Error("run log missing after unverified run")
	}

	organized, _, err := verify.Tree(h.dir)
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if organized {
		t.Error("independent verification disagrees with the run result")
	}
}
