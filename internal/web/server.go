// Package web exposes the organizer over a localhost-only JSON API. The
// core pipeline offers no concurrency guarantees for a given directory, so
// the server serializes organize runs behind a mutex held for the duration
// of one run.
package web

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jverhoeven/sortdir/internal/platform"
	"github.com/jverhoeven/sortdir/pkg/logging"
	"github.com/jverhoeven/sortdir/pkg/models"
	"github.com/jverhoeven/sortdir/pkg/organize"
	"github.com/jverhoeven/sortdir/pkg/output"
	"github.com/jverhoeven/sortdir/pkg/runlog"
	"github.com/jverhoeven/sortdir/pkg/storage"
)

// HistoryEntry summarizes one completed cleanup for the history endpoint.
type HistoryEntry struct {
	ResultID    string    `json:"result_id"`
	Directory   string    `json:"directory"`
	FileCount   int       `json:"file_count"`
	IsOrganized bool      `json:"is_organized"`
	Timestamp   time.Time `json:"timestamp"`
}

// Server handles the JSON API. Result and history caches live here rather
// than in package globals so separate servers never share state.
type Server struct {
	logger logging.Logger

	mu      sync.Mutex
	results map[string]*models.RunResult
	history []HistoryEntry
}

// NewServer creates a web server.
func NewServer(logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Server{
		logger:  logger,
		results: make(map[string]*models.RunResult),
	}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cleanup", s.handleCleanup)
	mux.HandleFunc("/api/cleanup-result/", s.handleResult)
	mux.HandleFunc("/api/cleanup-history", s.handleHistory)
	mux.HandleFunc("/api/logs", s.handleLogs)
	mux.HandleFunc("/api/server/status", s.handleStatus)
	return mux
}

// ListenAndServe binds to localhost only and serves the API. External
// network access is never allowed.
func (s *Server) ListenAndServe(port int) error {
	addr := net.JoinHostPort("127.0.0.1", fmt.Sprintf("%d", port))
	return http.ListenAndServe(addr, s.Handler())
}

type cleanupRequest struct {
	Path           string `json:"path"`
	NonInteractive *bool  `json:"non_interactive,omitempty"`
	Overwrite      bool   `json:"overwrite"`
}

type cleanupResponse struct {
	Success      bool                            `json:"success"`
	ResultID     string                          `json:"result_id"`
	Directory    string                          `json:"directory"`
	MovedFiles   map[models.CategoryKey][]string `json:"moved_files"`
	FolderStatus map[models.CategoryKey]string   `json:"folder_status"`
	IsOrganized  bool                            `json:"is_organized"`
	FileCount    int                             `json:"file_count"`
	Timestamp    string                          `json:"timestamp"`
}

// handleCleanup organizes a directory. The request maps onto the automatic
// duplicate policies: overwrite takes precedence over non_interactive, and
// the interactive policy is rejected outright since there is no console to
// prompt on.
func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req cleanupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "Path required")
		return
	}
	if req.NonInteractive != nil && !*req.NonInteractive && !req.Overwrite {
		writeError(w, http.StatusBadRequest, "interactive duplicate handling is not available over the web interface")
		return
	}

	policy := models.PolicyAutoCopy
	if req.Overwrite {
		policy = models.PolicyAutoOverwrite
	}

	dir, err := storage.Open(platform.ExpandUser(req.Path))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid directory path")
		return
	}

	runner, err := organize.NewRunner(dir, organize.Options{Policy: policy}, s.logger)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// One organize run at a time; the core is non-reentrant per directory
	// and the API does not track which directories overlap
	s.mu.Lock()
	result, runErr := runner.Run(r.Context())
	if runErr == nil {
		s.results[result.RunID] = result
		s.history = append(s.history, HistoryEntry{
			ResultID:    result.RunID,
			Directory:   result.Directory,
			FileCount:   result.FileCount,
			IsOrganized: result.Verified,
			Timestamp:   result.EndTime,
		})
	}
	s.mu.Unlock()

	if runErr != nil {
		writeError(w, http.StatusInternalServerError, runErr.Error())
		return
	}

	writeJSON(w, http.StatusOK, cleanupResponse{
		Success:      true,
		ResultID:     result.RunID,
		Directory:    result.Directory,
		MovedFiles:   result.Moved,
		FolderStatus: output.FolderStatusLabels(result.Folders),
		IsOrganized:  result.Verified,
		FileCount:    result.FileCount,
		Timestamp:    result.EndTime.Format(time.RFC3339),
	})
}

// handleResult returns a previously stored run by its ID.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/cleanup-result/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Result ID required")
		return
	}

	s.mu.Lock()
	result, ok := s.results[id]
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Result not found")
		return
	}

	writeJSON(w, http.StatusOK, cleanupResponse{
		Success:      true,
		ResultID:     result.RunID,
		Directory:    result.Directory,
		MovedFiles:   result.Moved,
		FolderStatus: output.FolderStatusLabels(result.Folders),
		IsOrganized:  result.Verified,
		FileCount:    result.FileCount,
		Timestamp:    result.EndTime.Format(time.RFC3339),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	history := make([]HistoryEntry, len(s.history))
	copy(history, s.history)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history":          history,
		"total_operations": len(history),
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "Path required")
		return
	}

	dir, err := storage.Open(platform.ExpandUser(path))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid directory path")
		return
	}

	content, exists, err := runlog.Read(dir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !exists {
		content = "No log file found for this directory."
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exists":  exists,
		"content": content,
		"path":    dir.Join(runlog.FileName),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	operations := len(s.history)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"running":    true,
		"operations": operations,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
