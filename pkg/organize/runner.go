package organize

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jverhoeven/sortdir/pkg/logging"
	"github.com/jverhoeven/sortdir/pkg/models"
	"github.com/jverhoeven/sortdir/pkg/runlog"
	"github.com/jverhoeven/sortdir/pkg/storage"
	"github.com/jverhoeven/sortdir/pkg/verify"
)

// Runner sequences one full organize run: placement, verification, run log.
// Each invocation is independent; no state survives beyond what the run log
// records on disk. The runner is not reentrant for a given directory;
// callers issuing concurrent runs against the same path must serialize them.
type Runner struct {
	dir    *storage.Dir
	engine *Engine
	logger logging.Logger
}

// NewRunner creates a runner for the given directory.
func NewRunner(dir *storage.Dir, opts Options, logger logging.Logger) (*Runner, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	engine, err := NewEngine(dir, opts, logger)
	if err != nil {
		return nil, err
	}
	return &Runner{dir: dir, engine: engine, logger: logger}, nil
}

// Run executes the pipeline. When the scan finds no eligible files the
// result carries models.StatusNothingToDo and verification and logging are
// skipped. Verification mismatches are never errors: the run completes,
// logs, and reports Verified=false with the violation list.
func (r *Runner) Run(ctx context.Context) (*models.RunResult, error) {
	result := &models.RunResult{
		RunID:     uuid.New().String(),
		Directory: r.dir.Root(),
		StartTime: time.Now(),
	}
	logger := r.logger.WithFields(logging.Fields{"run_id": result.RunID, "directory": result.Directory})

	moved, folders, err := r.engine.Run(ctx)
	result.Moved = moved
	result.Folders = folders
	result.FileCount = moved.FileCount()

	if err != nil {
		result.Status = models.StatusFailed
		// A closed prompt stream is the user walking away, same as an
		// interrupt
		if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
			result.Status = models.StatusCancelled
		}
		r.finish(result)
		logger.Error(ctx, "placement aborted", err, logging.Fields{"files_moved": result.FileCount})
		return result, err
	}

	if len(moved) == 0 {
		result.Status = models.StatusNothingToDo
		r.finish(result)
		logger.Info(ctx, "nothing to organize", nil)
		return result, nil
	}

	verified, violations, err := verify.Tree(r.dir)
	if err != nil {
		result.Status = models.StatusFailed
		r.finish(result)
		logger.Error(ctx, "verification walk failed", err, nil)
		return result, err
	}
	result.Verified = verified
	result.Violations = violations

	if err := runlog.Append(r.dir, moved, folders); err != nil {
		// Placement already happened; report the log failure without
		// invalidating the run
		result.LogErr = err
		logger.Warn(ctx, "run log write failed", logging.Fields{"error": err.Error()})
	}

	if verified {
		result.Status = models.StatusSuccess
	} else {
		result.Status = models.StatusUnverified
	}
	r.finish(result)

	logger.Info(ctx, "organize run complete", logging.Fields{
		"files_moved": result.FileCount,
		"categories":  len(moved),
		"verified":    verified,
		"status":      string(result.Status),
	})

	return result, nil
}

func (r *Runner) finish(result *models.RunResult) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
}
