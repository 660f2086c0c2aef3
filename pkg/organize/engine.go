// Package organize implements the file placement engine and the runner that
// sequences a full organize run: scan, classify, place, verify, log.
package organize

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jverhoeven/sortdir/pkg/classify"
	"github.com/jverhoeven/sortdir/pkg/logging"
	"github.com/jverhoeven/sortdir/pkg/models"
	"github.com/jverhoeven/sortdir/pkg/runlog"
	"github.com/jverhoeven/sortdir/pkg/storage"
)

// MoveFunc is notified after each completed move. Index counts moves across
// the whole run, starting at 1; total is the planned file count.
type MoveFunc func(category models.CategoryKey, name string, index, total int)

// FolderFunc is notified when a category folder is entered: existed tells
// whether the folder was reused rather than created.
type FolderFunc func(category models.CategoryKey, existed bool)

// Options configures an Engine.
type Options struct {
	// Policy governs collisions with existing destination files
	Policy models.DuplicatePolicy

	// Prompter is required when Policy is models.PolicyInteractive
	Prompter Prompter

	// OnFolder, if set, is called once per category before its moves
	OnFolder FolderFunc

	// OnMove, if set, is called after every completed move
	OnMove MoveFunc
}

// Engine partitions the files of one directory by category, creates or
// reuses destination folders, and moves files into them. It holds no state
// between runs.
type Engine struct {
	dir    *storage.Dir
	opts   Options
	logger logging.Logger
}

// NewEngine creates a placement engine for the given directory.
func NewEngine(dir *storage.Dir, opts Options, logger logging.Logger) (*Engine, error) {
	if !opts.Policy.Valid() {
		return nil, &models.ValidationError{Field: "policy", Message: "unknown duplicate policy: " + string(opts.Policy)}
	}
	if opts.Policy == models.PolicyInteractive && opts.Prompter == nil {
		return nil, &models.ValidationError{Field: "prompter", Message: "interactive policy requires a prompter"}
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{dir: dir, opts: opts, logger: logger}, nil
}

// Plan scans the directory once, non-recursively, and groups eligible files
// by category. Hidden entries, subdirectories (including previously created
// category folders), and files carrying the run log's reserved name prefix
// are skipped. Category order follows first encounter; file order within a
// category follows the scan.
func (e *Engine) Plan(ctx context.Context) (*models.PlacementPlan, error) {
	entries, err := e.dir.Entries()
	if err != nil {
		return nil, err
	}

	plan := models.NewPlacementPlan()
	for _, entry := range entries {
		if !entry.Eligible() {
			continue
		}
		// The run log lives alongside the files it describes and is
		// never organized itself
		if strings.HasPrefix(entry.Name, runlog.FilePrefix) {
			continue
		}
		plan.Add(classify.Category(entry.Name), entry)
	}

	e.logger.Debug(ctx, "placement plan built", logging.Fields{
		"directory":  e.dir.Root(),
		"categories": len(plan.Categories()),
		"files":      plan.FileCount(),
	})

	return plan, nil
}

// Place executes the plan: for each category it records whether the folder
// pre-existed, creates it if absent, and moves every file into it,
// resolving collisions per the configured policy. A failed move aborts the
// run; completed moves are not rolled back.
func (e *Engine) Place(ctx context.Context, plan *models.PlacementPlan) (models.MoveRecord, models.FolderStatus, error) {
	moved := make(models.MoveRecord)
	folders := make(models.FolderStatus)

	total := plan.FileCount()
	index := 0

	for _, category := range plan.Categories() {
		rel := string(category)

		existed := e.dir.IsDir(rel)
		folders[category] = existed
		if !existed {
			if err := e.dir.MkdirAll(rel); err != nil {
				return moved, folders, err
			}
			e.logger.Debug(ctx, "created category folder", logging.Fields{"category": category})
		}
		if e.opts.OnFolder != nil {
			e.opts.OnFolder(category, existed)
		}

		for _, entry := range plan.Files(category) {
			if err := ctx.Err(); err != nil {
				return moved, folders, err
			}

			finalName, err := e.placeFile(category, entry.Name)
			if err != nil {
				e.logger.Error(ctx, "move failed", err, logging.Fields{
					"category": category,
					"file":     entry.Name,
				})
				return moved, folders, err
			}

			moved[category] = append(moved[category], finalName)
			index++
			if e.opts.OnMove != nil {
				e.opts.OnMove(category, finalName, index, total)
			}
		}
	}

	return moved, folders, nil
}

// Run builds the plan and executes it.
func (e *Engine) Run(ctx context.Context) (models.MoveRecord, models.FolderStatus, error) {
	plan, err := e.Plan(ctx)
	if err != nil {
		return nil, nil, err
	}
	return e.Place(ctx, plan)
}

// placeFile moves one file into its category folder and returns the final
// destination name after collision resolution.
func (e *Engine) placeFile(category models.CategoryKey, name string) (string, error) {
	destName := name
	destRel := filepath.Join(string(category), destName)

	if e.dir.Exists(destRel) {
		overwrite, err := e.shouldOverwrite(name, category)
		if err != nil {
			return "", err
		}
		if !overwrite {
			destName = e.copyName(category, name)
			destRel = filepath.Join(string(category), destName)
		}
	}

	if err := e.dir.Rename(name, destRel); err != nil {
		return "", &models.MoveError{
			Source: e.dir.Join(name),
			Dest:   e.dir.Join(destRel),
			Err:    err,
		}
	}

	return destName, nil
}

// shouldOverwrite applies the duplicate policy to a collision.
func (e *Engine) shouldOverwrite(name string, category models.CategoryKey) (bool, error) {
	switch e.opts.Policy {
	case models.PolicyAutoOverwrite:
		return true, nil
	case models.PolicyAutoCopy:
		return false, nil
	case models.PolicyInteractive:
		return e.opts.Prompter.ConfirmOverwrite(name, category)
	default:
		return false, &models.ValidationError{Field: "policy", Message: "unknown duplicate policy: " + string(e.opts.Policy)}
	}
}

// copyName synthesizes a non-colliding destination name: stem_copy1.ext,
// stem_copy2.ext, and so on until an unused path is found in the folder.
func (e *Engine) copyName(category models.CategoryKey, name string) string {
	stem, suffix := classify.Split(name)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_copy%d%s", stem, n, suffix)
		if !e.dir.Exists(filepath.Join(string(category), candidate)) {
			return candidate
		}
	}
}
