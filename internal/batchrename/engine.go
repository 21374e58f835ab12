package batchrename

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"ripconsole/internal/jobs"
	"ripconsole/internal/logging"
)

// JobStore is the subset of the job store the engine reads and writes.
type JobStore interface {
	FindByIDs(ctx context.Context, ids []int64) ([]*jobs.Job, error)
	UpdateRenamedPath(ctx context.Context, id int64, oldPath, newPath string, titleManual *string) error
}

// Engine runs the analyze, preview, and execute stages against a job store
// and a filesystem.
type Engine struct {
	store        JobStore
	fs           FileSystem
	logger       *slog.Logger
	allowedRoots []string
}

// Option customizes an Engine.
type Option func(*Engine)

// WithFileSystem replaces the OS filesystem.
func WithFileSystem(fs FileSystem) Option {
	return func(e *Engine) {
		if fs != nil {
			e.fs = fs
		}
	}
}

// WithLogger sets the logger used for per-job results.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logging.NewComponentLogger(logger, "batchrename")
	}
}

// WithAllowedRoots restricts renames to folders strictly below the given roots.
func WithAllowedRoots(roots []string) Option {
	return func(e *Engine) {
		e.allowedRoots = e.allowedRoots[:0]
		for _, root := range roots {
			if trimmed := strings.TrimSpace(root); trimmed != "" {
				e.allowedRoots = append(e.allowedRoots, filepath.Clean(trimmed))
			}
		}
	}
}

// New constructs an Engine over store.
func New(store JobStore, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		fs:     OSFileSystem{},
		logger: logging.NewComponentLogger(nil, "batchrename"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// loadEligible fetches the requested jobs in request order and drops the ones
// that are missing or not eligible.
func (e *Engine) loadEligible(ctx context.Context, ids []int64) ([]*jobs.Job, error) {
	found, err := e.store.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	eligible := make([]*jobs.Job, 0, len(found))
	for _, job := range found {
		if jobs.IsBatchRenameEligible(job) {
			eligible = append(eligible, job)
		}
	}
	return eligible, nil
}

func (e *Engine) withinAllowedRoots(path string) bool {
	if len(e.allowedRoots) == 0 {
		return true
	}
	cleaned := filepath.Clean(path)
	for _, root := range e.allowedRoots {
		rel, err := filepath.Rel(root, cleaned)
		if err != nil || rel == "." {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
