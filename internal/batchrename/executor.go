package batchrename

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"ripconsole/internal/jobs"
	"ripconsole/internal/logging"
	"ripconsole/internal/services"
)

// Execute renames the folder of every eligible job in req and persists the
// new paths. Only batch-level validation errors are returned; per-job
// failures are reported in the Result.
//
// The target-exists check and the rename are not atomic with respect to other
// processes. On Linux the rename itself refuses to replace an existing target.
func (e *Engine) Execute(ctx context.Context, req Request) (*Result, error) {
	base, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	ctx = services.WithOperation(ctx, "execute")
	selected, err := e.loadEligible(ctx, req.JobIDs)
	if err != nil {
		return nil, err
	}

	result := &Result{
		BatchID: uuid.NewString(),
		Results: make([]Outcome, 0, len(selected)),
	}
	logger := logging.WithContext(ctx, e.logger).With(slog.String("batch_id", result.BatchID))

	for _, job := range selected {
		jobCtx := services.WithJobID(ctx, job.ID)
		outcome := e.renameJob(jobCtx, job, base, req)
		jobLogger := logger.With(logging.Int64(logging.FieldJobID, job.ID))
		if outcome.Success {
			jobLogger.Info("job folder renamed",
				slog.String("old_path", outcome.OldPath),
				slog.String("new_path", outcome.NewPath),
			)
			result.SuccessfulRenames++
		} else {
			jobLogger.Error("job folder rename failed",
				slog.String("failure", string(outcome.Failure)),
				slog.String("error_message", outcome.Error),
				slog.String("old_path", outcome.OldPath),
				slog.String("new_path", outcome.NewPath),
			)
		}
		result.Results = append(result.Results, outcome)
	}
	result.TotalProcessed = len(result.Results)

	logger.Info("batch rename finished",
		slog.Int("total_processed", result.TotalProcessed),
		slog.Int("successful_renames", result.SuccessfulRenames),
	)
	return result, nil
}

func (e *Engine) renameJob(ctx context.Context, job *jobs.Job, base string, req Request) Outcome {
	source := trimSeparators(job.Path)
	target := TargetPath(job.Path, FolderName(base, job.Label, job.ID))

	if source == "" {
		return failed(job.ID, job.Path, target, FailureSourceMissing, "source path missing")
	}
	if !e.withinAllowedRoots(source) || !e.withinAllowedRoots(target) {
		return failed(job.ID, job.Path, target, FailureIO, "path is outside the allowed rename roots")
	}

	exists, err := e.fs.Exists(source)
	if err != nil {
		return failed(job.ID, job.Path, target, FailureIO, fmt.Sprintf("check source: %v", err))
	}
	if !exists {
		return failed(job.ID, job.Path, target, FailureSourceMissing, fmt.Sprintf("source path missing: %s", job.Path))
	}
	if target == source {
		return succeeded(job.ID, job.Path, target)
	}

	exists, err = e.fs.Exists(target)
	if err != nil {
		return failed(job.ID, job.Path, target, FailureIO, fmt.Sprintf("check target: %v", err))
	}
	if exists {
		return failed(job.ID, job.Path, target, FailureTargetExists, fmt.Sprintf("target already exists: %s", target))
	}

	if err := e.fs.Rename(source, target); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return failed(job.ID, job.Path, target, FailureTargetExists, fmt.Sprintf("target already exists: %s", target))
		}
		return failed(job.ID, job.Path, target, FailureIO, fmt.Sprintf("rename: %v", err))
	}

	var title *string
	if req.customNameUsed() {
		manual := manualTitle(req.CustomName, job.Year)
		title = &manual
	}
	if err := e.store.UpdateRenamedPath(ctx, job.ID, job.Path, target, title); err != nil {
		message := fmt.Sprintf("persist job: %v", err)
		if rollbackErr := e.fs.Rename(target, source); rollbackErr != nil {
			message = fmt.Sprintf("%s; restore %s: %v", message, source, rollbackErr)
		}
		return failed(job.ID, job.Path, target, FailurePersist, message)
	}
	return succeeded(job.ID, job.Path, target)
}

func manualTitle(customName, year string) string {
	name := strings.TrimSpace(customName)
	if year = strings.TrimSpace(year); year != "" {
		return name + " (" + year + ")"
	}
	return name
}

func trimSeparators(path string) string {
	sep := string(os.PathSeparator)
	trimmed := strings.TrimRight(path, sep)
	if trimmed == "" && path != "" {
		return sep
	}
	return trimmed
}
