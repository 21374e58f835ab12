package batchrename

import (
	"context"
	"os"
	"strconv"
	"strings"

	"ripconsole/internal/services"
	"ripconsole/internal/textutil"
)

// FolderName builds "<clean base>_<clean label>". The job ID replaces the
// label whenever the cleaned label is empty, which covers a missing label and
// also a non-empty one with no filename-safe characters: "???" yields
// "<base>_<id>", never a name ending in a bare "_".
func FolderName(baseName, label string, jobID int64) string {
	disambiguator := textutil.CleanForFilename(label)
	if disambiguator == "" {
		disambiguator = strconv.FormatInt(jobID, 10)
	}
	return textutil.CleanForFilename(baseName) + "_" + disambiguator
}

// TargetPath replaces the leaf segment of currentPath with folderName.
// Trailing separators are ignored; an empty path yields folderName alone.
func TargetPath(currentPath, folderName string) string {
	if currentPath == "" {
		return folderName
	}
	sep := string(os.PathSeparator)
	trimmed := strings.TrimRight(currentPath, sep)
	if trimmed == "" {
		return sep + folderName
	}
	idx := strings.LastIndex(trimmed, sep)
	if idx < 0 {
		return folderName
	}
	return trimmed[:idx+1] + folderName
}

// validateRequest returns the base name for req or the batch-level
// validation error.
func validateRequest(req Request) (string, error) {
	if len(req.JobIDs) == 0 {
		return "", ErrEmptySelection
	}
	base := req.BaseName()
	if base == "" {
		return "", ErrMissingName
	}
	if textutil.CleanForFilename(base) == "" {
		return "", ErrInvalidName
	}
	return base, nil
}

// Preview computes the rename plan for the eligible jobs in req without
// touching the filesystem.
func (e *Engine) Preview(ctx context.Context, req Request) ([]PlanEntry, error) {
	base, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	ctx = services.WithOperation(ctx, "preview")
	selected, err := e.loadEligible(ctx, req.JobIDs)
	if err != nil {
		return nil, err
	}

	plan := make([]PlanEntry, 0, len(selected))
	for _, job := range selected {
		folder := FolderName(base, job.Label, job.ID)
		plan = append(plan, PlanEntry{
			JobID:         job.ID,
			CurrentTitle:  job.ResolvedTitle(),
			CurrentPath:   job.Path,
			NewFolderName: folder,
			NewPath:       TargetPath(job.Path, folder),
			Label:         job.Label,
		})
	}
	return plan, nil
}
