package batchrename

import "strings"

// Request selects jobs and the name they should be renamed to.
type Request struct {
	JobIDs        []int64
	SeriesName    string
	UseCustomName bool
	CustomName    string
}

// BaseName returns the name the folders are built from: the custom name when
// it is requested and non-empty, otherwise the series name.
func (r Request) BaseName() string {
	if r.customNameUsed() {
		return strings.TrimSpace(r.CustomName)
	}
	return strings.TrimSpace(r.SeriesName)
}

func (r Request) customNameUsed() bool {
	return r.UseCustomName && strings.TrimSpace(r.CustomName) != ""
}

// JobDetail describes one analyzed job.
type JobDetail struct {
	JobID          int64
	Title          string
	TitleManual    string
	Year           string
	Label          string
	Path           string
	DetectedSeries string
}

// Analysis is the result of inferring a series name for a selection.
type Analysis struct {
	JobDetails       []JobDetail
	SuggestedName    string
	HasConflicts     bool
	SeriesNamesFound []string
}

// PlanEntry is the computed rename for one job.
type PlanEntry struct {
	JobID         int64
	CurrentTitle  string
	CurrentPath   string
	NewFolderName string
	NewPath       string
	Label         string
}

// FailureKind classifies why a single job could not be renamed.
type FailureKind string

const (
	FailureSourceMissing FailureKind = "source_missing"
	FailureTargetExists  FailureKind = "target_exists"
	FailureIO            FailureKind = "io_error"
	FailurePersist       FailureKind = "persist_error"
)

// Outcome reports the result of renaming one job. Failure and Error are set
// only when Success is false.
type Outcome struct {
	JobID   int64
	Success bool
	OldPath string
	NewPath string
	Failure FailureKind
	Error   string
}

// Result aggregates the outcomes of one Execute call.
type Result struct {
	BatchID           string
	Results           []Outcome
	TotalProcessed    int
	SuccessfulRenames int
}

func succeeded(jobID int64, oldPath, newPath string) Outcome {
	return Outcome{JobID: jobID, Success: true, OldPath: oldPath, NewPath: newPath}
}

func failed(jobID int64, oldPath, newPath string, kind FailureKind, message string) Outcome {
	return Outcome{JobID: jobID, OldPath: oldPath, NewPath: newPath, Failure: kind, Error: message}
}
