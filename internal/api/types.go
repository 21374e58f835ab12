package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Job describes a rip job in a transport-friendly format.
type Job struct {
	JobID               int64  `json:"job_id"`
	Title               string `json:"title"`
	TitleManual         string `json:"title_manual,omitempty"`
	DisplayTitle        string `json:"display_title"`
	Year                string `json:"year,omitempty"`
	Label               string `json:"label,omitempty"`
	Path                string `json:"path,omitempty"`
	Status              string `json:"status"`
	VideoType           string `json:"video_type"`
	BatchRenameEligible bool   `json:"batch_rename_eligible"`
	StartTime           string `json:"start_time,omitempty"`
	StopTime            string `json:"stop_time,omitempty"`
}

// JobListResponse wraps a collection of jobs.
type JobListResponse struct {
	Jobs []Job `json:"jobs"`
}

// JobResponse wraps a single job.
type JobResponse struct {
	Job Job `json:"job"`
}

// StatusResponse reports server state and job counts.
type StatusResponse struct {
	Running      bool           `json:"running"`
	PID          int            `json:"pid"`
	DatabasePath string         `json:"database_path"`
	LockFilePath string         `json:"lock_file_path"`
	TVDir        string         `json:"tv_dir,omitempty"`
	Counts       map[string]int `json:"counts"`
}

// AnalyzeRequest selects the jobs to analyze.
type AnalyzeRequest struct {
	JobIDs []int64 `json:"job_ids"`
}

// RenameRequest is the payload for preview and execute.
type RenameRequest struct {
	JobIDs        []int64 `json:"job_ids"`
	SeriesName    string  `json:"series_name"`
	UseCustomName bool    `json:"use_custom_name"`
	CustomName    string  `json:"custom_name"`
}

// JobDetail is one analyzed job.
type JobDetail struct {
	JobID          int64  `json:"job_id"`
	Title          string `json:"title"`
	TitleManual    string `json:"title_manual"`
	Year           string `json:"year"`
	Label          string `json:"label"`
	Path           string `json:"path"`
	DetectedSeries string `json:"detected_series"`
}

// AnalyzeResponse reports the inferred series name of a selection.
type AnalyzeResponse struct {
	Success             bool        `json:"success"`
	JobDetails          []JobDetail `json:"job_details"`
	SuggestedSeriesName string      `json:"suggested_series_name"`
	HasConflicts        bool        `json:"has_conflicts"`
	SeriesNamesFound    []string    `json:"series_names_found"`
}

// PlanEntry is one previewed rename.
type PlanEntry struct {
	JobID         int64  `json:"job_id"`
	CurrentTitle  string `json:"current_title"`
	CurrentPath   string `json:"current_path"`
	NewFolderName string `json:"new_folder_name"`
	NewPath       string `json:"new_path"`
	Label         string `json:"label"`
}

// PreviewResponse lists the computed renames.
type PreviewResponse struct {
	Success bool        `json:"success"`
	Preview []PlanEntry `json:"preview"`
}

// Outcome reports the result of renaming one job.
type Outcome struct {
	JobID   int64  `json:"job_id"`
	Success bool   `json:"success"`
	OldPath string `json:"old_path,omitempty"`
	NewPath string `json:"new_path,omitempty"`
	Failure string `json:"failure,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ExecuteResponse aggregates per-job rename outcomes.
type ExecuteResponse struct {
	Success           bool      `json:"success"`
	BatchID           string    `json:"batch_id"`
	Results           []Outcome `json:"results"`
	TotalProcessed    int       `json:"total_processed"`
	SuccessfulRenames int       `json:"successful_renames"`
}

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
