package api

import (
	"ripconsole/internal/batchrename"
	"ripconsole/internal/jobs"
)

// FromJob converts a job record to its API representation.
func FromJob(job *jobs.Job, useDiscLabel bool) Job {
	if job == nil {
		return Job{}
	}
	dto := Job{
		JobID:               job.ID,
		Title:               job.Title,
		TitleManual:         job.TitleManual,
		DisplayTitle:        jobs.DisplayTitle(job, useDiscLabel),
		Year:                job.Year,
		Label:               job.Label,
		Path:                job.Path,
		Status:              string(job.Status),
		VideoType:           string(job.VideoType),
		BatchRenameEligible: job.BatchRenameEligible(),
	}
	if !job.StartTime.IsZero() {
		dto.StartTime = job.StartTime.UTC().Format(dateTimeFormat)
	}
	if job.StopTime != nil && !job.StopTime.IsZero() {
		dto.StopTime = job.StopTime.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromJobs converts a slice of jobs, never returning nil.
func FromJobs(list []*jobs.Job, useDiscLabel bool) []Job {
	out := make([]Job, 0, len(list))
	for _, job := range list {
		if job == nil {
			continue
		}
		out = append(out, FromJob(job, useDiscLabel))
	}
	return out
}

// MergeJobStats converts store counts to string keys, including every known status.
func MergeJobStats(stats map[jobs.Status]int) map[string]int {
	out := make(map[string]int, len(stats))
	for _, status := range jobs.Statuses() {
		out[string(status)] = 0
	}
	for status, count := range stats {
		out[string(status)] = count
	}
	return out
}

// ToRequest converts the wire payload into an engine request.
func (r RenameRequest) ToRequest() batchrename.Request {
	return batchrename.Request{
		JobIDs:        r.JobIDs,
		SeriesName:    r.SeriesName,
		UseCustomName: r.UseCustomName,
		CustomName:    r.CustomName,
	}
}

// FromAnalysis converts an engine analysis to its API representation.
func FromAnalysis(analysis *batchrename.Analysis) AnalyzeResponse {
	resp := AnalyzeResponse{Success: true, JobDetails: []JobDetail{}, SeriesNamesFound: []string{}}
	if analysis == nil {
		return resp
	}
	for _, detail := range analysis.JobDetails {
		resp.JobDetails = append(resp.JobDetails, JobDetail{
			JobID:          detail.JobID,
			Title:          detail.Title,
			TitleManual:    detail.TitleManual,
			Year:           detail.Year,
			Label:          detail.Label,
			Path:           detail.Path,
			DetectedSeries: detail.DetectedSeries,
		})
	}
	resp.SuggestedSeriesName = analysis.SuggestedName
	resp.HasConflicts = analysis.HasConflicts
	resp.SeriesNamesFound = append(resp.SeriesNamesFound, analysis.SeriesNamesFound...)
	return resp
}

// FromPlan converts a rename plan to its API representation.
func FromPlan(plan []batchrename.PlanEntry) PreviewResponse {
	resp := PreviewResponse{Success: true, Preview: make([]PlanEntry, 0, len(plan))}
	for _, entry := range plan {
		resp.Preview = append(resp.Preview, PlanEntry{
			JobID:         entry.JobID,
			CurrentTitle:  entry.CurrentTitle,
			CurrentPath:   entry.CurrentPath,
			NewFolderName: entry.NewFolderName,
			NewPath:       entry.NewPath,
			Label:         entry.Label,
		})
	}
	return resp
}

// FromResult converts an execution result to its API representation.
func FromResult(result *batchrename.Result) ExecuteResponse {
	resp := ExecuteResponse{Success: true, Results: []Outcome{}}
	if result == nil {
		return resp
	}
	resp.BatchID = result.BatchID
	resp.TotalProcessed = result.TotalProcessed
	resp.SuccessfulRenames = result.SuccessfulRenames
	for _, outcome := range result.Results {
		resp.Results = append(resp.Results, Outcome{
			JobID:   outcome.JobID,
			Success: outcome.Success,
			OldPath: outcome.OldPath,
			NewPath: outcome.NewPath,
			Failure: string(outcome.Failure),
			Error:   outcome.Error,
		})
	}
	return resp
}
