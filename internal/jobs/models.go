package jobs

import (
	"strings"
	"time"

	"ripconsole/internal/textutil"
)

// Status is the lifecycle state of a rip job.
type Status string

const (
	StatusActive  Status = "active"
	StatusWaiting Status = "waiting"
	StatusSuccess Status = "success"
	StatusFail    Status = "fail"
)

// VideoType classifies the content of a ripped disc.
type VideoType string

const (
	VideoTypeMovie   VideoType = "movie"
	VideoTypeSeries  VideoType = "series"
	VideoTypeUnknown VideoType = "unknown"
)

var knownStatuses = []Status{StatusActive, StatusWaiting, StatusSuccess, StatusFail}

// Statuses returns every status in display order.
func Statuses() []Status {
	out := make([]Status, len(knownStatuses))
	copy(out, knownStatuses)
	return out
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(raw)))
	for _, status := range knownStatuses {
		if status == normalized {
			return status, true
		}
	}
	return "", false
}

// ParseVideoType converts a raw string into a VideoType, defaulting to unknown.
func ParseVideoType(raw string) VideoType {
	switch VideoType(strings.ToLower(strings.TrimSpace(raw))) {
	case VideoTypeMovie:
		return VideoTypeMovie
	case VideoTypeSeries:
		return VideoTypeSeries
	default:
		return VideoTypeUnknown
	}
}

// Job is a rip job record produced by the ripping pipeline.
type Job struct {
	ID          int64
	Title       string
	TitleManual string
	Year        string
	Label       string
	Path        string
	Status      Status
	VideoType   VideoType
	StartTime   time.Time
	StopTime    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ResolvedTitle returns the manual title when set, otherwise the detected title.
func (j *Job) ResolvedTitle() string {
	if j == nil {
		return ""
	}
	if j.TitleManual != "" {
		return j.TitleManual
	}
	return j.Title
}

// BatchRenameEligible reports whether the job may take part in a batch rename.
func (j *Job) BatchRenameEligible() bool {
	return IsBatchRenameEligible(j)
}

// IsBatchRenameEligible is the single eligibility predicate used by listing,
// analysis, preview, and execution.
func IsBatchRenameEligible(j *Job) bool {
	if j == nil {
		return false
	}
	return j.Status == StatusSuccess && j.VideoType == VideoTypeSeries && j.Path != ""
}

// DisplayTitle returns the title shown for a job in listings. With
// useDiscLabel enabled, series jobs that carry a disc label show the cleaned
// label; everything else shows "<title> (<year>)".
func DisplayTitle(j *Job, useDiscLabel bool) string {
	if j == nil {
		return ""
	}
	if j.TitleManual != "" {
		return j.TitleManual
	}
	if useDiscLabel && j.VideoType == VideoTypeSeries && strings.TrimSpace(j.Label) != "" {
		if cleaned := textutil.CleanForFilename(j.Label); cleaned != "" {
			return cleaned
		}
	}
	title := strings.TrimSpace(j.Title)
	year := strings.TrimSpace(j.Year)
	switch {
	case title == "":
		return ""
	case year == "" || strings.Contains(title, "("+year+")"):
		return title
	default:
		return title + " (" + year + ")"
	}
}
