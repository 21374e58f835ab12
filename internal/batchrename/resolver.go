package batchrename

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"ripconsole/internal/jobs"
	"ripconsole/internal/logging"
	"ripconsole/internal/services"
)

// InferSeriesName returns the job's resolved title with the literal
// "(<year>)" removed.
func InferSeriesName(job *jobs.Job) string {
	title := job.ResolvedTitle()
	if title != "" && job.Year != "" {
		title = strings.TrimSpace(strings.ReplaceAll(title, "("+job.Year+")", ""))
	}
	return title
}

// Analyze infers the series name shared by the selected eligible jobs. It is
// read-only.
func (e *Engine) Analyze(ctx context.Context, ids []int64) (*Analysis, error) {
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}
	ctx = services.WithOperation(ctx, "analyze")
	selected, err := e.loadEligible(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}

	names := make(map[string]struct{}, len(selected))
	details := make([]JobDetail, 0, len(selected))
	for _, job := range selected {
		series := InferSeriesName(job)
		names[series] = struct{}{}
		details = append(details, JobDetail{
			JobID:          job.ID,
			Title:          job.Title,
			TitleManual:    job.TitleManual,
			Year:           job.Year,
			Label:          job.Label,
			Path:           job.Path,
			DetectedSeries: series,
		})
	}

	found := make([]string, 0, len(names))
	for name := range names {
		found = append(found, name)
	}
	sort.Strings(found)

	analysis := &Analysis{
		JobDetails:       details,
		HasConflicts:     len(found) > 1,
		SeriesNamesFound: found,
	}
	if len(found) == 1 {
		analysis.SuggestedName = found[0]
	}

	logging.WithContext(ctx, e.logger).Debug("series analyzed",
		slog.Int("jobs", len(details)),
		slog.Int("series_names", len(found)),
		slog.Bool("has_conflicts", analysis.HasConflicts),
	)
	return analysis, nil
}
