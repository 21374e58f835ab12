package api

import (
	"context"

	"ripconsole/internal/jobs"
)

// JobReader abstracts job persistence interactions needed for API queries.
type JobReader interface {
	List(ctx context.Context, statuses ...jobs.Status) ([]*jobs.Job, error)
	ListEligibleForBatchRename(ctx context.Context) ([]*jobs.Job, error)
	GetByID(ctx context.Context, id int64) (*jobs.Job, error)
	Stats(ctx context.Context) (map[jobs.Status]int, error)
}

// JobService exposes read-only job operations returning API DTOs.
type JobService struct {
	store        JobReader
	useDiscLabel bool
}

// NewJobService constructs a JobService around the provided reader.
func NewJobService(store JobReader, useDiscLabel bool) *JobService {
	if store == nil {
		return nil
	}
	return &JobService{store: store, useDiscLabel: useDiscLabel}
}

// List returns jobs filtered by status.
func (s *JobService) List(ctx context.Context, statuses ...jobs.Status) ([]Job, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	list, err := s.store.List(ctx, statuses...)
	if err != nil {
		return nil, err
	}
	return FromJobs(list, s.useDiscLabel), nil
}

// ListEligible returns the jobs that can take part in a batch rename.
func (s *JobService) ListEligible(ctx context.Context) ([]Job, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	list, err := s.store.ListEligibleForBatchRename(ctx)
	if err != nil {
		return nil, err
	}
	return FromJobs(list, s.useDiscLabel), nil
}

// Describe fetches a single job. A missing job yields (nil, nil).
func (s *JobService) Describe(ctx context.Context, id int64) (*Job, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	job, err := s.store.GetByID(ctx, id)
	if err != nil || job == nil {
		return nil, err
	}
	dto := FromJob(job, s.useDiscLabel)
	return &dto, nil
}

// Stats returns job counts keyed by status string.
func (s *JobService) Stats(ctx context.Context) (map[string]int, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return MergeJobStats(stats), nil
}
