package batchrename_test

import (
	"context"
	"errors"
	"sync"

	"ripconsole/internal/batchrename"
	"ripconsole/internal/jobs"
)

type memStore struct {
	mu        sync.Mutex
	jobs      map[int64]jobs.Job
	updates   int
	updateErr error
}

func newMemStore(list ...jobs.Job) *memStore {
	s := &memStore{jobs: make(map[int64]jobs.Job, len(list))}
	for _, job := range list {
		s.jobs[job.ID] = job
	}
	return s
}

func (s *memStore) FindByIDs(_ context.Context, ids []int64) ([]*jobs.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int64]bool, len(ids))
	var out []*jobs.Job
	for _, id := range ids {
		job, ok := s.jobs[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		copyJob := job
		out = append(out, &copyJob)
	}
	return out, nil
}

func (s *memStore) UpdateRenamedPath(_ context.Context, id int64, oldPath, newPath string, titleManual *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	job, ok := s.jobs[id]
	if !ok {
		return errors.New("missing job")
	}
	if job.Path != oldPath {
		return errors.New("path changed")
	}
	job.Path = newPath
	if titleManual != nil {
		job.TitleManual = *titleManual
	}
	s.jobs[id] = job
	s.updates++
	return nil
}

func (s *memStore) get(id int64) jobs.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// failingFS delegates to the OS but fails renames of selected sources.
type failingFS struct {
	batchrename.OSFileSystem
	failRename map[string]error
}

func (f failingFS) Rename(oldPath, newPath string) error {
	if err, ok := f.failRename[oldPath]; ok {
		return err
	}
	return f.OSFileSystem.Rename(oldPath, newPath)
}

func seriesJob(id int64, title, year, label, path string) jobs.Job {
	return jobs.Job{
		ID:        id,
		Title:     title,
		Year:      year,
		Label:     label,
		Path:      path,
		Status:    jobs.StatusSuccess,
		VideoType: jobs.VideoTypeSeries,
	}
}
