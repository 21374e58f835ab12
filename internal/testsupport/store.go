package testsupport

import (
	"context"
	"testing"

	"ripconsole/internal/config"
	"ripconsole/internal/jobs"
)

// MustOpenStore opens a jobs.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *jobs.Store {
	t.Helper()

	store, err := jobs.Open(cfg)
	if err != nil {
		t.Fatalf("jobs.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewJob inserts a job for tests using the provided store.
func NewJob(t testing.TB, store *jobs.Store, job jobs.Job) *jobs.Job {
	t.Helper()

	created, err := store.Create(context.Background(), &job)
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	return created
}

// SeriesJob returns a completed series job template rooted at path.
func SeriesJob(title, year, label, path string) jobs.Job {
	return jobs.Job{
		Title:     title,
		Year:      year,
		Label:     label,
		Path:      path,
		Status:    jobs.StatusSuccess,
		VideoType: jobs.VideoTypeSeries,
	}
}
