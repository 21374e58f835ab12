package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ripconsole/internal/jobs"
	"ripconsole/internal/services"
	"ripconsole/internal/testsupport"
)

func TestCreateAndGetByID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	created := testsupport.NewJob(t, store, testsupport.SeriesJob("Breaking Bad (2008)", "2008", "BREAKING_BAD_S1_D1", "/tv/Breaking Bad (2008)"))
	if created.ID == 0 {
		t.Fatal("expected job ID to be assigned")
	}

	fetched, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected job to be found")
	}
	if fetched.Title != "Breaking Bad (2008)" || fetched.Label != "BREAKING_BAD_S1_D1" || fetched.Path != "/tv/Breaking Bad (2008)" {
		t.Fatalf("unexpected fetched job: %#v", fetched)
	}
	if fetched.Status != jobs.StatusSuccess || fetched.VideoType != jobs.VideoTypeSeries {
		t.Fatalf("unexpected status/type: %s/%s", fetched.Status, fetched.VideoType)
	}
	if fetched.StartTime.IsZero() || fetched.CreatedAt.IsZero() {
		t.Fatalf("expected timestamps to be populated: %#v", fetched)
	}

	missing, err := store.GetByID(ctx, created.ID+100)
	if err != nil {
		t.Fatalf("GetByID missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing job, got %#v", missing)
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.Create(context.Background(), &jobs.Job{Title: "x", Status: "exploded"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListEligibleForBatchRenameFiltersJobs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	older := testsupport.SeriesJob("Show A", "2020", "SHOW_A_D1", "/tv/a1")
	older.StartTime = base
	newer := testsupport.SeriesJob("Show A", "2020", "SHOW_A_D2", "/tv/a2")
	newer.StartTime = base.Add(time.Hour)

	movie := testsupport.SeriesJob("Movie", "2021", "MOVIE", "/movies/m")
	movie.VideoType = jobs.VideoTypeMovie
	failed := testsupport.SeriesJob("Broken", "2021", "BROKEN", "/tv/broken")
	failed.Status = jobs.StatusFail
	noPath := testsupport.SeriesJob("No Path", "2021", "NOPATH", "")

	olderJob := testsupport.NewJob(t, store, older)
	newerJob := testsupport.NewJob(t, store, newer)
	testsupport.NewJob(t, store, movie)
	testsupport.NewJob(t, store, failed)
	testsupport.NewJob(t, store, noPath)

	eligible, err := store.ListEligibleForBatchRename(ctx)
	if err != nil {
		t.Fatalf("ListEligibleForBatchRename failed: %v", err)
	}
	if len(eligible) != 2 {
		t.Fatalf("expected 2 eligible jobs, got %d", len(eligible))
	}
	if eligible[0].ID != newerJob.ID || eligible[1].ID != olderJob.ID {
		t.Fatalf("expected newest first, got %d then %d", eligible[0].ID, eligible[1].ID)
	}
	for _, job := range eligible {
		if !jobs.IsBatchRenameEligible(job) {
			t.Fatalf("listing returned ineligible job %#v", job)
		}
	}
}

func TestFindByIDsPreservesRequestOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	a := testsupport.NewJob(t, store, testsupport.SeriesJob("A", "", "A", "/tv/a"))
	b := testsupport.NewJob(t, store, testsupport.SeriesJob("B", "", "B", "/tv/b"))
	c := testsupport.NewJob(t, store, testsupport.SeriesJob("C", "", "C", "/tv/c"))

	found, err := store.FindByIDs(ctx, []int64{c.ID, 9999, a.ID, c.ID, b.ID})
	if err != nil {
		t.Fatalf("FindByIDs failed: %v", err)
	}
	want := []int64{c.ID, a.ID, b.ID}
	if len(found) != len(want) {
		t.Fatalf("expected %d jobs, got %d", len(want), len(found))
	}
	for i, id := range want {
		if found[i].ID != id {
			t.Fatalf("position %d: expected %d, got %d", i, id, found[i].ID)
		}
	}

	empty, err := store.FindByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("FindByIDs(nil) failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no jobs, got %d", len(empty))
	}
}

func TestUpdatePersistsPathAndManualTitle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	job := testsupport.NewJob(t, store, testsupport.SeriesJob("Show", "2019", "SHOW_D1", "/tv/old"))
	job.Path = "/tv/Show_SHOW-D1"
	job.TitleManual = "My Show (2019)"
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	fetched, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Path != "/tv/Show_SHOW-D1" || fetched.TitleManual != "My Show (2019)" {
		t.Fatalf("update not persisted: %#v", fetched)
	}
	if fetched.ResolvedTitle() != "My Show (2019)" {
		t.Fatalf("expected manual title to win, got %q", fetched.ResolvedTitle())
	}
}

func TestUpdateMissingJob(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	err := store.Update(context.Background(), &jobs.Job{ID: 42, Status: jobs.StatusSuccess, VideoType: jobs.VideoTypeSeries})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateRenamedPathTouchesOnlyPathAndManualTitle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	job := testsupport.NewJob(t, store, testsupport.SeriesJob("Show", "2019", "SHOW_D1", "/tv/old"))

	// Another writer relabels the job after the rename batch loaded it.
	edited := *job
	edited.Label = "SHOW_D9"
	if err := store.Update(ctx, &edited); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	title := "My Show (2019)"
	if err := store.UpdateRenamedPath(ctx, job.ID, "/tv/old", "/tv/My-Show_SHOW-D1", &title); err != nil {
		t.Fatalf("UpdateRenamedPath failed: %v", err)
	}
	fetched, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Path != "/tv/My-Show_SHOW-D1" || fetched.TitleManual != title {
		t.Fatalf("rename not persisted: %#v", fetched)
	}
	if fetched.Label != "SHOW_D9" || fetched.Title != "Show" {
		t.Fatalf("unrelated fields changed: %#v", fetched)
	}

	if err := store.UpdateRenamedPath(ctx, job.ID, "/tv/My-Show_SHOW-D1", "/tv/Again", nil); err != nil {
		t.Fatalf("UpdateRenamedPath without title failed: %v", err)
	}
	fetched, err = store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.TitleManual != title {
		t.Fatalf("manual title cleared without request: %q", fetched.TitleManual)
	}
}

func TestUpdateRenamedPathRejectsStalePath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	job := testsupport.NewJob(t, store, testsupport.SeriesJob("Show", "2019", "SHOW_D1", "/tv/current"))

	err := store.UpdateRenamedPath(ctx, job.ID, "/tv/stale", "/tv/new", nil)
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	fetched, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Path != "/tv/current" {
		t.Fatalf("stale update applied: %q", fetched.Path)
	}

	err = store.UpdateRenamedPath(ctx, 999, "/tv/a", "/tv/b", nil)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStatsCountsPerStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.NewJob(t, store, testsupport.SeriesJob("A", "", "A", "/tv/a"))
	testsupport.NewJob(t, store, testsupport.SeriesJob("B", "", "B", "/tv/b"))
	active := testsupport.SeriesJob("C", "", "C", "")
	active.Status = jobs.StatusActive
	testsupport.NewJob(t, store, active)

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats[jobs.StatusSuccess] != 2 || stats[jobs.StatusActive] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
	if count, ok := stats[jobs.StatusFail]; !ok || count != 0 {
		t.Fatalf("expected zero fail entry, got %v", stats)
	}
}

func TestReopenKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := jobs.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	job := testsupport.NewJob(t, store, testsupport.SeriesJob("A", "", "A", "/tv/a"))
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	fetched, err := reopened.GetByID(context.Background(), job.ID)
	if err != nil || fetched == nil {
		t.Fatalf("expected job after reopen, got %#v, %v", fetched, err)
	}
}
