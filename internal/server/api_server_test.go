package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"ripconsole/internal/api"
	"ripconsole/internal/jobs"
	"ripconsole/internal/services"
	"ripconsole/internal/testsupport"
)

type fixture struct {
	server *Server
	store  *jobs.Store
	tvDir  string
}

func newFixture(t *testing.T, opts ...testsupport.ConfigOption) fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	store := testsupport.MustOpenStore(t, cfg)
	srv, err := New(cfg, store, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return fixture{server: srv, store: store, tvDir: testsupport.MakeDir(t, cfg.Library.TVDir)}
}

func (f fixture) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	w := httptest.NewRecorder()
	f.server.api.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHandleJobsEligibleFilter(t *testing.T) {
	f := newFixture(t)
	eligible := testsupport.NewJob(t, f.store, testsupport.SeriesJob("Lost", "2004", "LOST_D1", filepath.Join(f.tvDir, "Lost")))
	movie := testsupport.SeriesJob("Heat", "1995", "HEAT", "/movies/heat")
	movie.VideoType = jobs.VideoTypeMovie
	testsupport.NewJob(t, f.store, movie)

	w := f.do(t, http.MethodGet, "/api/jobs", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if all := decode[api.JobListResponse](t, w); len(all.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(all.Jobs))
	}

	w = f.do(t, http.MethodGet, "/api/jobs?eligible=batch_rename", nil, nil)
	resp := decode[api.JobListResponse](t, w)
	if len(resp.Jobs) != 1 || resp.Jobs[0].JobID != eligible.ID {
		t.Fatalf("unexpected eligible jobs: %#v", resp.Jobs)
	}

	if w = f.do(t, http.MethodGet, "/api/jobs?status=bogus", nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", w.Code)
	}
}

func TestHandleJob(t *testing.T) {
	f := newFixture(t)
	job := testsupport.NewJob(t, f.store, testsupport.SeriesJob("Lost", "2004", "LOST_D1", "/tv/lost"))

	w := f.do(t, http.MethodGet, "/api/jobs/"+itoa(job.ID), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decode[api.JobResponse](t, w); got.Job.Title != "Lost" {
		t.Fatalf("unexpected job: %#v", got.Job)
	}

	if w = f.do(t, http.MethodGet, "/api/jobs/999", nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w = f.do(t, http.MethodGet, "/api/jobs/abc", nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBatchRenameFlow(t *testing.T) {
	f := newFixture(t)
	first := testsupport.NewJob(t, f.store, testsupport.SeriesJob("Breaking Bad (2008)", "2008", "BREAKING_BAD_S01_D1", testsupport.MakeDir(t, f.tvDir, "Breaking Bad (2008)")))
	second := testsupport.NewJob(t, f.store, testsupport.SeriesJob("Breaking Bad (2008)", "2008", "BREAKING_BAD_S01_D2", testsupport.MakeDir(t, f.tvDir, "Breaking Bad (2008)_123")))
	ids := []int64{first.ID, second.ID}

	w := f.do(t, http.MethodPost, "/api/batch-rename/analyze", api.AnalyzeRequest{JobIDs: ids}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("analyze: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	analysis := decode[api.AnalyzeResponse](t, w)
	if analysis.SuggestedSeriesName != "Breaking Bad" || analysis.HasConflicts {
		t.Fatalf("unexpected analysis: %#v", analysis)
	}

	renameReq := api.RenameRequest{JobIDs: ids, SeriesName: analysis.SuggestedSeriesName}
	w = f.do(t, http.MethodPost, "/api/batch-rename/preview", renameReq, nil)
	preview := decode[api.PreviewResponse](t, w)
	if len(preview.Preview) != 2 || preview.Preview[0].NewFolderName != "Breaking-Bad_BREAKING-BAD-S01-D1" {
		t.Fatalf("unexpected preview: %#v", preview)
	}

	w = f.do(t, http.MethodPost, "/api/batch-rename/execute", renameReq, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("execute: expected 200, got %d", w.Code)
	}
	executed := decode[api.ExecuteResponse](t, w)
	if executed.TotalProcessed != 2 || executed.SuccessfulRenames != 2 {
		t.Fatalf("unexpected execute response: %#v", executed)
	}
	for i := range executed.Results {
		if executed.Results[i].NewPath != preview.Preview[i].NewPath {
			t.Fatalf("execute path %q differs from preview %q", executed.Results[i].NewPath, preview.Preview[i].NewPath)
		}
	}
}

func TestBatchRenameValidationErrors(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/batch-rename/analyze", api.AnalyzeRequest{}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty selection, got %d", w.Code)
	}
	if msg := decode[api.ErrorResponse](t, w).Error; !strings.Contains(msg, "no jobs selected") {
		t.Fatalf("unexpected error message %q", msg)
	}

	w = f.do(t, http.MethodPost, "/api/batch-rename/preview", api.RenameRequest{JobIDs: []int64{1}}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/batch-rename/execute", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	f.server.api.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad JSON, got %d", rec.Code)
	}

	if w = f.do(t, http.MethodGet, "/api/batch-rename/execute", nil, nil); w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestAuthAndRequestID(t *testing.T) {
	f := newFixture(t, testsupport.WithAPIToken("secret"))

	w := f.do(t, http.MethodGet, "/api/status", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected generated request id header")
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer secret")
	header.Set(requestIDHeader, "req-42")
	w = f.do(t, http.MethodGet, "/api/status", nil, header)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", w.Code)
	}
	if got := w.Header().Get(requestIDHeader); got != "req-42" {
		t.Fatalf("request id = %q", got)
	}
	status := decode[api.StatusResponse](t, w)
	if status.Counts["success"] != 0 || status.DatabasePath == "" {
		t.Fatalf("unexpected status: %#v", status)
	}
}

func TestServerLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	srv, err := New(cfg, store, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	addr := srv.Addr()
	if addr == "" {
		t.Fatal("expected bound address")
	}
	resp, err := http.Get("http://" + addr + "/api/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	second, err := New(cfg, store, nil)
	if err != nil {
		t.Fatalf("New second: %v", err)
	}
	err = second.Start(ctx)
	if err == nil {
		second.Stop()
		t.Fatal("expected second server to fail acquiring the lock")
	}
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestServerStopsWhenContextCancelled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	srv, err := New(cfg, store, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()

	deadline := time.Now().Add(5 * time.Second)
	for srv.running.Load() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if srv.running.Load() {
		t.Fatal("server still running after context cancellation")
	}
	if srv.Addr() != "" {
		t.Fatalf("listener still bound at %s", srv.Addr())
	}

	next, err := New(cfg, store, nil)
	if err != nil {
		t.Fatalf("New next: %v", err)
	}
	if err := next.Start(context.Background()); err != nil {
		t.Fatalf("lock not released after cancellation: %v", err)
	}
	next.Stop()
	next.Stop()
}

func TestServerConcurrentStartsClaimOnce(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	srv, err := New(cfg, store, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer srv.Stop()

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- srv.Start(context.Background())
		}()
	}
	wg.Wait()
	close(errs)

	started := 0
	for err := range errs {
		if err == nil {
			started++
		}
	}
	if started != 1 {
		t.Fatalf("expected exactly one successful start, got %d", started)
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
