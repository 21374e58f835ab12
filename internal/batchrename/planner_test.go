package batchrename_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"ripconsole/internal/batchrename"
)

func TestFolderName(t *testing.T) {
	cases := []struct {
		name  string
		base  string
		label string
		id    int64
		want  string
	}{
		{"disc one", "Breaking Bad", "BREAKING_BAD_S01_D1", 1, "Breaking-Bad_BREAKING-BAD-S01-D1"},
		{"disc two", "Breaking Bad", "BREAKING_BAD_S01_D2", 2, "Breaking-Bad_BREAKING-BAD-S01-D2"},
		{"no label", "Test Series", "", 999, "Test-Series_999"},
		{"label without safe characters", "Test Series", "???", 7, "Test-Series_7"},
		{"whitespace label", "Test Series", "  ", 8, "Test-Series_8"},
		{"ampersand", "Law & Order", "L_O_D1", 3, "Law-and-Order_L-O-D1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := batchrename.FolderName(tc.base, tc.label, tc.id); got != tc.want {
				t.Fatalf("FolderName = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTargetPath(t *testing.T) {
	if os.PathSeparator != '/' {
		t.Skip("cases use slash-separated paths")
	}
	cases := []struct {
		current string
		want    string
	}{
		{"/media/tv/Breaking Bad (2008)", "/media/tv/New_D1"},
		{"/media/tv/Breaking Bad (2008)_123", "/media/tv/New_D1"},
		{"/media/tv/old/", "/media/tv/New_D1"},
		{"relative", "New_D1"},
		{"", "New_D1"},
		{"/", "/New_D1"},
	}
	for _, tc := range cases {
		if got := batchrename.TargetPath(tc.current, "New_D1"); got != tc.want {
			t.Fatalf("TargetPath(%q) = %q, want %q", tc.current, got, tc.want)
		}
	}
}

func TestRequestBaseName(t *testing.T) {
	cases := []struct {
		name string
		req  batchrename.Request
		want string
	}{
		{"series name", batchrename.Request{SeriesName: "Lost"}, "Lost"},
		{"custom name", batchrename.Request{SeriesName: "Lost", UseCustomName: true, CustomName: "LOST"}, "LOST"},
		{"custom ignored when not requested", batchrename.Request{SeriesName: "Lost", CustomName: "LOST"}, "Lost"},
		{"empty custom falls back", batchrename.Request{SeriesName: "Lost", UseCustomName: true, CustomName: "  "}, "Lost"},
		{"nothing", batchrename.Request{UseCustomName: true}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.req.BaseName(); got != tc.want {
				t.Fatalf("BaseName = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPreviewScenario(t *testing.T) {
	if os.PathSeparator != '/' {
		t.Skip("cases use slash-separated paths")
	}
	store := newMemStore(
		seriesJob(1, "Breaking Bad (2008)", "2008", "BREAKING_BAD_S01_D1", "/media/tv/Breaking Bad (2008)"),
		seriesJob(2, "Breaking Bad (2008)", "2008", "BREAKING_BAD_S01_D2", "/media/tv/Breaking Bad (2008)_123"),
		seriesJob(999, "Test", "", "", "/media/tv/Test"),
	)
	plan, err := batchrename.New(store).Preview(context.Background(), batchrename.Request{
		JobIDs:     []int64{1, 2},
		SeriesName: "Breaking Bad",
	})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	want := []batchrename.PlanEntry{
		{
			JobID:         1,
			CurrentTitle:  "Breaking Bad (2008)",
			CurrentPath:   "/media/tv/Breaking Bad (2008)",
			NewFolderName: "Breaking-Bad_BREAKING-BAD-S01-D1",
			NewPath:       "/media/tv/Breaking-Bad_BREAKING-BAD-S01-D1",
			Label:         "BREAKING_BAD_S01_D1",
		},
		{
			JobID:         2,
			CurrentTitle:  "Breaking Bad (2008)",
			CurrentPath:   "/media/tv/Breaking Bad (2008)_123",
			NewFolderName: "Breaking-Bad_BREAKING-BAD-S01-D2",
			NewPath:       "/media/tv/Breaking-Bad_BREAKING-BAD-S01-D2",
			Label:         "BREAKING_BAD_S01_D2",
		},
	}
	if len(plan) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(plan))
	}
	for i := range want {
		if plan[i] != want[i] {
			t.Fatalf("entry %d = %#v, want %#v", i, plan[i], want[i])
		}
	}

	fallback, err := batchrename.New(store).Preview(context.Background(), batchrename.Request{
		JobIDs:     []int64{999},
		SeriesName: "Test Series",
	})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if len(fallback) != 1 || fallback[0].NewFolderName != "Test-Series_999" {
		t.Fatalf("unexpected fallback plan: %#v", fallback)
	}
}

func TestPreviewValidation(t *testing.T) {
	engine := batchrename.New(newMemStore(seriesJob(1, "Lost", "", "L", "/tv/l")))
	cases := []struct {
		name string
		req  batchrename.Request
		want error
	}{
		{"no jobs", batchrename.Request{SeriesName: "Lost"}, batchrename.ErrEmptySelection},
		{"no name", batchrename.Request{JobIDs: []int64{1}}, batchrename.ErrMissingName},
		{"custom requested but empty", batchrename.Request{JobIDs: []int64{1}, UseCustomName: true}, batchrename.ErrMissingName},
		{"unsafe name", batchrename.Request{JobIDs: []int64{1}, SeriesName: "???"}, batchrename.ErrInvalidName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := engine.Preview(context.Background(), tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("Preview error = %v, want %v", err, tc.want)
			}
			if _, err := engine.Execute(context.Background(), tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("Execute error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestPreviewUnknownJobsYieldEmptyPlan(t *testing.T) {
	engine := batchrename.New(newMemStore())
	plan, err := engine.Preview(context.Background(), batchrename.Request{JobIDs: []int64{5}, SeriesName: "Lost"})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if len(plan) != 0 {
		t.Fatalf("expected empty plan, got %#v", plan)
	}
}
