package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := Run{
		Filename: "guide.pdf",
		Title:    "User Guide",
		Headings: 4,
		Method:   "layout",
		Duration: 1500 * time.Millisecond,
	}
	second := Run{
		Filename: "broken.pdf",
		Method:   "auto",
		Error:    "parse pdf: malformed",
	}

	if err := s.Record(ctx, first); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := s.Record(ctx, second); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	runs, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Recent() returned %d runs, want 2", len(runs))
	}

	// Newest first.
	if runs[0].Filename != "broken.pdf" {
		t.Errorf("runs[0].Filename = %q, want %q", runs[0].Filename, "broken.pdf")
	}
	if runs[0].Error == "" {
		t.Error("runs[0].Error should carry the failure message")
	}

	got := runs[1]
	if got.Filename != first.Filename || got.Title != first.Title ||
		got.Headings != first.Headings || got.Method != first.Method {
		t.Errorf("runs[1] = %+v, want fields of %+v", got, first)
	}
	if got.Duration != first.Duration {
		t.Errorf("runs[1].Duration = %v, want %v", got.Duration, first.Duration)
	}
	if got.Created.IsZero() {
		t.Error("runs[1].Created should be filled in")
	}
}

func TestRecentLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Record(ctx, Run{Filename: "doc.pdf"}); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}

	runs, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("Recent(2) returned %d runs, want 2", len(runs))
	}
}

func TestRecentEmpty(t *testing.T) {
	s := openTestStore(t)

	runs, err := s.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Recent() on empty store returned %d runs", len(runs))
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if st.Total != 0 || st.Failed != 0 {
		t.Errorf("Stats() on empty store = %+v, want zeros", st)
	}

	s.Record(ctx, Run{Filename: "a.pdf"})
	s.Record(ctx, Run{Filename: "b.pdf"})
	s.Record(ctx, Run{Filename: "c.pdf", Error: "boom"})

	st, err = s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if st.Total != 3 {
		t.Errorf("Stats().Total = %d, want 3", st.Total)
	}
	if st.Failed != 1 {
		t.Errorf("Stats().Failed = %d, want 1", st.Failed)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := s.Record(ctx, Run{Filename: "kept.pdf", Title: "Kept"}); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s.Close()

	runs, err := s.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(runs) != 1 || runs[0].Filename != "kept.pdf" {
		t.Errorf("Recent() after reopen = %+v, want the stored run", runs)
	}
}

func TestOpenBadPath(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "h.db")); err == nil {
		t.Error("expected error for unwritable database path")
	}
}
