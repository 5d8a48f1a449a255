package store

import (
	"context"
	"testing"
	"time"

	"github.com/brickforge/brickstep/pkg/build"
	"github.com/brickforge/brickstep/pkg/ldraw"
)

const sampleModel = `1 1 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat
0 STEP
1 2 0 -24 0 1 0 0 0 1 0 0 0 1 3002.dat
0 STEP
`

func sampleResult(t *testing.T) *build.Result {
	t.Helper()
	table, err := ldraw.ParseModelTable(sampleModel)
	if err != nil {
		t.Fatal(err)
	}
	res, err := build.Unwrap(table, ldraw.RootName, build.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestBuildRun(t *testing.T) {
	res := sampleResult(t)
	run := BuildRun(res, "srchash", "root.ldr")

	if run.ID == "" {
		t.Error("run should get an identifier")
	}
	if run.SourceHash != "srchash" || run.RootName != "root.ldr" {
		t.Errorf("run = %+v", run)
	}
	if run.Pieces != 2 || run.Elements != 2 {
		t.Errorf("counts = %d %d, want 2 2", run.Pieces, run.Elements)
	}
	if len(run.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(run.Steps))
	}
	for i, doc := range run.Steps {
		if doc.Idx != i || doc.Num != i+1 {
			t.Errorf("step %d: idx %d num %d", i, doc.Idx, doc.Num)
		}
		if doc.Hash != res.Steps[i].Hash() {
			t.Errorf("step %d hash mismatch", i)
		}
		if doc.Parts != 1 {
			t.Errorf("step %d parts = %d, want 1", i, doc.Parts)
		}
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	res := sampleResult(t)

	run := BuildRun(res, "hash-a", "root.ldr")
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != run.ID {
		t.Errorf("got run %s, want %s", got.ID, run.ID)
	}

	if _, err := s.GetRun(ctx, "nope"); err != ErrNotFound {
		t.Errorf("missing run error = %v", err)
	}

	if err := s.DeleteRun(ctx, run.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetRun(ctx, run.ID); err != ErrNotFound {
		t.Errorf("deleted run error = %v", err)
	}
	if err := s.DeleteRun(ctx, run.ID); err != ErrNotFound {
		t.Errorf("double delete error = %v", err)
	}
}

func TestMemoryStoreLatestAndList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	res := sampleResult(t)

	older := BuildRun(res, "hash-a", "root.ldr")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := BuildRun(res, "hash-a", "root.ldr")
	other := BuildRun(res, "hash-b", "root.ldr")
	for _, run := range []*Run{older, newer, other} {
		if err := s.SaveRun(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := s.LatestBySourceHash(ctx, "hash-a")
	if err != nil {
		t.Fatal(err)
	}
	if latest.ID != newer.ID {
		t.Errorf("latest = %s, want %s", latest.ID, newer.ID)
	}

	if _, err := s.LatestBySourceHash(ctx, "hash-z"); err != ErrNotFound {
		t.Errorf("unknown source error = %v", err)
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].CreatedAt.Before(runs[1].CreatedAt) {
		t.Error("runs should be newest first")
	}
}
