package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/brickforge/brickstep/pkg/cache"
)

const sampleSource = `0 FILE root.ldr
1 4 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat
0 STEP
1 16 0 -24 0 1 0 0 0 1 0 0 0 1 wing.ldr
0 STEP
0 NOFILE
0 FILE wing.ldr
1 14 10 0 0 1 0 0 0 1 0 0 0 1 3010.dat
0 STEP
0 NOFILE
`

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.RootName == "" {
		t.Error("root name should default")
	}
	if opts.Scale != 1 {
		t.Errorf("scale = %v, want 1", opts.Scale)
	}
	if opts.DPI == 0 {
		t.Error("dpi should default")
	}
	if opts.Logger == nil {
		t.Error("logger should default")
	}
}

func TestRunnerRun(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Run(ctx, sampleSource, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Stats.ModelCount != 2 {
		t.Errorf("models = %d, want 2", result.Stats.ModelCount)
	}
	if result.Stats.StepCount != 3 {
		t.Errorf("steps = %d, want 3", result.Stats.StepCount)
	}
	if result.Stats.PieceCount != 2 {
		t.Errorf("pieces = %d, want 2", result.Stats.PieceCount)
	}
	if result.SourceHash == "" {
		t.Error("source hash should be set")
	}
}

func TestRunnerRunBadRoot(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	if _, err := runner.Run(ctx, sampleSource, Options{RootName: "nosuch.ldr"}); err == nil {
		t.Fatal("unknown root should fail")
	}
}

func TestSummaryCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{}
	first, hit, err := runner.SummaryWithCacheInfo(ctx, sampleSource, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first run should miss the cache")
	}

	second, hit, err := runner.SummaryWithCacheInfo(ctx, sampleSource, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second run should hit the cache")
	}
	if len(second.Steps) != len(first.Steps) {
		t.Fatalf("cached steps = %d, want %d", len(second.Steps), len(first.Steps))
	}
	for i := range first.Steps {
		if second.Steps[i].Hash != first.Steps[i].Hash {
			t.Errorf("step %d hash differs after cache round trip", i)
		}
	}

	// Refresh bypasses the cache.
	_, hit, err = runner.SummaryWithCacheInfo(ctx, sampleSource, Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestSummaryContents(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	summary, err := runner.Summary(ctx, sampleSource, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Pieces != 2 || summary.Elements != 2 {
		t.Errorf("counts = %d %d, want 2 2", summary.Pieces, summary.Elements)
	}
	if summary.BOM["3001-4"] != 1 || summary.BOM["3010-14"] != 1 {
		t.Errorf("bom = %v", summary.BOM)
	}
	if len(summary.Steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(summary.Steps))
	}
	if summary.Steps[1].Level != 1 {
		t.Errorf("sub-model step level = %d, want 1", summary.Steps[1].Level)
	}
}

func TestWriteModel(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Run(ctx, sampleSource, Options{})
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := WriteModel(&sb, result.Build); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, "3001.dat") || !strings.Contains(out, "3010.dat") {
		t.Errorf("flattened output missing parts:\n%s", out)
	}
	if strings.Contains(out, "wing.ldr") {
		t.Error("sub-model reference should be flattened away")
	}
	if got := strings.Count(out, "0 STEP"); got != 2 {
		t.Errorf("step delimiters = %d, want 2", got)
	}
}
