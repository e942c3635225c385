package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mkrylatov/cutplan/internal/domain/segmentation"
	"github.com/mkrylatov/cutplan/internal/types"
)

type fakePlanner struct {
	res types.CutPointResult
	err error
}

func (f fakePlanner) SelectCutPoints(_ context.Context, _ segmentation.Request) (types.CutPointResult, error) {
	return f.res, f.err
}

type fakeDuration struct {
	d   float64
	err error
}

func (f fakeDuration) Duration(_ context.Context, _ string) (float64, error) {
	return f.d, f.err
}

type fakeExtractor struct {
	calls []extractCall
	err   error
}

type extractCall struct {
	start, end float64
	out        string
}

func (f *fakeExtractor) ExtractSegment(_ context.Context, _ string, startSec, endSec float64, out string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, extractCall{start: startSec, end: endSec, out: out})
	return nil
}

func keyframeResult() types.CutPointResult {
	return types.CutPointResult{
		CutPoints:        []float64{0, 15, 30, 45},
		Method:           types.MethodKeyframe,
		Confidence:       0.9,
		QualityScore:     0.95,
		Reasoning:        "test",
		SegmentDurations: []float64{15, 15, 15},
	}
}

func TestRun_BuildsPlan(t *testing.T) {
	t.Parallel()

	ext := &fakeExtractor{}
	uc := New(Deps{
		Planner:          fakePlanner{res: keyframeResult()},
		DurationProvider: fakeDuration{d: 60},
		Extractor:        ext,
		Log:              zerolog.Nop(),
	})

	res, err := uc.Run(context.Background(), Input{Media: "in.mp4", Segments: 4})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	plan := res.Plan
	if plan.DurationSec != 60 {
		t.Fatalf("duration = %v", plan.DurationSec)
	}
	if len(plan.Segments) != 4 {
		t.Fatalf("got %d segments", len(plan.Segments))
	}
	last := plan.Segments[3]
	if last.ID != "004" || last.StartSec != 45 || last.EndSec != 60 || last.DurationSec != 15 {
		t.Fatalf("unexpected last segment: %+v", last)
	}
	if len(ext.calls) != 0 {
		t.Fatalf("extractor called without split")
	}
	for _, seg := range plan.Segments {
		if seg.File != "" {
			t.Fatalf("file set without split: %+v", seg)
		}
	}
}

func TestRun_SplitExtractsSegments(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	ext := &fakeExtractor{}
	uc := New(Deps{
		Planner:          fakePlanner{res: keyframeResult()},
		DurationProvider: fakeDuration{d: 60},
		Extractor:        ext,
		Log:              zerolog.Nop(),
	})

	res, err := uc.Run(context.Background(), Input{
		Media: "in.mp4", Segments: 4, Split: true, OutDir: tmp,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(ext.calls) != 4 {
		t.Fatalf("expected 4 extractions, got %d", len(ext.calls))
	}
	if ext.calls[1].start != 15 || ext.calls[1].end != 30 {
		t.Fatalf("unexpected extraction bounds: %+v", ext.calls[1])
	}
	wantOut := filepath.Join(tmp, "segments", "002.mp4")
	if ext.calls[1].out != wantOut {
		t.Fatalf("out = %q, want %q", ext.calls[1].out, wantOut)
	}
	if res.Plan.Segments[1].File != "segments/002.mp4" {
		t.Fatalf("plan file = %q", res.Plan.Segments[1].File)
	}
}

func TestRun_DegradedPlanSkipsExtraction(t *testing.T) {
	t.Parallel()

	degraded := types.CutPointResult{
		CutPoints:        []float64{0},
		Method:           types.MethodHeuristic,
		Confidence:       0,
		Reasoning:        "media file not found: in.mp4",
		SegmentDurations: []float64{0},
	}
	ext := &fakeExtractor{}
	uc := New(Deps{
		Planner:          fakePlanner{res: degraded},
		DurationProvider: fakeDuration{err: errors.New("no such file")},
		Extractor:        ext,
		Log:              zerolog.Nop(),
	})

	res, err := uc.Run(context.Background(), Input{
		Media: "in.mp4", Segments: 4, Split: true, OutDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(ext.calls) != 0 {
		t.Fatalf("degraded plan must not extract segments")
	}
	if res.Plan.Confidence != 0 || len(res.Plan.Segments) != 1 {
		t.Fatalf("unexpected degraded plan: %+v", res.Plan)
	}
}

func TestRun_ExtractionErrorPropagates(t *testing.T) {
	t.Parallel()

	ext := &fakeExtractor{err: errors.New("disk full")}
	uc := New(Deps{
		Planner:          fakePlanner{res: keyframeResult()},
		DurationProvider: fakeDuration{d: 60},
		Extractor:        ext,
		Log:              zerolog.Nop(),
	})

	_, err := uc.Run(context.Background(), Input{
		Media: "in.mp4", Segments: 4, Split: true, OutDir: t.TempDir(),
	})
	if err == nil {
		t.Fatalf("expected extraction error")
	}
}

func TestRun_PlannerErrorPropagates(t *testing.T) {
	t.Parallel()

	uc := New(Deps{
		Planner:          fakePlanner{err: segmentation.ErrInvalidArgument},
		DurationProvider: fakeDuration{d: 60},
		Extractor:        &fakeExtractor{},
		Log:              zerolog.Nop(),
	})

	_, err := uc.Run(context.Background(), Input{Media: "in.mp4", Segments: 0})
	if !errors.Is(err, segmentation.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument error, got %v", err)
	}
}
