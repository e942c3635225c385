package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mkrylatov/cutplan/internal/domain/segmentation"
	"github.com/mkrylatov/cutplan/internal/ports"
	"github.com/mkrylatov/cutplan/internal/types"
)

// Planner selects cut points for a media source.
type Planner interface {
	SelectCutPoints(ctx context.Context, req segmentation.Request) (types.CutPointResult, error)
}

type Deps struct {
	Planner Planner
	ports.DurationProvider
	Extractor ports.SegmentExtractor
	Log       zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	Media             string
	Segments          int
	TargetDurationSec float64
	// Split extracts each planned segment to OutDir/segments/NNN.mp4.
	Split  bool
	OutDir string
}

type Result struct {
	Plan types.Plan
}

// Run plans the segmentation and optionally extracts the segment files.
// A degraded plan (zero confidence) is still written so the caller can see
// the reasoning, but nothing is extracted from it.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	res, err := u.d.Planner.SelectCutPoints(ctx, segmentation.Request{
		Media:             in.Media,
		TargetSegments:    in.Segments,
		TargetDurationSec: in.TargetDurationSec,
	})
	if err != nil {
		return Result{}, err
	}

	// The end of the last segment is the probed duration; a failed probe
	// (the degraded case) leaves it at the last cut point.
	duration := res.CutPoints[len(res.CutPoints)-1]
	if d, err := u.d.Duration(ctx, in.Media); err == nil && d > duration {
		duration = d
	} else if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	plan := types.Plan{
		Input:        in.Media,
		DurationSec:  duration,
		Method:       res.Method,
		Confidence:   res.Confidence,
		QualityScore: res.QualityScore,
		Reasoning:    res.Reasoning,
		CutPoints:    res.CutPoints,
	}
	for i, start := range res.CutPoints {
		end := duration
		if i+1 < len(res.CutPoints) {
			end = res.CutPoints[i+1]
		}
		plan.Segments = append(plan.Segments, types.PlanSegment{
			ID:          fmt.Sprintf("%03d", i+1),
			StartSec:    start,
			EndSec:      end,
			DurationSec: end - start,
		})
	}

	if !in.Split {
		return Result{Plan: plan}, nil
	}
	if res.Confidence == 0 {
		u.d.Log.Warn().Str("media", in.Media).Str("reason", res.Reasoning).
			Msg("degraded plan, skipping segment extraction")
		return Result{Plan: plan}, nil
	}

	for i := range plan.Segments {
		seg := &plan.Segments[i]
		if seg.DurationSec <= 0 {
			continue
		}
		rel := filepath.Join("segments", seg.ID+".mp4")
		out := filepath.Join(in.OutDir, rel)
		if err := u.d.Extractor.ExtractSegment(ctx, in.Media, seg.StartSec, seg.EndSec, out); err != nil {
			return Result{}, fmt.Errorf("extract segment %s: %w", seg.ID, err)
		}
		seg.File = filepath.ToSlash(rel)
		u.d.Log.Debug().Str("segment", seg.ID).
			Float64("start", seg.StartSec).Float64("end", seg.EndSec).
			Msg("segment extracted")
	}
	return Result{Plan: plan}, nil
}
