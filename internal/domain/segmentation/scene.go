package segmentation

import (
	"context"
	"fmt"
	"sort"

	"github.com/mkrylatov/cutplan/internal/types"
)

// sceneCutPoints cuts on the highest-confidence detected scene changes.
// Needs targetSegments-1 boundaries; the timeline start supplies the first
// cut point.
func (s *Selector) sceneCutPoints(ctx context.Context, req Request, duration float64) (types.CutPointResult, error) {
	boundaries, err := s.p.SceneBoundaries(ctx, req.Media, s.cfg.SceneSensitivity)
	if err != nil {
		return types.CutPointResult{}, err
	}
	needed := req.TargetSegments - 1
	if len(boundaries) < needed {
		return types.CutPointResult{}, fmt.Errorf("%w: %d scene boundaries for %d segments",
			errInapplicable, len(boundaries), req.TargetSegments)
	}

	// Rank by confidence, ties broken by earlier timestamp.
	ranked := make([]types.SceneBoundary, len(boundaries))
	copy(ranked, boundaries)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		return ranked[i].Timestamp < ranked[j].Timestamp
	})
	selected := ranked[:needed]

	points := make([]float64, 0, req.TargetSegments)
	points = append(points, 0)
	var confSum float64
	for _, b := range selected {
		points = append(points, b.Timestamp)
		confSum += b.Confidence
	}

	// targetSegments=1 selects nothing; an empty average is zero confidence
	// and the chain falls through to the heuristic.
	var confidence float64
	if needed > 0 {
		confidence = confSum / float64(needed)
	}

	res := types.CutPointResult{
		CutPoints:    points,
		Method:       types.MethodScene,
		Confidence:   confidence,
		QualityScore: confidence,
		Reasoning: fmt.Sprintf("cut on %d highest-confidence scene changes of %d detected (mean confidence %.2f)",
			needed, len(boundaries), confidence),
	}
	return res, nil
}
