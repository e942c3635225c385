package segmentation

import (
	"context"
	"fmt"
	"math"

	"github.com/mkrylatov/cutplan/internal/types"
)

// keyframeCutPoints matches each ideal timestamp to its nearest keyframe.
// Inapplicable when the stream has fewer keyframes than target segments.
func (s *Selector) keyframeCutPoints(ctx context.Context, req Request, duration float64) (types.CutPointResult, error) {
	kfs, err := s.p.Keyframes(ctx, req.Media)
	if err != nil {
		return types.CutPointResult{}, err
	}
	if len(kfs) < req.TargetSegments {
		return types.CutPointResult{}, fmt.Errorf("%w: %d keyframes for %d segments",
			errInapplicable, len(kfs), req.TargetSegments)
	}

	interval := duration / float64(req.TargetSegments)
	if req.TargetDurationSec > 0 {
		interval = req.TargetDurationSec
	}

	points := make([]float64, 0, req.TargetSegments)
	var qualitySum, offsetSum float64
	for i := 0; i < req.TargetSegments; i++ {
		ideal := float64(i) * interval
		nearest, dist := nearestKeyframe(kfs, ideal)
		points = append(points, nearest)
		offsetSum += dist
		qualitySum += math.Max(0, 1-dist/s.cfg.KeyframeToleranceSec)
	}

	quality := qualitySum / float64(req.TargetSegments)
	confidence := math.Min(quality+s.cfg.KeyframeConfidenceBoost, 1)

	res := types.CutPointResult{
		CutPoints:    points,
		Method:       types.MethodKeyframe,
		Confidence:   confidence,
		QualityScore: quality,
		Reasoning: fmt.Sprintf("matched %d ideal timestamps to keyframes (%d available, mean offset %.2fs)",
			req.TargetSegments, len(kfs), offsetSum/float64(req.TargetSegments)),
	}
	return res, nil
}

// nearestKeyframe returns the keyframe timestamp closest to ideal and its
// absolute distance. Ties go to the earlier timestamp, which the strict
// less-than comparison gives us for free on an ascending sequence.
func nearestKeyframe(kfs []types.Keyframe, ideal float64) (float64, float64) {
	best := kfs[0].Timestamp
	bestDist := math.Abs(kfs[0].Timestamp - ideal)
	for _, kf := range kfs[1:] {
		d := math.Abs(kf.Timestamp - ideal)
		if d < bestDist {
			best, bestDist = kf.Timestamp, d
		}
	}
	return best, bestDist
}
