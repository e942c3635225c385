package segmentation

import (
	"context"
	"fmt"

	"github.com/mkrylatov/cutplan/internal/types"
)

// heuristicCutPoints is the always-applicable last resort. It has no
// "insufficient evidence" failure mode: a properties probe failure just
// degrades the complexity metrics to defaults.
func (s *Selector) heuristicCutPoints(ctx context.Context, req Request, duration float64) (types.CutPointResult, error) {
	props, err := s.p.Properties(ctx, req.Media)
	if err != nil && ctx.Err() != nil {
		return types.CutPointResult{}, ctx.Err()
	}
	metrics := complexityFromProperties(props, err)

	var points []float64
	var confidence float64
	var reason string
	switch {
	case metrics.Overall < 0.5:
		points = s.uniformCutPoints(duration, req.TargetSegments, req.TargetDurationSec)
		confidence = s.cfg.UniformConfidence
		reason = fmt.Sprintf("low complexity (%.2f), uniform split", metrics.Overall)

	case duration > s.cfg.LongDurationSec:
		points = s.frontLoadedCutPoints(duration, req.TargetSegments)
		confidence = s.cfg.FrontLoadedConfidence
		reason = fmt.Sprintf("long complex input (%.2f, %.0fs), front-loaded split", metrics.Overall, duration)

	default:
		points = s.uniformCutPoints(duration, req.TargetSegments, req.TargetDurationSec)
		reason = fmt.Sprintf("complex input (%.2f), uniform split", metrics.Overall)
		if props.BitRate > s.cfg.HighBitRate {
			// High-bitrate content tends to front-load interesting material;
			// nudge every interior cut a little earlier.
			for i, p := range points {
				if p > 0 {
					points[i] = clamp(p*s.cfg.EarlyBiasScale, 0, duration*s.cfg.MaxCutFraction)
				}
			}
			reason = fmt.Sprintf("complex input (%.2f) at %.1f Mbps, cuts biased early",
				metrics.Overall, float64(props.BitRate)/1e6)
		}
		confidence = s.cfg.BitRateBiasConfidence
	}

	res := types.CutPointResult{
		CutPoints:  points,
		Method:     types.MethodHeuristic,
		Confidence: confidence,
		Reasoning:  reason,
		// Overall complexity doubles as a rough quality proxy here; it can
		// exceed 1 for 4K high-bitrate input, so clamp to the contract range.
		QualityScore: clamp(metrics.Overall, 0, 1),
	}
	return res, nil
}

// uniformCutPoints spaces cuts evenly, or at the hinted interval when set.
func (s *Selector) uniformCutPoints(duration float64, target int, hintSec float64) []float64 {
	interval := duration / float64(target)
	if hintSec > 0 {
		interval = hintSec
	}
	points := make([]float64, 0, target)
	for i := 0; i < target; i++ {
		points = append(points, clampCut(float64(i)*interval, duration, s.cfg.MaxCutFraction))
	}
	return points
}

// frontLoadedCutPoints gives each of the first half of segments a fixed
// fraction of the remaining duration, then splits the rest evenly. Segments
// shrink progressively at the front, where long recordings concentrate their
// interesting material.
func (s *Selector) frontLoadedCutPoints(duration float64, target int) []float64 {
	points := make([]float64, 0, target)
	cur := 0.0
	remaining := duration
	for i := 0; i < target; i++ {
		points = append(points, clampCut(cur, duration, s.cfg.MaxCutFraction))
		var step float64
		if i < target/2 {
			step = s.cfg.FrontLoadRatio * remaining
		} else {
			step = remaining / float64(target-i)
		}
		cur += step
		remaining -= step
	}
	return points
}

// clampCut keeps a generated point inside [0, duration), pulling overshoots
// back to the configured fraction of the total.
func clampCut(p, duration, maxFrac float64) float64 {
	if p < 0 {
		return 0
	}
	if p >= duration {
		return duration * maxFrac
	}
	return p
}
