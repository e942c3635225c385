package segmentation

import (
	"context"
	"math"

	"github.com/mkrylatov/cutplan/internal/ports"
	"github.com/mkrylatov/cutplan/internal/types"
)

// Reference values for complexity normalization.
const (
	referencePixels  = 1920.0 * 1080.0
	referenceBitRate = 5_000_000.0
)

// Complexity probes media properties and derives a complexity profile.
// Probe failures degrade to default metrics instead of erroring; only
// cancellation is returned.
func (s *Selector) Complexity(ctx context.Context, media string) (types.ComplexityMetrics, error) {
	props, err := s.p.Properties(ctx, media)
	if err != nil && ctx.Err() != nil {
		return types.ComplexityMetrics{}, ctx.Err()
	}
	return complexityFromProperties(props, err), nil
}

// complexityFromProperties is the pure derivation. probeErr is the error, if
// any, from the properties probe that produced props.
func complexityFromProperties(props types.VideoProperties, probeErr error) types.ComplexityMetrics {
	if probeErr != nil {
		if ports.IsNotFound(probeErr) {
			return types.ComplexityMetrics{Recommendation: types.RecFileNotFound}
		}
		return types.ComplexityMetrics{
			ResolutionFactor: 0.5,
			DurationFactor:   0.5,
			MotionComplexity: 0.5,
			ColorComplexity:  0.5,
			Overall:          0.5,
			Recommendation:   types.RecAnalysisFailed,
		}
	}

	m := types.ComplexityMetrics{
		ResolutionFactor: float64(props.Width*props.Height) / referencePixels,
		DurationFactor:   math.Min(props.DurationSec/60, 2),
		MotionComplexity: 0.5, // default-moderate when bitrate is unknown
		ColorComplexity:  0.5,
	}
	if props.BitRate > 0 {
		m.MotionComplexity = math.Min(float64(props.BitRate)/referenceBitRate, 2)
	}
	switch props.Codec {
	case "h264", "h265", "hevc":
		m.ColorComplexity = 0.8
	}
	m.Overall = 0.3*m.ResolutionFactor + 0.2*m.DurationFactor +
		0.3*m.MotionComplexity + 0.2*m.ColorComplexity

	switch {
	case m.Overall < 0.5:
		m.Recommendation = types.RecFast
	case m.Overall < 1.0:
		m.Recommendation = types.RecStandard
	case m.Overall < 1.5:
		m.Recommendation = types.RecCareful
	default:
		m.Recommendation = types.RecSlowCareful
	}
	return m
}
