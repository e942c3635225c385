package ports

import (
	"context"

	"github.com/mkrylatov/cutplan/internal/types"
)

// DurationProvider resolves the total duration of a media source.
type DurationProvider interface {
	Duration(ctx context.Context, media string) (float64, error)
}

// KeyframeProvider returns the ordered keyframe sequence of a media source.
// An empty slice is a valid answer (e.g. audio-only input).
type KeyframeProvider interface {
	Keyframes(ctx context.Context, media string) ([]types.Keyframe, error)
}

// SceneBoundaryProvider detects scene changes. Sensitivity is in [0,1]:
// 0 reports only the hardest cuts, 1 is maximally permissive.
type SceneBoundaryProvider interface {
	SceneBoundaries(ctx context.Context, media string, sensitivity float64) ([]types.SceneBoundary, error)
}

// VideoPropertiesProvider returns stream-level properties of a media source.
type VideoPropertiesProvider interface {
	Properties(ctx context.Context, media string) (types.VideoProperties, error)
}

// SegmentExtractor cuts [startSec, endSec) out of a media source without
// re-encoding.
type SegmentExtractor interface {
	ExtractSegment(ctx context.Context, media string, startSec, endSec float64, out string) error
}
