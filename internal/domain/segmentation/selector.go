// Package segmentation chooses cut points for splitting a media file into a
// target number of segments. It tries keyframe alignment first, then scene
// changes, then a complexity heuristic, accepting the first method whose
// confidence clears a threshold. The heuristic always produces an answer, so
// a valid request never fails outright; callers must check the result's
// Confidence before trusting its CutPoints.
package segmentation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mkrylatov/cutplan/internal/cache"
	"github.com/mkrylatov/cutplan/internal/ports"
	"github.com/mkrylatov/cutplan/internal/types"
)

// ErrInvalidArgument marks precondition violations (empty media ref,
// non-positive segment count). These surface as hard errors, never as
// degraded results.
var ErrInvalidArgument = errors.New("invalid argument")

// errInapplicable marks a method that cannot run on this input (e.g. fewer
// keyframes than segments). It stays inside the fallback chain.
var errInapplicable = errors.New("method inapplicable")

// Providers are the probing collaborators the selector draws evidence from.
// The embedded interfaces promote their single methods onto the struct.
type Providers struct {
	ports.DurationProvider
	ports.KeyframeProvider
	ports.SceneBoundaryProvider
	ports.VideoPropertiesProvider
}

// Request describes one selection call.
type Request struct {
	Media          string
	TargetSegments int
	// TargetDurationSec optionally overrides the even segment-length
	// assumption; 0 means duration/TargetSegments.
	TargetDurationSec float64
}

// Selector runs the fallback chain. Safe for concurrent use as long as the
// injected cache is.
type Selector struct {
	cfg   Config
	p     Providers
	cache cache.Cache
	log   zerolog.Logger
}

// New builds a Selector. A nil cache disables caching.
func New(cfg Config, p Providers, c cache.Cache, log zerolog.Logger) *Selector {
	if c == nil {
		c = cache.Nop{}
	}
	return &Selector{cfg: cfg, p: p, cache: c, log: log}
}

// SelectCutPoints picks cut points for req.
//
// Provider failures and inapplicable methods fall through the chain; only
// invalid arguments and context cancellation return an error. When even the
// duration cannot be probed the result is degraded (CutPoints=[0],
// Confidence=0) rather than an error.
func (s *Selector) SelectCutPoints(ctx context.Context, req Request) (types.CutPointResult, error) {
	if req.Media == "" {
		return types.CutPointResult{}, fmt.Errorf("%w: empty media ref", ErrInvalidArgument)
	}
	if req.TargetSegments <= 0 {
		return types.CutPointResult{}, fmt.Errorf("%w: target segments must be > 0, got %d", ErrInvalidArgument, req.TargetSegments)
	}

	// The duration hint is not part of the cache key, so hinted requests
	// bypass the cache entirely.
	key := cache.Key{Media: req.Media, Segments: req.TargetSegments}
	if req.TargetDurationSec == 0 {
		if res, ok := s.cache.Get(key); ok {
			s.log.Debug().Str("media", req.Media).Msg("cut points served from cache")
			return res, nil
		}
	}

	duration, err := s.p.Duration(ctx, req.Media)
	if err != nil {
		if ctx.Err() != nil {
			return types.CutPointResult{}, ctx.Err()
		}
		reason := fmt.Sprintf("duration probe failed: %v", err)
		if ports.IsNotFound(err) {
			reason = fmt.Sprintf("media file not found: %s", req.Media)
		}
		return degraded(reason), nil
	}
	if duration <= 0 {
		return degraded(fmt.Sprintf("non-positive duration %.3fs for %s", duration, req.Media)), nil
	}

	methods := []struct {
		name types.Method
		run  func(context.Context) (types.CutPointResult, error)
	}{
		{types.MethodKeyframe, func(ctx context.Context) (types.CutPointResult, error) {
			return s.keyframeCutPoints(ctx, req, duration)
		}},
		{types.MethodScene, func(ctx context.Context) (types.CutPointResult, error) {
			return s.sceneCutPoints(ctx, req, duration)
		}},
		{types.MethodHeuristic, func(ctx context.Context) (types.CutPointResult, error) {
			return s.heuristicCutPoints(ctx, req, duration)
		}},
	}

	// Single pass: first method above the threshold wins, otherwise the last
	// computed result (the heuristic, which cannot fail) is returned as-is.
	var res types.CutPointResult
	var have bool
	for _, m := range methods {
		r, err := m.run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return types.CutPointResult{}, ctx.Err()
			}
			s.log.Debug().Str("media", req.Media).Str("method", string(m.name)).
				Err(err).Msg("method skipped")
			continue
		}
		res, have = r, true
		if r.Confidence > s.cfg.AcceptConfidence {
			break
		}
		s.log.Debug().Str("media", req.Media).Str("method", string(m.name)).
			Float64("confidence", r.Confidence).Msg("confidence below threshold")
	}
	if !have {
		// Unreachable while the heuristic stays total; kept as a guard.
		return degraded("no selection method produced a result"), nil
	}

	finalize(&res)
	if req.TargetDurationSec == 0 {
		s.cache.Put(key, res)
	}
	s.log.Info().Str("media", req.Media).Str("method", string(res.Method)).
		Float64("confidence", res.Confidence).Int("cuts", len(res.CutPoints)).
		Msg("cut points selected")
	return res, nil
}

// degraded is the low-trust answer returned when probing fails entirely.
func degraded(reason string) types.CutPointResult {
	return types.CutPointResult{
		CutPoints:        []float64{0},
		Method:           types.MethodHeuristic,
		Confidence:       0,
		Reasoning:        reason,
		SegmentDurations: []float64{0},
		QualityScore:     0,
	}
}

// finalize enforces the output invariants: sorted deduplicated cut points and
// segment durations derived as consecutive differences.
func finalize(res *types.CutPointResult) {
	sort.Float64s(res.CutPoints)
	res.CutPoints = dedupe(res.CutPoints)
	if len(res.CutPoints) <= 1 {
		res.SegmentDurations = []float64{0}
		return
	}
	durs := make([]float64, len(res.CutPoints)-1)
	for i := 1; i < len(res.CutPoints); i++ {
		durs[i-1] = res.CutPoints[i] - res.CutPoints[i-1]
	}
	res.SegmentDurations = durs
}

// dedupe removes duplicate values from a sorted slice.
func dedupe(sorted []float64) []float64 {
	if len(sorted) <= 1 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
