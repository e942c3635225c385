package segmentation

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/mkrylatov/cutplan/internal/ports"
	"github.com/mkrylatov/cutplan/internal/types"
)

func TestComplexityFromProperties(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		props       types.VideoProperties
		wantOverall float64
		wantRec     types.Recommendation
	}{
		{
			name: "reference 1080p",
			props: types.VideoProperties{
				Width: 1920, Height: 1080, DurationSec: 60,
				BitRate: 5_000_000, Codec: "h264",
			},
			// 0.3*1 + 0.2*1 + 0.3*1 + 0.2*0.8
			wantOverall: 0.96,
			wantRec:     types.RecStandard,
		},
		{
			name: "small simple clip",
			props: types.VideoProperties{
				Width: 640, Height: 360, DurationSec: 30, Codec: "vp9",
			},
			// 0.3*0.1066.. + 0.2*0.5 + 0.3*0.5 (unknown bitrate) + 0.2*0.5
			wantOverall: 0.3*(640.0*360.0/referencePixels) + 0.2*0.5 + 0.3*0.5 + 0.2*0.5,
			wantRec:     types.RecFast,
		},
		{
			name: "4k long high bitrate",
			props: types.VideoProperties{
				Width: 3840, Height: 2160, DurationSec: 600,
				BitRate: 40_000_000, Codec: "hevc",
			},
			// factors cap at 2: 0.3*4 + 0.2*2 + 0.3*2 + 0.2*0.8
			wantOverall: 0.3*4 + 0.2*2 + 0.3*2 + 0.2*0.8,
			wantRec:     types.RecSlowCareful,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := complexityFromProperties(tc.props, nil)
			if !approx(m.Overall, tc.wantOverall) {
				t.Fatalf("overall = %v, want %v", m.Overall, tc.wantOverall)
			}
			if m.Recommendation != tc.wantRec {
				t.Fatalf("recommendation = %s, want %s", m.Recommendation, tc.wantRec)
			}
		})
	}
}

func TestComplexityFromProperties_ProbeFailure(t *testing.T) {
	t.Parallel()

	m := complexityFromProperties(types.VideoProperties{}, errors.New("ffprobe exploded"))
	if m.Recommendation != types.RecAnalysisFailed {
		t.Fatalf("recommendation = %s, want %s", m.Recommendation, types.RecAnalysisFailed)
	}
	for _, f := range []float64{m.ResolutionFactor, m.DurationFactor, m.MotionComplexity, m.ColorComplexity, m.Overall} {
		if f != 0.5 {
			t.Fatalf("expected all default factors 0.5, got %+v", m)
		}
	}
}

func TestComplexityFromProperties_FileNotFound(t *testing.T) {
	t.Parallel()

	err := ports.NewProbeError("properties", "missing.mp4", fs.ErrNotExist)
	m := complexityFromProperties(types.VideoProperties{}, err)
	if m.Recommendation != types.RecFileNotFound {
		t.Fatalf("recommendation = %s, want %s", m.Recommendation, types.RecFileNotFound)
	}
	if m.Overall != 0 || m.ResolutionFactor != 0 {
		t.Fatalf("expected zero factors, got %+v", m)
	}
}

func TestSelectorComplexity(t *testing.T) {
	t.Parallel()

	props := types.VideoProperties{Width: 1920, Height: 1080, DurationSec: 60, BitRate: 5_000_000, Codec: "h264"}
	s := newSelector(staticProviders(60, nil, nil, props))

	m, err := s.Complexity(context.Background(), "in.mp4")
	if err != nil {
		t.Fatalf("complexity: %v", err)
	}
	if m.Recommendation != types.RecStandard {
		t.Fatalf("recommendation = %s", m.Recommendation)
	}
}
