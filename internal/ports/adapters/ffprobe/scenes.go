package ffprobe

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/mkrylatov/cutplan/internal/ports"
	"github.com/mkrylatov/cutplan/internal/types"
)

var (
	ptsTimeRe    = regexp.MustCompile(`pts_time:([0-9.]+)`)
	sceneScoreRe = regexp.MustCompile(`lavfi\.scene_score=([0-9.]+)`)
)

// SceneBoundaries detects scene changes with ffmpeg's scene filter.
// Sensitivity in [0,1] maps inversely onto the filter threshold: 0 reports
// only the hardest cuts, 1 is maximally permissive.
func (a *Adapter) SceneBoundaries(ctx context.Context, media string, sensitivity float64) ([]types.SceneBoundary, error) {
	if err := statMedia("scenes", media); err != nil {
		return nil, err
	}
	ctx, cancel := a.opCtx(ctx)
	defer cancel()

	threshold := sceneThreshold(sensitivity)
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-i", media,
		"-vf", fmt.Sprintf("select='gt(scene,%g)',metadata=print:file=-", threshold),
		"-an",
		"-f", "null",
		"-",
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, ports.NewProbeError("scenes", media, err)
	}
	return ParseSceneOutput(string(out)), nil
}

// sceneThreshold maps sensitivity [0,1] to the scene filter threshold, where
// higher thresholds detect fewer changes.
func sceneThreshold(sensitivity float64) float64 {
	s := sensitivity
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return 0.9 - 0.8*s
}

// ParseSceneOutput extracts boundaries from the metadata filter's stdout.
// The filter prints a frame header with pts_time followed by key=value lines
// including lavfi.scene_score.
func ParseSceneOutput(out string) []types.SceneBoundary {
	var boundaries []types.SceneBoundary
	var cur *types.SceneBoundary

	flush := func() {
		if cur != nil {
			boundaries = append(boundaries, *cur)
			cur = nil
		}
	}

	for _, line := range strings.Split(out, "\n") {
		if m := ptsTimeRe.FindStringSubmatch(line); m != nil {
			flush()
			ts, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			cur = &types.SceneBoundary{Timestamp: ts, Change: types.ChangeCut}
			continue
		}
		if cur == nil {
			continue
		}
		if m := sceneScoreRe.FindStringSubmatch(line); m != nil {
			if score, err := strconv.ParseFloat(m[1], 64); err == nil {
				if score > 1 {
					score = 1
				}
				cur.Confidence = score
			}
		}
	}
	flush()

	for i := 1; i < len(boundaries); i++ {
		boundaries[i].PrevSceneDuration = boundaries[i].Timestamp - boundaries[i-1].Timestamp
	}
	return boundaries
}
