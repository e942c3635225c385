package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/mkrylatov/cutplan/internal/ports"
	"github.com/mkrylatov/cutplan/internal/types"
)

// sceneHintSizeRatio marks a keyframe as a likely scene start when its packet
// is this much larger than the mean keyframe packet. An I-frame that dwarfs
// its neighbors usually encodes fully new content.
const sceneHintSizeRatio = 1.5

// Keyframes returns the ordered keyframe sequence of the primary video
// stream. Audio-only input yields an empty slice, not an error.
func (a *Adapter) Keyframes(ctx context.Context, media string) ([]types.Keyframe, error) {
	if err := statMedia("keyframes", media); err != nil {
		return nil, err
	}
	ctx, cancel := a.opCtx(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "quiet",
		"-select_streams", "v:0",
		"-skip_frame", "nokey",
		"-show_frames",
		"-show_entries", "frame=pts_time,pict_type,pkt_size",
		"-print_format", "json",
		media,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, ports.NewProbeError("keyframes", media, err)
	}
	kfs, err := ParseKeyframesJSON(out)
	if err != nil {
		return nil, ports.NewProbeError("keyframes", media, err)
	}
	return kfs, nil
}

type frameOutput struct {
	Frames []probeFrame `json:"frames"`
}

type probeFrame struct {
	PtsTime  string `json:"pts_time"`
	PictType string `json:"pict_type"`
	PktSize  string `json:"pkt_size"`
}

// ParseKeyframesJSON converts raw ffprobe -show_frames output into the
// keyframe sequence, deriving scene hints from packet size spikes.
func ParseKeyframesJSON(data []byte) ([]types.Keyframe, error) {
	var raw frameOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe frames JSON: %w", err)
	}

	kfs := make([]types.Keyframe, 0, len(raw.Frames))
	var sizeSum int64
	for _, f := range raw.Frames {
		kf := types.Keyframe{
			Timestamp: parseFloat(f.PtsTime),
			Type:      frameType(f.PictType),
			SizeBytes: parseInt64(f.PktSize),
		}
		kf.Confidence = frameConfidence(kf.Type)
		sizeSum += kf.SizeBytes
		kfs = append(kfs, kf)
	}

	if len(kfs) > 0 && sizeSum > 0 {
		threshold := float64(sizeSum) / float64(len(kfs)) * sceneHintSizeRatio
		for i := range kfs {
			kfs[i].SceneHint = float64(kfs[i].SizeBytes) > threshold
		}
	}
	return kfs, nil
}

func frameType(pictType string) types.FrameType {
	switch pictType {
	case "I":
		return types.FrameI
	case "P":
		return types.FrameP
	case "B":
		return types.FrameB
	default:
		return types.FrameUnknown
	}
}

// frameConfidence rates how cleanly a frame cuts: I-frames decode standalone,
// anything else needs references.
func frameConfidence(t types.FrameType) float64 {
	switch t {
	case types.FrameI:
		return 1.0
	case types.FrameP:
		return 0.5
	case types.FrameB:
		return 0.3
	default:
		return 0.5
	}
}
