// Package ffprobe implements the probing ports by shelling out to the
// ffprobe and ffmpeg binaries. Parse functions are exported so the JSON and
// filter-output handling is testable without the tools installed.
package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/mkrylatov/cutplan/internal/ports"
	"github.com/mkrylatov/cutplan/internal/types"
)

// DefaultTimeout bounds a single probe call. Scene detection decodes the
// whole file, so this is generous.
const DefaultTimeout = 30 * time.Second

// Adapter shells out to ffprobe/ffmpeg. Zero-value paths fall back to the
// binaries on PATH.
type Adapter struct {
	ffmpeg  string
	ffprobe string
	timeout time.Duration
}

// New builds an Adapter. Empty paths default to "ffmpeg"/"ffprobe"; a zero
// timeout defaults to DefaultTimeout.
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath, timeout: timeout}
}

func (a *Adapter) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.timeout)
}

// statMedia surfaces missing files as ProbeErrors wrapping fs.ErrNotExist so
// callers can distinguish them from decode failures.
func statMedia(op, media string) error {
	if _, err := os.Stat(media); err != nil {
		return ports.NewProbeError(op, media, err)
	}
	return nil
}

// Duration returns the container duration in seconds.
func (a *Adapter) Duration(ctx context.Context, media string) (float64, error) {
	if err := statMedia("duration", media); err != nil {
		return 0, err
	}
	ctx, cancel := a.opCtx(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		media,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, ports.NewProbeError("duration", media, fmt.Errorf("%w\n%s", err, string(b)))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ports.NewProbeError("duration", media, fmt.Errorf("parse duration %q: %w", s, err))
	}
	return sec, nil
}

// Properties returns stream-level facts from a single ffprobe JSON call.
func (a *Adapter) Properties(ctx context.Context, media string) (types.VideoProperties, error) {
	if err := statMedia("properties", media); err != nil {
		return types.VideoProperties{}, err
	}
	ctx, cancel := a.opCtx(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		media,
	)
	out, err := cmd.Output()
	if err != nil {
		return types.VideoProperties{}, ports.NewProbeError("properties", media, err)
	}
	props, err := ParsePropertiesJSON(out)
	if err != nil {
		return types.VideoProperties{}, ports.NewProbeError("properties", media, err)
	}
	return props, nil
}

// --- ffprobe JSON wire types (numbers arrive as strings) ---

type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
}

type probeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	BitRate   string `json:"bit_rate"`
}

// ParsePropertiesJSON converts raw ffprobe -show_format -show_streams output
// into VideoProperties. The first video stream wins; the stream bitrate falls
// back to the container bitrate when absent.
func ParsePropertiesJSON(data []byte) (types.VideoProperties, error) {
	var raw probeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.VideoProperties{}, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	props := types.VideoProperties{
		DurationSec: parseFloat(raw.Format.Duration),
		BitRate:     parseInt64(raw.Format.BitRate),
	}
	for _, s := range raw.Streams {
		if s.CodecType != "video" {
			continue
		}
		props.Width = s.Width
		props.Height = s.Height
		props.Codec = s.CodecName
		if br := parseInt64(s.BitRate); br > 0 {
			props.BitRate = br
		}
		break
	}
	return props, nil
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}
