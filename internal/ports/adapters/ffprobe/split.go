package ffprobe

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// ExtractSegment stream-copies [startSec, endSec) into out. No re-encoding:
// the plan already cuts on keyframes, so a copy cut stays clean.
func (a *Adapter) ExtractSegment(ctx context.Context, media string, startSec, endSec float64, out string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-ss", fmtSeconds(startSec),
		"-to", fmtSeconds(endSec),
		"-i", media,
		"-c", "copy",
		out,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract segment: %w\n%s", err, string(b))
	}
	return nil
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
