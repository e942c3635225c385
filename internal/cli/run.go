package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkrylatov/cutplan/internal/pipeline"
)

func run(cmd *cobra.Command, input string) error {
	outDir, _ := cmd.Flags().GetString("out")
	segments, _ := cmd.Flags().GetInt("segments")
	split, _ := cmd.Flags().GetBool("split")
	targetDur, _ := cmd.Flags().GetFloat64("target-duration")
	sensitivity, _ := cmd.Flags().GetFloat64("scene-sensitivity")

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		Input:             absIn,
		OutDir:            outDir,
		Segments:          segments,
		TargetDurationSec: targetDur,
		Split:             split,
		SceneSensitivity:  sensitivity,

		FFmpegPath:   getenvDefault("CUTPLAN_FFMPEG", "ffmpeg"),
		FFprobePath:  getenvDefault("CUTPLAN_FFPROBE", "ffprobe"),
		ProbeTimeout: probeTimeout(),
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(ctx, cfg)
}

func probeTimeout() time.Duration {
	v := os.Getenv("CUTPLAN_PROBE_TIMEOUT")
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
