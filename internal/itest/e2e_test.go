//go:build integration

package itest

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkrylatov/cutplan/internal/pipeline"
	"github.com/mkrylatov/cutplan/internal/types"
)

func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not found in PATH", bin)
		}
	}
}

func TestE2E_PlanAndSplit(t *testing.T) {
	skipIfNoFFmpeg(t)

	tmp := t.TempDir()
	in := filepath.Join(tmp, "input.mp4")

	// Synthetic fixture: 20s of testsrc with a keyframe every 2s.
	ff := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", "testsrc=size=640x360:rate=25:duration=20",
		"-c:v", "libx264",
		"-g", "50",
		"-pix_fmt", "yuv420p",
		in,
	)
	if b, err := ff.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}

	outDir := filepath.Join(tmp, "out")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg := pipeline.Config{
		Input:        in,
		OutDir:       outDir,
		Segments:     4,
		Split:        true,
		FFmpegPath:   "ffmpeg",
		FFprobePath:  "ffprobe",
		ProbeTimeout: 2 * time.Minute,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}
	if err := pipeline.Run(ctx, cfg); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	runs, err := os.ReadDir(outDir)
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected one run dir, got %v (%v)", runs, err)
	}
	runDir := filepath.Join(outDir, runs[0].Name())

	b, err := os.ReadFile(filepath.Join(runDir, "plan.json"))
	if err != nil {
		t.Fatalf("missing plan: %v", err)
	}
	var plan types.Plan
	if err := json.Unmarshal(b, &plan); err != nil {
		t.Fatalf("parse plan: %v", err)
	}

	if plan.Confidence <= 0 {
		t.Fatalf("expected positive confidence, got %v (%s)", plan.Confidence, plan.Reasoning)
	}
	if len(plan.CutPoints) == 0 || plan.CutPoints[0] != 0 {
		t.Fatalf("unexpected cut points: %v", plan.CutPoints)
	}
	if len(plan.Segments) != len(plan.CutPoints) {
		t.Fatalf("%d segments for %d cut points", len(plan.Segments), len(plan.CutPoints))
	}

	for _, seg := range plan.Segments {
		if seg.File == "" {
			continue
		}
		path := filepath.Join(runDir, filepath.FromSlash(seg.File))
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing segment file %s: %v", seg.File, err)
		}
		d, err := probeDurationSeconds(path)
		if err != nil {
			t.Fatalf("probe segment %s: %v", seg.File, err)
		}
		if d <= 0 {
			t.Fatalf("segment %s has zero duration", seg.File)
		}
	}
}
