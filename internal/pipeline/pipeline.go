package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/mkrylatov/cutplan/internal/cache"
	"github.com/mkrylatov/cutplan/internal/domain/segmentation"
	"github.com/mkrylatov/cutplan/internal/logging"
	"github.com/mkrylatov/cutplan/internal/ports"
	"github.com/mkrylatov/cutplan/internal/ports/adapters/ffprobe"
	"github.com/mkrylatov/cutplan/internal/usecase"
)

type Config struct {
	Input             string
	OutDir            string
	Segments          int
	TargetDurationSec float64
	Split             bool

	// SceneSensitivity overrides the default scene detection sensitivity
	// when non-zero.
	SceneSensitivity float64

	FFmpegPath   string
	FFprobePath  string
	ProbeTimeout time.Duration
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.Segments <= 0 {
		return fmt.Errorf("segments must be > 0")
	}
	if c.TargetDurationSec < 0 {
		return fmt.Errorf("target duration must be >= 0")
	}
	if c.SceneSensitivity < 0 || c.SceneSensitivity > 1 {
		return fmt.Errorf("scene sensitivity must be in [0,1]")
	}
	return nil
}

func Run(ctx context.Context, cfg Config) error {
	log := logging.WithComponent("pipeline")

	probe := ffprobe.New(cfg.FFmpegPath, cfg.FFprobePath, cfg.ProbeTimeout)

	selCfg := segmentation.DefaultConfig()
	if cfg.SceneSensitivity > 0 {
		selCfg.SceneSensitivity = cfg.SceneSensitivity
	}
	selector := segmentation.New(selCfg, segmentation.Providers{
		DurationProvider:        probe,
		KeyframeProvider:        probe,
		SceneBoundaryProvider:   probe,
		VideoPropertiesProvider: probe,
	}, cache.NewMemory(), logging.WithComponent("selector"))

	uc := usecase.New(usecase.Deps{
		Planner:          selector,
		DurationProvider: probe,
		Extractor:        probe,
		Log:              logging.WithComponent("usecase"),
	})

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runOutDir := buildRunOutDir(outDir, cfg.Input, time.Now().UTC())
	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		return err
	}
	if cfg.Split {
		if err := os.MkdirAll(filepath.Join(runOutDir, "segments"), 0o755); err != nil {
			return err
		}
	}
	log.Info().Str("dir", runOutDir).Msg("output run dir")

	res, err := uc.Run(ctx, usecase.Input{
		Media:             cfg.Input,
		Segments:          cfg.Segments,
		TargetDurationSec: cfg.TargetDurationSec,
		Split:             cfg.Split,
		OutDir:            runOutDir,
	})
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(res.Plan, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	planPath := filepath.Join(runOutDir, "plan.json")
	if err := os.WriteFile(planPath, b, 0o644); err != nil {
		return err
	}
	log.Info().Str("path", planPath).Str("method", string(res.Plan.Method)).
		Float64("confidence", res.Plan.Confidence).Int("segments", len(res.Plan.Segments)).
		Msg("plan written")
	return nil
}

func buildRunOutDir(outRoot, input string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", input, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure the adapter implements every port it is wired into
var _ ports.DurationProvider = (*ffprobe.Adapter)(nil)
var _ ports.KeyframeProvider = (*ffprobe.Adapter)(nil)
var _ ports.SceneBoundaryProvider = (*ffprobe.Adapter)(nil)
var _ ports.VideoPropertiesProvider = (*ffprobe.Adapter)(nil)
var _ ports.SegmentExtractor = (*ffprobe.Adapter)(nil)
