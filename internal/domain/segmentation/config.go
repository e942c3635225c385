package segmentation

// Config collects the selection tunables. Tests override individual fields
// instead of patching algorithm code.
type Config struct {
	// AcceptConfidence is the threshold a method must exceed to be accepted
	// before falling through to the next one.
	AcceptConfidence float64

	// KeyframeToleranceSec is the alignment window for keyframe scoring:
	// an offset of 0 scores 1, offsets at or beyond the tolerance score 0.
	KeyframeToleranceSec float64

	// KeyframeConfidenceBoost is added to the keyframe quality score, since a
	// cut on a keyframe guarantees a clean boundary regardless of alignment.
	KeyframeConfidenceBoost float64

	// SceneSensitivity is passed through to the scene boundary provider.
	SceneSensitivity float64

	// FrontLoadRatio is the fraction of the remaining duration given to each
	// of the first half of segments in a front-loaded split.
	FrontLoadRatio float64

	// LongDurationSec separates the front-loaded branch from the bitrate
	// bias branch for complex inputs.
	LongDurationSec float64

	// HighBitRate (bits/sec) triggers the early-cut bias for short complex
	// inputs: high-bitrate content tends to front-load interesting material.
	HighBitRate int64

	// EarlyBiasScale multiplies non-zero cut points under the bitrate bias.
	EarlyBiasScale float64

	// MaxCutFraction caps any generated cut point at this fraction of the
	// total duration.
	MaxCutFraction float64

	// Heuristic branch confidences.
	UniformConfidence     float64
	FrontLoadedConfidence float64
	BitRateBiasConfidence float64
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		AcceptConfidence:        0.5,
		KeyframeToleranceSec:    2.0,
		KeyframeConfidenceBoost: 0.2,
		SceneSensitivity:        0.5,
		FrontLoadRatio:          0.15,
		LongDurationSec:         120,
		HighBitRate:             10_000_000,
		EarlyBiasScale:          0.9,
		MaxCutFraction:          0.95,
		UniformConfidence:       0.6,
		FrontLoadedConfidence:   0.7,
		BitRateBiasConfidence:   0.65,
	}
}
