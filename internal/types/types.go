package types

// FrameType is the encoded picture type of a probed frame.
type FrameType string

const (
	FrameI       FrameType = "I"
	FrameP       FrameType = "P"
	FrameB       FrameType = "B"
	FrameUnknown FrameType = "unknown"
)

// ChangeType classifies how a scene boundary transitions.
type ChangeType string

const (
	ChangeCut      ChangeType = "cut"
	ChangeFade     ChangeType = "fade"
	ChangeDissolve ChangeType = "dissolve"
	ChangeWipe     ChangeType = "wipe"
)

// Method identifies which selection strategy produced a result.
type Method string

const (
	MethodKeyframe  Method = "keyframe"
	MethodScene     Method = "scene"
	MethodHeuristic Method = "heuristic"
)

// Recommendation is the processing advice derived from complexity analysis.
type Recommendation string

const (
	RecFast           Recommendation = "fast_processing"
	RecStandard       Recommendation = "standard_processing"
	RecCareful        Recommendation = "careful_processing"
	RecSlowCareful    Recommendation = "slow_careful_processing"
	RecFileNotFound   Recommendation = "file_not_found"
	RecAnalysisFailed Recommendation = "analysis_failed_use_defaults"
)

// Keyframe is a single probed keyframe position.
type Keyframe struct {
	Timestamp  float64 // seconds from stream start
	Type       FrameType
	SceneHint  bool // adapter's guess that this frame starts new content
	Confidence float64
	SizeBytes  int64
}

// SceneBoundary is a detected scene change.
// PrevSceneDuration is 0 when unknown (first boundary).
type SceneBoundary struct {
	Timestamp         float64
	Confidence        float64
	Change            ChangeType
	PrevSceneDuration float64
}

// VideoProperties holds the stream-level facts the heuristic needs.
type VideoProperties struct {
	Width       int
	Height      int
	DurationSec float64
	BitRate     int64 // bits/sec, 0 when the container does not report one
	Codec       string
}

// ComplexityMetrics is the derived difficulty profile of an input.
type ComplexityMetrics struct {
	ResolutionFactor float64
	DurationFactor   float64
	MotionComplexity float64
	ColorComplexity  float64
	Overall          float64
	Recommendation   Recommendation
}

// CutPointResult is the output of cut-point selection.
//
// Confidence and QualityScore are deliberately independent: confidence says how
// much the chosen method can be trusted for this input, quality says how well
// the chosen points align with the detected evidence. Callers that ignore
// Confidence will silently get uniform-split-quality output in the worst case.
type CutPointResult struct {
	CutPoints        []float64 // strictly ascending, starts at 0 unless probing failed
	Method           Method
	Confidence       float64
	Reasoning        string
	SegmentDurations []float64 // consecutive differences of CutPoints; [0] when <2 points
	QualityScore     float64
}

// Plan is the serialized output of a run.
type Plan struct {
	Input        string        `json:"input"`
	DurationSec  float64       `json:"duration_sec"`
	Method       Method        `json:"method"`
	Confidence   float64       `json:"confidence"`
	QualityScore float64       `json:"quality_score"`
	Reasoning    string        `json:"reasoning"`
	CutPoints    []float64     `json:"cut_points"`
	Segments     []PlanSegment `json:"segments"`
}

// PlanSegment is one planned output segment.
type PlanSegment struct {
	ID          string  `json:"id"`
	StartSec    float64 `json:"start_sec"`
	EndSec      float64 `json:"end_sec"`
	DurationSec float64 `json:"duration_sec"`
	File        string  `json:"file,omitempty"` // relative path, set when extracted
}
