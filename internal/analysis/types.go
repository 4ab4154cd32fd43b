// Package analysis turns a sampled stream of pose landmarks from a
// two-person match video into a structured performance report for one
// selected subject.
package analysis

import "github.com/armlab/armsight/internal/detector"

// Identity selects which of the two subjects a frame, or a whole analysis
// run, refers to.
type Identity string

const (
	// IdentityLeft is the subject anchored on the left side of the frame.
	IdentityLeft Identity = "LEFT"
	// IdentityRight is the subject anchored on the right side of the frame.
	IdentityRight Identity = "RIGHT"
)

// Technique labels produced by the frame classifier.
const (
	TechniqueTopRoll   = "Top Roll"
	TechniqueHook      = "Hook"
	TechniquePress     = "Press"
	TechniqueKingsMove = "King's Move"
	TechniqueUnknown   = "Unknown"
)

// FrameRecord pairs a raw frame index with the pose detected in that frame.
// Pose is nil when the detector found no subject. Records are produced once
// by the Sampler and never mutated afterwards.
type FrameRecord struct {
	Index int
	Pose  *detector.PoseLandmarks
}

// RiskLevel grades the severity of a risk finding.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// rank orders severities for deduplication and sorting.
func (l RiskLevel) rank() int {
	switch l {
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	}
	return 0
}

// RiskFinding is a flagged biomechanical condition with a severity level.
// Angle carries the measured joint angle when one backs the finding.
type RiskFinding struct {
	Level       RiskLevel `json:"level"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Angle       *float64  `json:"angle,omitempty"`
}

// StrengthGrade is the qualitative bucket for a strength axis.
type StrengthGrade string

const (
	GradeStrong   StrengthGrade = "Strong"
	GradeModerate StrengthGrade = "Moderate"
	GradeWeak     StrengthGrade = "Weak"
)

// gradeFor buckets an averaged 0-10 score.
func gradeFor(score float64) StrengthGrade {
	switch {
	case score >= 7:
		return GradeStrong
	case score >= 5.5:
		return GradeModerate
	default:
		return GradeWeak
	}
}

// StrengthScore is one strength axis: a 0-10 score with its bucket.
type StrengthScore struct {
	Grade StrengthGrade `json:"grade"`
	Score float64       `json:"score"`
}

// StrengthProfile aggregates the three strength axes across a run.
type StrengthProfile struct {
	BackPressure StrengthScore `json:"back_pressure"`
	WristControl StrengthScore `json:"wrist_control"`
	SidePressure StrengthScore `json:"side_pressure"`
	Summary      string        `json:"summary"`
}

// FrameAnalysis is the per-frame result for the selected subject.
// It is owned by the AnalyzeFrame call that produced it and never mutated.
type FrameAnalysis struct {
	FrameIndex   int
	Technique    string
	Confidence   float64
	Risks        []RiskFinding
	BackPressure float64
	WristControl float64
	SidePressure float64
}

// TechniqueTransition marks a probable technique change during the match.
type TechniqueTransition struct {
	Type      string  `json:"type"`
	Timestamp float64 `json:"timestamp"`
}

// TechniqueResult summarizes the technique classification for a run.
type TechniqueResult struct {
	Primary     string                `json:"primary"`
	Confidence  float64               `json:"confidence"`
	Description string                `json:"description"`
	Transitions []TechniqueTransition `json:"transitions"`
}

// Person describes one resolved subject of the match.
type Person struct {
	ID       int     `json:"id"`
	Position string  `json:"position"`
	Label    string  `json:"label"`
	CenterX  float64 `json:"center_x"`
}

// AnalysisReport is the final aggregated output of a pipeline run.
// Error is set, with every collection empty, for expected failure modes;
// callers substitute a default report in that case.
type AnalysisReport struct {
	Technique       TechniqueResult `json:"technique"`
	Risks           []RiskFinding   `json:"risks"`
	Strength        StrengthProfile `json:"strength"`
	Recommendations []string        `json:"recommendations"`
	FramesAnalyzed  int             `json:"frames_analyzed"`
	Duration        float64         `json:"duration"`
	People          []Person        `json:"people_detected"`
	AnalyzedPerson  *Person         `json:"analyzed_person,omitempty"`
	Error           string          `json:"error,omitempty"`
}
