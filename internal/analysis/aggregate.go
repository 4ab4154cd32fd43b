package analysis

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// maxReportRisks and maxRecommendations cap the report collections.
const (
	maxReportRisks     = 5
	maxRecommendations = 5
)

// Metadata carries run-level facts into the aggregated report.
type Metadata struct {
	FramesScanned int
	Duration      float64
	People        []Person
	Analyzed      Person
	Identity      Identity
}

// Aggregate reduces the per-frame analyses of one run into the final
// report: majority technique, deduplicated risks, averaged strength and
// rule-derived recommendations. The frames slice must be non-empty.
func Aggregate(frames []FrameAnalysis, meta Metadata) *AnalysisReport {
	primary, confidence := majorityTechnique(frames)
	risks := dedupeRisks(frames)
	strength := averageStrength(frames)
	analyzed := meta.Analyzed

	report := &AnalysisReport{
		Technique: TechniqueResult{
			Primary:    primary,
			Confidence: confidence,
			Description: fmt.Sprintf("%s technique detected (analyzed %d frames)",
				primary, len(frames)),
			Transitions: transitions(meta),
		},
		Risks:           risks,
		Strength:        strength,
		Recommendations: recommend(primary, risks, strength),
		FramesAnalyzed:  meta.FramesScanned,
		Duration:        meta.Duration,
		People:          meta.People,
		AnalyzedPerson:  &analyzed,
	}

	return report
}

// majorityTechnique picks the most frequent label, ties broken by which
// label was seen first, and averages the confidence of its frames.
func majorityTechnique(frames []FrameAnalysis) (string, float64) {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, fa := range frames {
		if _, ok := firstSeen[fa.Technique]; !ok {
			firstSeen[fa.Technique] = i
		}
		counts[fa.Technique]++
	}

	primary := ""
	for label, n := range counts {
		if primary == "" ||
			n > counts[primary] ||
			(n == counts[primary] && firstSeen[label] < firstSeen[primary]) {
			primary = label
		}
	}

	var confidences []float64
	for _, fa := range frames {
		if fa.Technique == primary {
			confidences = append(confidences, fa.Confidence)
		}
	}

	return primary, stat.Mean(confidences, nil)
}

// dedupeRisks keeps the highest-severity finding per title, capped at
// maxReportRisks, ordered by severity descending (first-seen order within
// a severity).
func dedupeRisks(frames []FrameAnalysis) []RiskFinding {
	byTitle := make(map[string]RiskFinding)
	var order []string

	for _, fa := range frames {
		for _, risk := range fa.Risks {
			existing, ok := byTitle[risk.Title]
			if !ok {
				byTitle[risk.Title] = risk
				order = append(order, risk.Title)
				continue
			}
			if risk.Level.rank() > existing.Level.rank() {
				byTitle[risk.Title] = risk
			}
		}
	}

	risks := make([]RiskFinding, 0, len(order))
	for _, title := range order {
		risks = append(risks, byTitle[title])
	}

	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].Level.rank() > risks[j].Level.rank()
	})

	if len(risks) > maxReportRisks {
		risks = risks[:maxReportRisks]
	}
	return risks
}

// averageStrength means each axis across the run and re-buckets it.
func averageStrength(frames []FrameAnalysis) StrengthProfile {
	back := make([]float64, len(frames))
	wrist := make([]float64, len(frames))
	side := make([]float64, len(frames))
	for i, fa := range frames {
		back[i] = fa.BackPressure
		wrist[i] = fa.WristControl
		side[i] = fa.SidePressure
	}

	backAvg := stat.Mean(back, nil)
	wristAvg := stat.Mean(wrist, nil)
	sideAvg := stat.Mean(side, nil)

	return StrengthProfile{
		BackPressure: StrengthScore{Grade: gradeFor(backAvg), Score: backAvg},
		WristControl: StrengthScore{Grade: gradeFor(wristAvg), Score: wristAvg},
		SidePressure: StrengthScore{Grade: gradeFor(sideAvg), Score: sideAvg},
		Summary:      strengthSummary(backAvg, wristAvg),
	}
}

func strengthSummary(backAvg, wristAvg float64) string {
	switch {
	case wristAvg < 5:
		return "You lost primarily due to wrist weakness, not arm strength. Your back pressure was solid, but wrist collapsed under opponent's pronation attack."
	case backAvg < 6:
		return "Back pressure needs improvement. Focus on maintaining optimal elbow angle (80-120°) for maximum power."
	default:
		return "Good overall strength. Focus on maintaining consistency throughout the match."
	}
}

// transitions reports one probable technique change on longer videos,
// typed by the side's usual follow-up move.
func transitions(meta Metadata) []TechniqueTransition {
	if meta.FramesScanned <= 30 {
		return nil
	}
	return []TechniqueTransition{{
		Type:      prior(meta.Identity),
		Timestamp: float64(meta.FramesScanned) * 0.033,
	}}
}

// recommend builds the ranked training recommendations from a fixed rule
// table keyed on the primary technique, the present risk titles and the
// weak strength axes. Generic fillers are appended only when fewer than
// three rules fired.
func recommend(primary string, risks []RiskFinding, strength StrengthProfile) []string {
	var recs []string

	switch primary {
	case TechniqueTopRoll:
		recs = append(recs,
			"Wrist curls (3x15) - Focus on pronation strength to prevent collapse",
			"Static wrist holds (4x30s) - Build endurance in top position")
	case TechniqueHook:
		recs = append(recs,
			"Hook transition practice - Improve power during technique changes",
			"Side pressure drills - Enhance lateral force application")
	}

	for _, risk := range risks {
		if risk.Level != RiskHigh {
			continue
		}
		if strings.Contains(risk.Title, "Elbow") {
			recs = append(recs, "Elbow position drills - Practice keeping elbow angle below 35°")
		}
		if strings.Contains(risk.Title, "Wrist") {
			recs = append(recs, "Wrist stability exercises - Focus on preventing collapse")
		}
	}

	if strength.WristControl.Grade == GradeWeak {
		recs = append(recs,
			"Pronation training - Strengthen wrist pronators",
			"Wrist curls and static holds - Build wrist endurance")
	}
	if strength.BackPressure.Grade == GradeWeak {
		recs = append(recs,
			"Back pressure training - Improve pulling strength",
			"Elbow angle drills - Maintain optimal position")
	}

	if len(recs) < 3 {
		recs = append(recs,
			"Endurance training - Add 2-3 longer rounds (15s+) to build stamina",
			"Technique refinement - Practice maintaining form under pressure")
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
