package analysis

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func frameWith(technique string, conf float64, risks ...RiskFinding) FrameAnalysis {
	return FrameAnalysis{
		Technique:    technique,
		Confidence:   conf,
		Risks:        risks,
		BackPressure: 8.0,
		WristControl: 7.5,
		SidePressure: 6.5,
	}
}

func testMeta() Metadata {
	people := []Person{
		{ID: 0, Position: "left", Label: "Person 1 (Left)", CenterX: 0.2},
		{ID: 1, Position: "right", Label: "Person 2 (Right)", CenterX: 0.75},
	}
	return Metadata{
		FramesScanned: 50,
		Duration:      10,
		People:        people,
		Analyzed:      people[0],
		Identity:      IdentityLeft,
	}
}

func TestAggregate_MajorityTechnique(t *testing.T) {
	frames := []FrameAnalysis{
		frameWith(TechniqueHook, 0.8),
		frameWith(TechniqueTopRoll, 0.9),
		frameWith(TechniqueHook, 0.7),
	}

	report := Aggregate(frames, testMeta())
	if report.Technique.Primary != TechniqueHook {
		t.Errorf("primary = %q, want %q", report.Technique.Primary, TechniqueHook)
	}
}

func TestAggregate_TieBrokenByFirstSeen(t *testing.T) {
	frames := []FrameAnalysis{
		frameWith(TechniquePress, 0.7),
		frameWith(TechniqueHook, 0.8),
		frameWith(TechniqueHook, 0.8),
		frameWith(TechniquePress, 0.7),
	}

	report := Aggregate(frames, testMeta())
	if report.Technique.Primary != TechniquePress {
		t.Errorf("primary = %q, want first-seen %q", report.Technique.Primary, TechniquePress)
	}
}

func TestAggregate_RiskDeduplication(t *testing.T) {
	angle := 45.0
	frames := []FrameAnalysis{
		frameWith(TechniqueHook, 0.8, RiskFinding{Level: RiskMedium, Title: "Shoulder Stress"}),
		frameWith(TechniqueHook, 0.8,
			RiskFinding{Level: RiskHigh, Title: "Elbow Ligament Stress", Angle: &angle},
			RiskFinding{Level: RiskMedium, Title: "Shoulder Stress"}),
		frameWith(TechniqueHook, 0.8,
			RiskFinding{Level: RiskHigh, Title: "Elbow Ligament Stress", Angle: &angle},
			RiskFinding{Level: RiskLow, Title: "Shoulder Position"}),
	}

	report := Aggregate(frames, testMeta())

	if len(report.Risks) > 5 {
		t.Fatalf("risks = %d, want <= 5", len(report.Risks))
	}

	seen := make(map[string]bool)
	for _, risk := range report.Risks {
		if seen[risk.Title] {
			t.Errorf("duplicate risk title %q", risk.Title)
		}
		seen[risk.Title] = true
	}

	if report.Risks[0].Title != "Elbow Ligament Stress" || report.Risks[0].Level != RiskHigh {
		t.Errorf("risks[0] = %+v, want the high elbow finding first", report.Risks[0])
	}
}

func TestAggregate_StrengthAveragedAndBucketed(t *testing.T) {
	frames := []FrameAnalysis{
		{Technique: TechniqueHook, BackPressure: 8.0, WristControl: 4.0, SidePressure: 6.5},
		{Technique: TechniqueHook, BackPressure: 6.5, WristControl: 4.0, SidePressure: 6.5},
		{Technique: TechniqueHook, BackPressure: 8.0, WristControl: 4.0, SidePressure: 5.0},
	}

	report := Aggregate(frames, testMeta())

	if report.Strength.BackPressure.Grade != GradeStrong {
		t.Errorf("back pressure grade = %v, want Strong (avg 7.5)", report.Strength.BackPressure.Grade)
	}
	if report.Strength.WristControl.Grade != GradeWeak {
		t.Errorf("wrist control grade = %v, want Weak", report.Strength.WristControl.Grade)
	}
	if report.Strength.SidePressure.Grade != GradeModerate {
		t.Errorf("side pressure grade = %v, want Moderate (avg 6.0)", report.Strength.SidePressure.Grade)
	}
	if !strings.Contains(report.Strength.Summary, "wrist weakness") {
		t.Errorf("summary = %q, want the wrist weakness summary", report.Strength.Summary)
	}
}

func TestAggregate_Recommendations(t *testing.T) {
	t.Run("TechniqueAndWeakness", func(t *testing.T) {
		frames := []FrameAnalysis{
			{Technique: TechniqueTopRoll, BackPressure: 8.0, WristControl: 4.0, SidePressure: 6.5},
		}

		report := Aggregate(frames, testMeta())
		if len(report.Recommendations) == 0 || len(report.Recommendations) > 5 {
			t.Fatalf("recommendations = %d, want 1..5", len(report.Recommendations))
		}

		joined := strings.Join(report.Recommendations, "\n")
		if !strings.Contains(joined, "Wrist curls") {
			t.Errorf("missing Top Roll recommendation in %q", joined)
		}
		if !strings.Contains(joined, "Pronation training") {
			t.Errorf("missing weak-wrist recommendation in %q", joined)
		}
	})

	t.Run("FillerWhenFewRulesFire", func(t *testing.T) {
		// King's Move has no technique entry and nothing here is weak or
		// high risk, so the generic fillers must appear.
		frames := []FrameAnalysis{
			{Technique: TechniqueKingsMove, BackPressure: 8.0, WristControl: 7.5, SidePressure: 6.5},
		}

		report := Aggregate(frames, testMeta())
		joined := strings.Join(report.Recommendations, "\n")
		if !strings.Contains(joined, "Endurance training") {
			t.Errorf("missing generic filler in %q", joined)
		}
	})
}

func TestAggregate_Deterministic(t *testing.T) {
	frames := []FrameAnalysis{
		frameWith(TechniqueHook, 0.8, RiskFinding{Level: RiskMedium, Title: "Shoulder Stress"}),
		frameWith(TechniqueTopRoll, 0.9),
		frameWith(TechniqueHook, 0.7),
	}

	first := Aggregate(frames, testMeta())
	second := Aggregate(frames, testMeta())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated aggregation differs (-first +second):\n%s", diff)
	}
}

func TestAggregate_TransitionOnLongerVideos(t *testing.T) {
	frames := []FrameAnalysis{frameWith(TechniqueHook, 0.8)}

	meta := testMeta()
	meta.FramesScanned = 20
	if report := Aggregate(frames, meta); len(report.Technique.Transitions) != 0 {
		t.Errorf("short video transitions = %d, want 0", len(report.Technique.Transitions))
	}

	meta.FramesScanned = 50
	report := Aggregate(frames, meta)
	if len(report.Technique.Transitions) != 1 {
		t.Fatalf("long video transitions = %d, want 1", len(report.Technique.Transitions))
	}
	if report.Technique.Transitions[0].Type != TechniqueHook {
		t.Errorf("transition type = %q, want LEFT's %q",
			report.Technique.Transitions[0].Type, TechniqueHook)
	}
}
