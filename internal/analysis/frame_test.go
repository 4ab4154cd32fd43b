package analysis

import (
	"testing"

	"github.com/armlab/armsight/internal/detector"
)

func analyzeAt(t *testing.T, elbowDeg float64, id Identity) FrameAnalysis {
	t.Helper()
	rec := FrameRecord{Index: 0, Pose: detector.ArmPoseAt(0.3, elbowDeg)}
	return AnalyzeFrame(rec, id, DefaultConfig())
}

func TestAnalyzeFrame_TopRoll(t *testing.T) {
	// Wrist above and forward of the elbow at 120° lands in the Top Roll
	// bucket for either identity.
	fa := analyzeAt(t, 120, IdentityLeft)
	if fa.Technique != TechniqueTopRoll {
		t.Errorf("technique = %q, want %q", fa.Technique, TechniqueTopRoll)
	}
	if fa.Confidence < 0 || fa.Confidence > 1 {
		t.Errorf("confidence = %f, want within [0,1]", fa.Confidence)
	}
}

func TestAnalyzeFrame_Hook(t *testing.T) {
	fa := analyzeAt(t, 90, IdentityLeft)
	if fa.Technique != TechniqueHook {
		t.Errorf("technique = %q, want %q", fa.Technique, TechniqueHook)
	}
}

func TestAnalyzeFrame_Press(t *testing.T) {
	fa := analyzeAt(t, 45, IdentityLeft)
	if fa.Technique != TechniquePress {
		t.Errorf("technique = %q, want %q", fa.Technique, TechniquePress)
	}
}

func TestAnalyzeFrame_IdentityCalibrationShiftsBuckets(t *testing.T) {
	// 60° sits inside LEFT's shifted Hook bucket but below RIGHT's, where
	// it classifies as a Press instead.
	left := analyzeAt(t, 60, IdentityLeft)
	if left.Technique != TechniqueHook {
		t.Errorf("LEFT technique = %q, want %q", left.Technique, TechniqueHook)
	}

	right := analyzeAt(t, 60, IdentityRight)
	if right.Technique != TechniquePress {
		t.Errorf("RIGHT technique = %q, want %q", right.Technique, TechniquePress)
	}
}

func TestAnalyzeFrame_PriorResolvesUnmatchedPose(t *testing.T) {
	// 160° matches no rule: too wide for Top Roll, wrist above the elbow
	// rules out Hook, and the shoulder stays square. The identity prior
	// supplies the label.
	left := analyzeAt(t, 160, IdentityLeft)
	if left.Technique != TechniqueHook {
		t.Errorf("LEFT prior technique = %q, want %q", left.Technique, TechniqueHook)
	}

	right := analyzeAt(t, 160, IdentityRight)
	if right.Technique != TechniqueTopRoll {
		t.Errorf("RIGHT prior technique = %q, want %q", right.Technique, TechniqueTopRoll)
	}

	if left.Confidence > 0.95 {
		t.Errorf("prior confidence = %f, want capped at 0.95", left.Confidence)
	}
}

func TestAnalyzeFrame_KingsMove(t *testing.T) {
	// The overhead posture: a ~160° elbow matches no arm rule and the
	// dropped off shoulder opens the shoulder line past the threshold for
	// both identities.
	rec := FrameRecord{Index: 0, Pose: detector.RaisedShoulderPoseAt(0.3)}

	for _, id := range []Identity{IdentityLeft, IdentityRight} {
		fa := AnalyzeFrame(rec, id, DefaultConfig())
		if fa.Technique != TechniqueKingsMove {
			t.Errorf("%s technique = %q, want %q", id, fa.Technique, TechniqueKingsMove)
		}
		if fa.Confidence < 0 || fa.Confidence > 1 {
			t.Errorf("%s confidence = %f, want within [0,1]", id, fa.Confidence)
		}
	}
}

func TestAnalyzeFrame_WristCollapseRisk(t *testing.T) {
	// Wrist at half the forearm reach: ratio 0.5, under the 0.7 collapse
	// threshold. The elbow angle is untouched, so the technique holds.
	rec := FrameRecord{Index: 0, Pose: detector.CollapsedWristPoseAt(0.3, 90)}
	fa := AnalyzeFrame(rec, IdentityLeft, DefaultConfig())

	if fa.Technique != TechniqueHook {
		t.Errorf("technique = %q, want %q", fa.Technique, TechniqueHook)
	}

	found := false
	for _, risk := range fa.Risks {
		if risk.Title == "Wrist Collapse Risk" {
			found = true
			if risk.Level != RiskMedium {
				t.Errorf("Wrist Collapse Risk level = %v, want medium", risk.Level)
			}
		}
	}
	if !found {
		t.Error("expected a Wrist Collapse Risk finding for a 0.5 wrist ratio")
	}

	if fa.WristControl != 4.0 {
		t.Errorf("wrist control = %f, want 4.0 for a collapsed wrist", fa.WristControl)
	}
}

func TestAnalyzeFrame_ElbowStressRisk(t *testing.T) {
	// A 45° elbow must produce exactly one high elbow finding and no
	// overlapping warning.
	fa := analyzeAt(t, 45, IdentityLeft)

	var stress, warning int
	for _, risk := range fa.Risks {
		switch risk.Title {
		case "Elbow Ligament Stress":
			stress++
			if risk.Level != RiskHigh {
				t.Errorf("Elbow Ligament Stress level = %v, want high", risk.Level)
			}
			if risk.Angle == nil {
				t.Error("Elbow Ligament Stress missing measured angle")
			}
		case "Elbow Position Warning":
			warning++
		}
	}

	if stress != 1 {
		t.Errorf("Elbow Ligament Stress findings = %d, want 1", stress)
	}
	if warning != 0 {
		t.Errorf("Elbow Position Warning findings = %d, want 0", warning)
	}
}

func TestAnalyzeFrame_ElbowWarningBand(t *testing.T) {
	fa := analyzeAt(t, 38, IdentityLeft)

	found := false
	for _, risk := range fa.Risks {
		if risk.Title == "Elbow Position Warning" {
			found = true
			if risk.Level != RiskMedium {
				t.Errorf("warning level = %v, want medium", risk.Level)
			}
		}
		if risk.Title == "Elbow Ligament Stress" {
			t.Error("38° elbow should not raise the high stress finding")
		}
	}
	if !found {
		t.Error("38° elbow should raise Elbow Position Warning")
	}
}

func TestAnalyzeFrame_ShoulderFindingAlwaysPresent(t *testing.T) {
	// The square-shouldered fixture measures 90°, at or below the stress
	// cutoff.
	fa := analyzeAt(t, 100, IdentityLeft)

	found := false
	for _, risk := range fa.Risks {
		if risk.Title == "Shoulder Stress" {
			found = true
			if risk.Level != RiskMedium {
				t.Errorf("Shoulder Stress level = %v, want medium", risk.Level)
			}
		}
	}
	if !found {
		t.Error("expected a Shoulder Stress finding for a 90° shoulder")
	}
}

func TestAnalyzeFrame_StrengthScores(t *testing.T) {
	// 100° elbow: optimal back pressure. The fixture's wrist ratio is 1.0
	// and its shoulder angle 90°.
	fa := analyzeAt(t, 100, IdentityLeft)

	if fa.BackPressure != 8.0 {
		t.Errorf("back pressure = %f, want 8.0", fa.BackPressure)
	}
	if fa.WristControl != 7.5 {
		t.Errorf("wrist control = %f, want 7.5", fa.WristControl)
	}
	if fa.SidePressure != 6.5 {
		t.Errorf("side pressure = %f, want 6.5", fa.SidePressure)
	}
}

func TestAnalyzeFrame_LabelVocabulary(t *testing.T) {
	valid := map[string]bool{
		TechniqueTopRoll:   true,
		TechniqueHook:      true,
		TechniquePress:     true,
		TechniqueKingsMove: true,
		TechniqueUnknown:   true,
	}

	for angle := 10.0; angle <= 175; angle += 7.5 {
		for _, id := range []Identity{IdentityLeft, IdentityRight} {
			fa := analyzeAt(t, angle, id)
			if !valid[fa.Technique] {
				t.Errorf("angle %.1f identity %s: technique %q outside vocabulary",
					angle, id, fa.Technique)
			}
			if fa.Confidence < 0 || fa.Confidence > 1 {
				t.Errorf("angle %.1f identity %s: confidence %f outside [0,1]",
					angle, id, fa.Confidence)
			}
		}
	}
}
