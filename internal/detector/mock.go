package detector

import (
	"math"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It returns a scripted sequence of per-frame results: each call to Detect
// pops the next entry, where a nil entry means no subject in that frame.
type MockDetector struct {
	poses []*PoseLandmarks
	index int
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetPoses sets the per-frame results returned by successive Detect calls.
// Once the sequence is exhausted, Detect reports no subject.
func (m *MockDetector) SetPoses(poses []*PoseLandmarks) {
	m.poses = poses
	m.index = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the next scripted result or the pre-configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*PoseLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.index >= len(m.poses) {
		return nil, nil
	}
	pose := m.poses[m.index]
	m.index++
	return pose, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// StancePoseAt returns a preset pose for a subject standing at the given
// horizontal position. Hips and the active arm are centered on centerX, so
// the composite identity position of the pose equals centerX exactly.
// The right arm is the active one (right wrist higher on frame) with an
// elbow angle of about 90 degrees.
func StancePoseAt(centerX float64) *PoseLandmarks {
	return ArmPoseAt(centerX, 90)
}

// ArmPoseAt returns a preset pose standing at centerX whose active (right)
// arm forms the given elbow angle, in degrees. The wrist is always forward
// of the elbow; for angles above 90 the wrist is also above the elbow, which
// together with the angle drives the technique classification.
func ArmPoseAt(centerX, elbowDeg float64) *PoseLandmarks {
	pose := &PoseLandmarks{Score: 0.95}

	// Hips centered on centerX
	pose.Points[LeftHip] = Point3D{X: centerX - 0.05, Y: 0.75, Z: 0.0}
	pose.Points[RightHip] = Point3D{X: centerX + 0.05, Y: 0.75, Z: 0.0}

	// Active right arm: elbow with the shoulder straight below it, wrist
	// placed on a 0.2-radius arc so that angle(shoulder, elbow, wrist)
	// equals elbowDeg.
	const reach = 0.2
	dir := (90 - elbowDeg) * math.Pi / 180
	elbowX := centerX - 0.5*reach*math.Cos(dir)

	elbow := Point3D{X: elbowX, Y: 0.5, Z: 0.0}
	shoulder := Point3D{X: elbowX, Y: 0.7, Z: 0.0}
	wrist := Point3D{
		X: elbow.X + reach*math.Cos(dir),
		Y: elbow.Y + reach*math.Sin(dir),
		Z: 0.0,
	}

	pose.Points[RightShoulder] = shoulder
	pose.Points[RightElbow] = elbow
	pose.Points[RightWrist] = wrist

	// Passive left arm hanging low; its wrist must sit below the right
	// wrist so the right arm is selected as active.
	pose.Points[LeftShoulder] = Point3D{X: shoulder.X - 0.25, Y: 0.7, Z: 0.0}
	pose.Points[LeftElbow] = Point3D{X: shoulder.X - 0.28, Y: 0.85, Z: 0.0}
	pose.Points[LeftWrist] = Point3D{X: shoulder.X - 0.3, Y: 0.95, Z: 0.0}

	// Head roughly above the shoulders
	pose.Points[Nose] = Point3D{X: elbowX - 0.12, Y: 0.3, Z: 0.0}

	return pose
}

// CollapsedWristPoseAt returns an ArmPoseAt pose whose wrist has slid to
// half the forearm reach, so the wrist-to-elbow distance is 0.5 of the
// shoulder-to-elbow distance. The elbow angle is unchanged.
func CollapsedWristPoseAt(centerX, elbowDeg float64) *PoseLandmarks {
	pose := ArmPoseAt(centerX, elbowDeg)

	elbow := pose.Points[RightElbow]
	wrist := pose.Points[RightWrist]
	pose.Points[RightWrist] = Point3D{
		X: elbow.X + (wrist.X-elbow.X)/2,
		Y: elbow.Y + (wrist.Y-elbow.Y)/2,
		Z: 0.0,
	}

	return pose
}

// RaisedShoulderPoseAt returns a pose in the defensive overhead posture:
// the active arm thrown up nearly straight and the off shoulder dropped
// low, opening the shoulder line to about 160 degrees.
func RaisedShoulderPoseAt(centerX float64) *PoseLandmarks {
	pose := &PoseLandmarks{Score: 0.95}

	pose.Points[LeftHip] = Point3D{X: centerX - 0.05, Y: 0.75, Z: 0.0}
	pose.Points[RightHip] = Point3D{X: centerX + 0.05, Y: 0.75, Z: 0.0}

	// Elbow straight above the shoulder, forearm extended almost in line
	// with the upper arm.
	shoulder := Point3D{X: centerX, Y: 0.7, Z: 0.0}
	elbow := Point3D{X: centerX, Y: 0.5, Z: 0.0}
	wrist := Point3D{X: centerX + 0.068, Y: 0.312, Z: 0.0}

	pose.Points[RightShoulder] = shoulder
	pose.Points[RightElbow] = elbow
	pose.Points[RightWrist] = wrist

	// Off shoulder well below the active one; its arm hangs low so the
	// right arm stays the active choice.
	pose.Points[LeftShoulder] = Point3D{X: centerX - 0.07, Y: 0.89, Z: 0.0}
	pose.Points[LeftElbow] = Point3D{X: centerX - 0.1, Y: 0.92, Z: 0.0}
	pose.Points[LeftWrist] = Point3D{X: centerX - 0.12, Y: 0.95, Z: 0.0}

	pose.Points[Nose] = Point3D{X: centerX, Y: 0.3, Z: 0.0}

	return pose
}
