// Package detector provides pose detection interfaces and types for video analysis.
package detector

// Body landmark indices following the MediaPipe pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose          = 0
	LeftEyeInner  = 1
	LeftEye       = 2
	LeftEyeOuter  = 3
	RightEyeInner = 4
	RightEye      = 5
	RightEyeOuter = 6
	LeftEar       = 7
	RightEar      = 8
	MouthLeft     = 9
	MouthRight    = 10
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftPinky     = 17
	RightPinky    = 18
	LeftIndex     = 19
	RightIndex    = 20
	LeftThumb     = 21
	RightThumb    = 22
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28
	LeftHeel      = 29
	RightHeel     = 30
	LeftFootIndex = 31
	RightFootIdx  = 32
	NumLandmarks  = 33
)

// MinLandmarks is the smallest landmark count that still covers every joint
// the analysis reads (shoulders through wrists).
const MinLandmarks = 17

// Point3D represents a 3D point in space with x, y, z coordinates.
// X and Y are normalized to [0,1] relative to frame width and height.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PoseLandmarks represents the 33 body landmarks detected for one subject.
type PoseLandmarks struct {
	Points [NumLandmarks]Point3D `json:"points"`
	Score  float64               `json:"score"`
}

// OffsetX returns a copy of the landmarks with every x coordinate shifted
// by dx and clamped into [0,1]. Used by the reprocessing fallback pass.
func (p *PoseLandmarks) OffsetX(dx float64) *PoseLandmarks {
	if p == nil {
		return nil
	}

	shifted := &PoseLandmarks{Score: p.Score}
	for i := 0; i < NumLandmarks; i++ {
		x := p.Points[i].X + dx
		if x < 0 {
			x = 0
		} else if x > 1 {
			x = 1
		}
		shifted.Points[i] = Point3D{X: x, Y: p.Points[i].Y, Z: p.Points[i].Z}
	}

	return shifted
}
