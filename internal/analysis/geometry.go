package analysis

import (
	"math"

	"github.com/armlab/armsight/internal/detector"
)

// Angle returns the angle at vertex b formed by the segments b-a and b-c,
// in degrees normalized to [0,180]. Only the x/y plane is considered; the
// detector's z estimate is too noisy to improve joint angles.
func Angle(a, b, c detector.Point3D) float64 {
	radians := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	angle := math.Abs(radians * 180.0 / math.Pi)

	if angle > 180.0 {
		angle = 360.0 - angle
	}

	return angle
}

// Distance returns the Euclidean distance between two points in the x/y plane.
func Distance(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// clamp limits v to the inclusive range [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
