package analysis

import (
	"sort"

	"github.com/armlab/armsight/internal/detector"
)

// Composite weights. Body position dominates because hips stay put while
// the engaged arms travel during a match.
const (
	bodyWeight = 0.7
	armWeight  = 0.3
)

// Anchors are the two stable horizontal positions that identify the
// subjects for the rest of the pipeline.
type Anchors struct {
	Left  float64
	Right float64
}

// Midpoint returns the horizontal center between the two anchors.
func (a Anchors) Midpoint() float64 {
	return (a.Left + a.Right) / 2
}

// Composite reduces a pose to the single horizontal position used as its
// identity signal: a weighted mix of the body center (mean hip x) and the
// center of the active arm. The active arm is the one whose wrist sits
// higher on the frame; with clasped hands that is a proxy, not ground
// truth, and it is the main tunable of the identity stage.
func Composite(p *detector.PoseLandmarks) float64 {
	bodyCenter := (p.Points[detector.LeftHip].X + p.Points[detector.RightHip].X) / 2

	var armCenter float64
	if p.Points[detector.RightWrist].Y < p.Points[detector.LeftWrist].Y {
		armCenter = (p.Points[detector.RightElbow].X + p.Points[detector.RightWrist].X) / 2
	} else {
		armCenter = (p.Points[detector.LeftElbow].X + p.Points[detector.LeftWrist].X) / 2
	}

	return bodyWeight*bodyCenter + armWeight*armCenter
}

// EstimateAnchors derives the two identity anchors from the bootstrap
// records (the caller passes the leading window of the sampled sequence).
// Returns ErrIdentityResolution when no record in the window has a pose.
func EstimateAnchors(records []FrameRecord, cfg Config) (Anchors, error) {
	var low, high []float64
	for _, rec := range records {
		if rec.Pose == nil {
			continue
		}
		x := Composite(rec.Pose)
		if x < 0.5 {
			low = append(low, x)
		} else {
			high = append(high, x)
		}
	}

	if len(low) == 0 && len(high) == 0 {
		return Anchors{}, ErrIdentityResolution
	}

	var a Anchors
	if len(low) > 0 && len(high) > 0 {
		a.Left = median(low)
		a.Right = median(high)
		return separate(a, cfg), nil
	}

	// Every candidate landed on one side of the frame. Split the sorted
	// list at its midpoint index and take per-half medians.
	all := append(low, high...)
	sort.Float64s(all)
	mid := len(all) / 2
	lowHalf, highHalf := all[:mid], all[mid:]
	if len(lowHalf) == 0 {
		lowHalf = all[:1]
	}
	a.Left = median(lowHalf)
	a.Right = median(highHalf)

	if a.Right-a.Left < cfg.MinAnchorSeparation {
		// One subject in view. Keep its real anchor and manufacture a
		// synthetic second anchor on the opposite side, so both
		// identities stay selectable.
		m := median(all)
		if m < 0.5 {
			a.Left = m
			a.Right = clamp(m+cfg.SyntheticSpread, 0.1, 0.9)
		} else {
			a.Right = m
			a.Left = clamp(m-cfg.SyntheticSpread, 0.1, 0.9)
		}
	}

	return a, nil
}

// separate enforces the minimum anchor separation. Anchors that are too
// close are spread symmetrically around their mean to SyntheticSpread
// apart, kept inside [0.1, 0.9]; a single-subject video gets its synthetic
// second anchor here.
func separate(a Anchors, cfg Config) Anchors {
	if a.Right-a.Left >= cfg.MinAnchorSeparation {
		return a
	}

	mean := (a.Left + a.Right) / 2
	a.Left = mean - cfg.SyntheticSpread/2
	a.Right = mean + cfg.SyntheticSpread/2

	if a.Left < 0.1 {
		a.Left = 0.1
		a.Right = a.Left + cfg.SyntheticSpread
	}
	if a.Right > 0.9 {
		a.Right = 0.9
		a.Left = a.Right - cfg.SyntheticSpread
	}

	return a
}

// median returns the median of the values, interpolating the two middle
// elements of an even-length input.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
