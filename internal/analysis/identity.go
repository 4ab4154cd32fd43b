package analysis

import "math"

// Classifier assigns detected frames to one of the two subjects using the
// bootstrap anchors. Classification is stateless per frame: no frame's
// outcome depends on any other frame's.
type Classifier struct {
	anchors Anchors
	cfg     Config
}

// NewClassifier creates a Classifier for the given anchors.
func NewClassifier(anchors Anchors, cfg Config) *Classifier {
	return &Classifier{anchors: anchors, cfg: cfg}
}

// Classify resolves one frame record to an identity. The second return is
// false when the frame is discarded: composite position inside the referee
// band around the anchor midpoint, or too far from both anchors to assign.
func (c *Classifier) Classify(rec FrameRecord) (Identity, bool) {
	if rec.Pose == nil {
		return "", false
	}

	x := Composite(rec.Pose)

	// A third person standing between the subjects, typically the
	// referee, shows up as a composite near the midpoint.
	if math.Abs(x-c.anchors.Midpoint()) < c.cfg.RefereeHalfWidth {
		return "", false
	}

	distLeft := math.Abs(x - c.anchors.Left)
	distRight := math.Abs(x - c.anchors.Right)

	switch {
	case distLeft < distRight && distLeft < c.cfg.MatchThreshold:
		return IdentityLeft, true
	case distRight < distLeft && distRight < c.cfg.MatchThreshold:
		return IdentityRight, true
	}

	return "", false
}

// Filter returns, in order, the records assigned to the requested identity.
func (c *Classifier) Filter(records []FrameRecord, want Identity) []FrameRecord {
	var matched []FrameRecord
	for _, rec := range records {
		if id, ok := c.Classify(rec); ok && id == want {
			matched = append(matched, rec)
		}
	}
	return matched
}
