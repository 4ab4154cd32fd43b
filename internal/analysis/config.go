package analysis

// Config holds the tunable parameters of the pipeline. The defaults were
// calibrated on match footage; every value here is a heuristic knob, not a
// measured constant.
type Config struct {
	// Stride samples every n-th raw frame for detection.
	Stride int

	// AnchorWindow is the number of leading raw frames the anchor
	// estimator draws its candidates from.
	AnchorWindow int

	// MinAnchorSeparation is the smallest allowed horizontal distance
	// between the two anchors; closer anchors are forced apart.
	MinAnchorSeparation float64

	// SyntheticSpread is the separation applied when anchors are forced
	// apart (single-subject videos end up with a synthetic second anchor
	// this far from the first).
	SyntheticSpread float64

	// RefereeHalfWidth is the half-width of the band around the anchor
	// midpoint whose frames are discarded as belonging to neither subject.
	RefereeHalfWidth float64

	// MatchThreshold is the maximum composite-to-anchor distance for a
	// frame to be assigned an identity.
	MatchThreshold float64

	// FallbackOffset is the horizontal shift applied to every landmark in
	// the reprocessing pass when no frame matched the requested identity.
	FallbackOffset float64

	// IdentityCalibration shifts the technique thresholds by this many
	// degrees, minus for LEFT and plus for RIGHT, compensating for the
	// left/right stance asymmetry of a face-to-face match.
	IdentityCalibration float64
}

// DefaultConfig returns the calibrated default parameters.
func DefaultConfig() Config {
	return Config{
		Stride:              5,
		AnchorWindow:        30,
		MinAnchorSeparation: 0.3,
		SyntheticSpread:     0.4,
		RefereeHalfWidth:    0.15,
		MatchThreshold:      0.35,
		FallbackOffset:      0.25,
		IdentityCalibration: 7.5,
	}
}
