package analysis

import "errors"

// Failure taxonomy for a pipeline run. Expected failures surface as a
// report with its Error field set rather than as Go errors, so only
// ErrIdentityResolution crosses the package API (EstimateAnchors returns
// it); the unexported sentinels annotate the pipeline's log lines.
var (
	// errVideoOpen means the video file could not be opened or decoded.
	errVideoOpen = errors.New("could not open video file")

	// errNoDetections means the detector found no pose in any sampled frame.
	errNoDetections = errors.New("no people detected in video")

	// ErrIdentityResolution means the bootstrap window held no detections,
	// so the two identity anchors could not be formed.
	ErrIdentityResolution = errors.New("could not establish identity anchors")

	// errNoMatchedFrames means no detected frame was assigned to the
	// requested identity. Recoverable: it triggers the offset fallback pass.
	errNoMatchedFrames = errors.New("no frames matched the requested identity")
)
