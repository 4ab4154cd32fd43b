package analysis

import (
	"context"
	"fmt"
	"log"

	"github.com/armlab/armsight/internal/detector"
	"github.com/armlab/armsight/internal/video"
)

// Sampler reads a video source at a fixed stride and runs pose detection on
// each sampled frame. One pass over the source yields the complete record
// sequence; downstream stages work on the records so the video is decoded
// and detected exactly once per pass.
type Sampler struct {
	src    video.Source
	det    detector.Detector
	stride int
}

// NewSampler creates a Sampler over the given source and detector.
// A stride below 1 is treated as 1.
func NewSampler(src video.Source, det detector.Detector, stride int) *Sampler {
	if stride < 1 {
		stride = 1
	}
	return &Sampler{src: src, det: det, stride: stride}
}

// Sample rewinds the source and consumes it to the end, returning one
// FrameRecord per sampled frame (Pose nil where nothing was detected) and
// the total number of raw frames scanned. The context is checked between
// frames, which is the pipeline's only cancellation point.
func (s *Sampler) Sample(ctx context.Context) ([]FrameRecord, int, error) {
	if err := s.src.Rewind(); err != nil {
		return nil, 0, fmt.Errorf("rewind source: %w", err)
	}

	var records []FrameRecord
	scanned := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, scanned, err
		}

		frame, err := s.src.ReadFrame()
		if err == video.ErrEndOfVideo {
			break
		}
		if err != nil {
			return nil, scanned, fmt.Errorf("read frame %d: %w", scanned, err)
		}

		index := scanned
		scanned++

		if index%s.stride != 0 {
			frame.Close()
			continue
		}

		pose, err := s.det.Detect(frame)
		frame.Close()
		if err != nil {
			// A flaky detection is treated as an absent frame, not a
			// pipeline failure.
			log.Printf("detect frame %d: %v", index, err)
			pose = nil
		}

		records = append(records, FrameRecord{Index: index, Pose: pose})
	}

	return records, scanned, nil
}
