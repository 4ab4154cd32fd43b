package analysis

import (
	"context"
	"errors"
	"testing"

	"gocv.io/x/gocv"

	"github.com/armlab/armsight/internal/detector"
	"github.com/armlab/armsight/internal/video"
)

// makeFrames builds n small blank frames and registers their cleanup.
func makeFrames(t *testing.T, n int) []*gocv.Mat {
	t.Helper()
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		mat := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
		frames[i] = &mat
	}
	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})
	return frames
}

func TestSampler_StrideAndIndices(t *testing.T) {
	src := video.NewMockSource(makeFrames(t, 10), 30)
	if err := src.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	det := detector.NewMockDetector()
	det.SetPoses([]*detector.PoseLandmarks{
		detector.StancePoseAt(0.2),
		nil,
		detector.StancePoseAt(0.21),
		detector.StancePoseAt(0.22),
	})

	records, scanned, err := NewSampler(src, det, 3).Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	if scanned != 10 {
		t.Errorf("scanned = %d, want 10", scanned)
	}
	if len(records) != 4 {
		t.Fatalf("records = %d, want 4 (frames 0,3,6,9)", len(records))
	}
	for i, wantIndex := range []int{0, 3, 6, 9} {
		if records[i].Index != wantIndex {
			t.Errorf("records[%d].Index = %d, want %d", i, records[i].Index, wantIndex)
		}
	}
	if records[1].Pose != nil {
		t.Error("records[1].Pose should be absent")
	}
	if records[2].Pose == nil {
		t.Error("records[2].Pose should be detected")
	}
}

func TestSampler_DetectorErrorTreatedAsAbsent(t *testing.T) {
	src := video.NewMockSource(makeFrames(t, 3), 30)
	if err := src.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	det := detector.NewMockDetector()
	det.SetError(errors.New("service unavailable"))

	records, _, err := NewSampler(src, det, 1).Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	for i, rec := range records {
		if rec.Pose != nil {
			t.Errorf("records[%d].Pose = %v, want absent on detector error", i, rec.Pose)
		}
	}
}

func TestSampler_ContextCancellation(t *testing.T) {
	src := video.NewMockSource(makeFrames(t, 5), 30)
	if err := src.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewSampler(src, detector.NewMockDetector(), 1).Sample(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Sample() error = %v, want context.Canceled", err)
	}
}
