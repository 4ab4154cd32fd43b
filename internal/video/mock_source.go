package video

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockSource plays back a fixed frame sequence for testing.
type MockSource struct {
	frames []*gocv.Mat
	fps    float64
	index  int
	mu     sync.Mutex
	open   bool

	// OpenErr, when set, is returned by Open to simulate an unreadable file.
	OpenErr error
}

// NewMockSource creates a MockSource over the given frames.
func NewMockSource(frames []*gocv.Mat, fps float64) *MockSource {
	return &MockSource{
		frames: frames,
		fps:    fps,
	}
}

func (s *MockSource) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.OpenErr != nil {
		return s.OpenErr
	}
	s.open = true
	s.index = 0
	return nil
}

func (s *MockSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	return nil
}

func (s *MockSource) ReadFrame() (*gocv.Mat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, ErrNotOpen
	}

	if s.index >= len(s.frames) {
		return nil, ErrEndOfVideo
	}

	// Clone so the caller can close its copy freely
	frame := s.frames[s.index].Clone()
	s.index++

	return &frame, nil
}

func (s *MockSource) Rewind() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrNotOpen
	}
	s.index = 0
	return nil
}

func (s *MockSource) FrameCount() int {
	return len(s.frames)
}

func (s *MockSource) FPS() float64 {
	return s.fps
}

func (s *MockSource) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}
