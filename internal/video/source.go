// Package video provides seekable video file access using GoCV (OpenCV).
package video

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// ErrNotOpen is returned when reading from a source that is not open.
var ErrNotOpen = errors.New("video source is not open")

// ErrEndOfVideo is returned by ReadFrame once the stream is exhausted.
var ErrEndOfVideo = errors.New("end of video")

// Source defines the interface for seekable video stream implementations.
// A Source reads frames sequentially and can be rewound to the first frame,
// so consumers can make multiple passes without reopening the file.
type Source interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	Rewind() error
	FrameCount() int
	FPS() float64
	IsOpen() bool
}

// fileSource reads frames from a video file using GoCV.
type fileSource struct {
	path    string
	capture *gocv.VideoCapture
	mu      sync.Mutex
	open    bool
}

// NewFileSource creates a Source for the video file at the given path.
// The file is not touched until Open is called.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

// Open opens the video file for reading.
func (s *fileSource) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return nil
	}

	capture, err := gocv.VideoCaptureFile(s.path)
	if err != nil {
		return fmt.Errorf("open video %s: %w", s.path, err)
	}

	s.capture = capture
	s.open = true

	return nil
}

// Close closes the video file and releases resources.
func (s *fileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open || s.capture == nil {
		s.open = false
		return nil
	}

	err := s.capture.Close()
	s.capture = nil
	s.open = false

	return err
}

// ReadFrame reads the next frame from the video.
// The caller is responsible for closing the returned Mat.
// Returns ErrEndOfVideo once the stream is exhausted.
func (s *fileSource) ReadFrame() (*gocv.Mat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open || s.capture == nil {
		return nil, ErrNotOpen
	}

	mat := gocv.NewMat()
	if ok := s.capture.Read(&mat); !ok {
		mat.Close()
		return nil, ErrEndOfVideo
	}

	if mat.Empty() {
		mat.Close()
		return nil, ErrEndOfVideo
	}

	return &mat, nil
}

// Rewind reseeks the stream back to the first frame.
func (s *fileSource) Rewind() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open || s.capture == nil {
		return ErrNotOpen
	}

	s.capture.Set(gocv.VideoCapturePosFrames, 0)
	return nil
}

// FrameCount returns the total number of frames in the video, or 0 when
// the source is not open.
func (s *fileSource) FrameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open || s.capture == nil {
		return 0
	}

	return int(s.capture.Get(gocv.VideoCaptureFrameCount))
}

// FPS returns the frame rate reported by the container, or 0 when the
// source is not open.
func (s *fileSource) FPS() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open || s.capture == nil {
		return 0
	}

	return s.capture.Get(gocv.VideoCaptureFPS)
}

// IsOpen returns true if the source is currently open.
func (s *fileSource) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.open
}
