package display

import (
	"image"
	"os"
	"sync"

	"github.com/inkdash/inkdash/utils"
)

// Sim is a display backend for development machines without the panel.
// Each frame is written as a PNG so the dashboard can be eyeballed in a
// file browser, and kept in memory for tests.
type Sim struct {
	path string

	mu    sync.Mutex
	last  *image.Gray
	count int
}

// NewSim creates a simulated display. path may be empty to keep frames in
// memory only.
func NewSim(path string) *Sim {
	return &Sim{path: path}
}

func (s *Sim) Init() error {
	return nil
}

func (s *Sim) Render(frame *image.Gray, partial bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := image.NewGray(frame.Rect)
	copy(out.Pix, frame.Pix)
	s.last = out
	s.count++

	if s.path == "" {
		return nil
	}
	data, err := utils.EncodePng(out)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *Sim) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = nil
	return nil
}

func (s *Sim) Sleep() error { return nil }
func (s *Sim) Close() error { return nil }

// Frame returns the last rendered frame, or nil.
func (s *Sim) Frame() *image.Gray {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Renders returns how many frames have been pushed.
func (s *Sim) Renders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
