package touch

import (
	"fmt"
	"sync"

	evdev "github.com/holoplot/go-evdev"
)

// EvdevSensor reads touch state from a Linux evdev input device. It is
// the backend for panels whose kernel driver already exposes the touch
// matrix, and for testing against a USB touchscreen.
//
// Evdev is event driven rather than poll driven, so a reader goroutine
// folds events into the latest state and Poll snapshots it. Events are
// committed on SYN_REPORT so a half-updated frame is never observed.
type EvdevSensor struct {
	dev    *evdev.InputDevice
	width  int
	height int

	mu      sync.Mutex
	sample  Sample // last committed frame
	pending Sample // frame being assembled
	err     error

	done chan struct{}
}

// NewEvdevSensor opens the input device at path. Width and height are the
// sensor dimensions in native orientation.
func NewEvdevSensor(path string, width, height int) (*EvdevSensor, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input device %s: %w", path, err)
	}
	s := &EvdevSensor{
		dev:    dev,
		width:  width,
		height: height,
		done:   make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

func (s *EvdevSensor) Size() (int, int) {
	return s.width, s.height
}

// Poll returns the last committed touch frame.
func (s *EvdevSensor) Poll() (Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		err := s.err
		s.err = nil
		return Sample{}, err
	}
	return s.sample, nil
}

func (s *EvdevSensor) Close() error {
	close(s.done)
	return s.dev.Close()
}

func (s *EvdevSensor) readLoop() {
	for {
		ev, err := s.dev.ReadOne()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}
			s.mu.Lock()
			s.err = err
			s.sample = Sample{}
			s.mu.Unlock()
			return
		}
		s.handleEvent(ev)
	}
}

func (s *EvdevSensor) handleEvent(ev *evdev.InputEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case evdev.EV_KEY:
		if ev.Code == evdev.BTN_TOUCH {
			s.pending.Active = ev.Value != 0
		}
	case evdev.EV_ABS:
		switch ev.Code {
		case evdev.ABS_X, evdev.ABS_MT_POSITION_X:
			s.pending.X = int(ev.Value)
		case evdev.ABS_Y, evdev.ABS_MT_POSITION_Y:
			s.pending.Y = int(ev.Value)
		}
	case evdev.EV_SYN:
		if ev.Code == evdev.SYN_REPORT {
			s.sample = s.pending
		}
	}
}
