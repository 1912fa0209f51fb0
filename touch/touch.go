// Package touch converts raw samples from a single-point touch controller
// into discrete gestures: taps, swipes and long presses.
package touch

import (
	"fmt"
	"image"
)

// Sample is one poll of the touch controller, in sensor-native
// (unrotated) coordinates. When Active is false, X and Y are meaningless.
type Sample struct {
	Active bool
	X      int
	Y      int
}

// Sensor abstracts the physical touch controller. Poll must not block
// beyond a short bounded I/O timeout; a failed poll is reported as an
// error and treated by callers as "no sample this cycle".
type Sensor interface {
	// Poll returns the current touch state.
	Poll() (Sample, error)
	// Size returns the sensor dimensions in native orientation.
	Size() (width, height int)
	Close() error
}

// GestureKind enumerates the recognized gestures.
type GestureKind int

const (
	Tap GestureKind = iota
	SwipeLeft
	SwipeRight
	SwipeUp
	SwipeDown
	LongPress
)

func (k GestureKind) String() string {
	switch k {
	case Tap:
		return "tap"
	case SwipeLeft:
		return "swipe_left"
	case SwipeRight:
		return "swipe_right"
	case SwipeUp:
		return "swipe_up"
	case SwipeDown:
		return "swipe_down"
	case LongPress:
		return "long_press"
	default:
		return fmt.Sprintf("gesture(%d)", int(k))
	}
}

// ParseGestureKind is the inverse of GestureKind.String, for gestures
// named over the wire.
func ParseGestureKind(s string) (GestureKind, error) {
	switch s {
	case "tap":
		return Tap, nil
	case "swipe_left":
		return SwipeLeft, nil
	case "swipe_right":
		return SwipeRight, nil
	case "swipe_up":
		return SwipeUp, nil
	case "swipe_down":
		return SwipeDown, nil
	case "long_press":
		return LongPress, nil
	default:
		return Tap, fmt.Errorf("unknown gesture kind: %s", s)
	}
}

// Gesture is an immutable recognized gesture. Pos is the end position for
// taps and swipes, and the start position for long presses.
type Gesture struct {
	Kind GestureKind
	Pos  image.Point
}

func (g Gesture) String() string {
	return fmt.Sprintf("%s@(%d,%d)", g.Kind, g.Pos.X, g.Pos.Y)
}
