package touch

import (
	"image"
	"time"
)

// recognizer states. A session exists in stateTracking and
// stateLongPressFired; stateIdle has none.
type recognizerState int

const (
	stateIdle recognizerState = iota
	stateTracking
	stateLongPressFired
)

// Recognizer is the touch lifecycle state machine. It consumes one
// display-space sample per poll cycle and emits at most one gesture per
// cycle. It is not safe for concurrent use; the poll loop is its only
// caller by construction.
type Recognizer struct {
	swipeThreshold int
	longPress      time.Duration

	now func() time.Time

	state     recognizerState
	start     image.Point
	startTime time.Time
	current   image.Point
}

// NewRecognizer creates a recognizer with the given swipe distance
// threshold in pixels and long-press duration threshold.
func NewRecognizer(swipeThresholdPx int, longPress time.Duration) *Recognizer {
	return &Recognizer{
		swipeThreshold: swipeThresholdPx,
		longPress:      longPress,
		now:            time.Now,
	}
}

// Feed advances the state machine with one transformed sample and returns
// the recognized gesture, or nil when the sample completes nothing.
func (r *Recognizer) Feed(s Sample) *Gesture {
	if s.Active {
		return r.feedActive(s.X, s.Y)
	}
	return r.feedInactive()
}

func (r *Recognizer) feedActive(x, y int) *Gesture {
	pos := image.Pt(x, y)

	switch r.state {
	case stateIdle:
		r.state = stateTracking
		r.start = pos
		r.startTime = r.now()
		r.current = pos
		return nil

	case stateTracking:
		// The controller occasionally reports (0,0) mid-touch; treat it
		// as noise and keep the session untouched.
		if x == 0 && y == 0 {
			return nil
		}
		if r.now().Sub(r.startTime) >= r.longPress {
			r.state = stateLongPressFired
			return &Gesture{Kind: LongPress, Pos: r.start}
		}
		r.current = pos
		return nil

	default: // stateLongPressFired
		if x != 0 || y != 0 {
			r.current = pos
		}
		return nil
	}
}

func (r *Recognizer) feedInactive() *Gesture {
	switch r.state {
	case stateTracking:
		elapsed := r.now().Sub(r.startTime)
		g := r.classify(elapsed)
		r.reset()
		return &g
	case stateLongPressFired:
		// already reported, the release emits nothing
		r.reset()
		return nil
	default:
		return nil
	}
}

// classify decides the gesture for a completed touch. Movement, not
// duration, is the deciding signal once long-press is ruled out: a slow
// motionless release still resolves to a tap.
func (r *Recognizer) classify(elapsed time.Duration) Gesture {
	if elapsed > r.longPress {
		return Gesture{Kind: LongPress, Pos: r.start}
	}

	dx := r.current.X - r.start.X
	dy := r.current.Y - r.start.Y
	if max(abs(dx), abs(dy)) > r.swipeThreshold {
		if abs(dx) > abs(dy) {
			if dx < 0 {
				return Gesture{Kind: SwipeLeft, Pos: r.current}
			}
			return Gesture{Kind: SwipeRight, Pos: r.current}
		}
		if dy < 0 {
			return Gesture{Kind: SwipeUp, Pos: r.current}
		}
		return Gesture{Kind: SwipeDown, Pos: r.current}
	}

	return Gesture{Kind: Tap, Pos: r.current}
}

// Reset drops any in-progress session. Used when the poll loop restarts;
// losing an in-flight gesture is intentional.
func (r *Recognizer) Reset() {
	r.reset()
}

func (r *Recognizer) reset() {
	r.state = stateIdle
	r.start = image.Point{}
	r.startTime = time.Time{}
	r.current = image.Point{}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
