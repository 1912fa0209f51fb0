package touch

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests drive the recognizer's notion of time.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestRecognizer() (*Recognizer, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	r := NewRecognizer(30, 2*time.Second)
	r.now = clock.now
	return r, clock
}

func TestRecognizerIdleStaysIdle(t *testing.T) {
	r, clock := newTestRecognizer()

	for i := 0; i < 100; i++ {
		g := r.Feed(Sample{Active: false})
		assert.Nil(t, g)
		clock.advance(50 * time.Millisecond)
	}
}

func TestRecognizerTap(t *testing.T) {
	r, clock := newTestRecognizer()

	require.Nil(t, r.Feed(Sample{Active: true, X: 100, Y: 60}))
	clock.advance(100 * time.Millisecond)

	g := r.Feed(Sample{Active: false})
	require.NotNil(t, g)
	assert.Equal(t, Tap, g.Kind)
	assert.Equal(t, image.Pt(100, 60), g.Pos)

	// session is closed, the next inactive sample emits nothing
	assert.Nil(t, r.Feed(Sample{Active: false}))
}

func TestRecognizerSlowMotionlessReleaseIsStillTap(t *testing.T) {
	r, clock := newTestRecognizer()

	require.Nil(t, r.Feed(Sample{Active: true, X: 50, Y: 50}))

	// held past the documented tap timeout, but short of long-press
	clock.advance(1500 * time.Millisecond)
	require.Nil(t, r.Feed(Sample{Active: true, X: 52, Y: 51}))

	g := r.Feed(Sample{Active: false})
	require.NotNil(t, g)
	assert.Equal(t, Tap, g.Kind)
}

func TestRecognizerSwipes(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
		want   GestureKind
	}{
		{"right", 40, 0, SwipeRight},
		{"left", -40, 0, SwipeLeft},
		{"down", 0, 40, SwipeDown},
		{"up", 0, -40, SwipeUp},
		{"dominant horizontal", 50, 35, SwipeRight},
		{"dominant vertical", 31, -45, SwipeUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, clock := newTestRecognizer()
			start := image.Pt(120, 61)

			require.Nil(t, r.Feed(Sample{Active: true, X: start.X, Y: start.Y}))
			clock.advance(200 * time.Millisecond)
			require.Nil(t, r.Feed(Sample{Active: true, X: start.X + tt.dx, Y: start.Y + tt.dy}))

			g := r.Feed(Sample{Active: false})
			require.NotNil(t, g)
			assert.Equal(t, tt.want, g.Kind)
			assert.Equal(t, start.Add(image.Pt(tt.dx, tt.dy)), g.Pos)
		})
	}
}

func TestRecognizerMovementBelowThresholdIsTap(t *testing.T) {
	r, clock := newTestRecognizer()

	require.Nil(t, r.Feed(Sample{Active: true, X: 100, Y: 60}))
	clock.advance(100 * time.Millisecond)
	require.Nil(t, r.Feed(Sample{Active: true, X: 125, Y: 70}))

	g := r.Feed(Sample{Active: false})
	require.NotNil(t, g)
	assert.Equal(t, Tap, g.Kind)
	assert.Equal(t, image.Pt(125, 70), g.Pos)
}

func TestRecognizerLongPressFiresOnceWhileHeld(t *testing.T) {
	r, clock := newTestRecognizer()

	require.Nil(t, r.Feed(Sample{Active: true, X: 80, Y: 40}))

	clock.advance(2100 * time.Millisecond)
	g := r.Feed(Sample{Active: true, X: 80, Y: 40})
	require.NotNil(t, g)
	assert.Equal(t, LongPress, g.Kind)
	assert.Equal(t, image.Pt(80, 40), g.Pos, "long press reports the start position")

	// still held: no duplicate
	clock.advance(500 * time.Millisecond)
	assert.Nil(t, r.Feed(Sample{Active: true, X: 85, Y: 44}))

	// release after the long press emits nothing
	assert.Nil(t, r.Feed(Sample{Active: false}))

	// and the machine is back to a clean idle
	require.Nil(t, r.Feed(Sample{Active: true, X: 10, Y: 10}))
	clock.advance(50 * time.Millisecond)
	g = r.Feed(Sample{Active: false})
	require.NotNil(t, g)
	assert.Equal(t, Tap, g.Kind)
}

func TestRecognizerLongPressOnReleaseClassification(t *testing.T) {
	// A release whose elapsed time crossed the threshold without an
	// intermediate active sample still classifies as long press.
	r, clock := newTestRecognizer()

	require.Nil(t, r.Feed(Sample{Active: true, X: 80, Y: 40}))
	clock.advance(2500 * time.Millisecond)

	g := r.Feed(Sample{Active: false})
	require.NotNil(t, g)
	assert.Equal(t, LongPress, g.Kind)
}

func TestRecognizerSpuriousOriginSampleIgnored(t *testing.T) {
	r, clock := newTestRecognizer()

	require.Nil(t, r.Feed(Sample{Active: true, X: 200, Y: 100}))
	clock.advance(100 * time.Millisecond)

	// sensor noise mid-touch
	require.Nil(t, r.Feed(Sample{Active: true, X: 0, Y: 0}))
	clock.advance(100 * time.Millisecond)

	g := r.Feed(Sample{Active: false})
	require.NotNil(t, g)
	assert.Equal(t, Tap, g.Kind)
	assert.Equal(t, image.Pt(200, 100), g.Pos, "(0,0) must not become the end position")
}

func TestRecognizerResetDropsSession(t *testing.T) {
	r, clock := newTestRecognizer()

	require.Nil(t, r.Feed(Sample{Active: true, X: 60, Y: 60}))
	clock.advance(100 * time.Millisecond)
	r.Reset()

	assert.Nil(t, r.Feed(Sample{Active: false}))
}
