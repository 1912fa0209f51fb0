package display

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayFrame(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func TestDiffRectIdenticalFrames(t *testing.T) {
	a := grayFrame(64, 32)
	b := grayFrame(64, 32)

	_, changed := DiffRect(a, b)
	assert.False(t, changed)
}

func TestDiffRectBoundsChangedPixels(t *testing.T) {
	a := grayFrame(64, 32)
	b := grayFrame(64, 32)
	b.SetGray(10, 5, color.Gray{Y: 0})
	b.SetGray(20, 15, color.Gray{Y: 0})

	rect, changed := DiffRect(a, b)
	require.True(t, changed)
	assert.Equal(t, image.Rect(10, 5, 21, 16), rect)
}

func TestDiffRectNilPrevIsEverything(t *testing.T) {
	b := grayFrame(64, 32)
	rect, changed := DiffRect(nil, b)
	require.True(t, changed)
	assert.Equal(t, b.Bounds(), rect)
}

func TestAlignRectToByteBoundaries(t *testing.T) {
	bounds := image.Rect(0, 0, 122, 250)

	got := AlignRect(image.Rect(10, 5, 21, 16), bounds)
	assert.Equal(t, image.Rect(8, 5, 24, 16), got)

	// already aligned stays put
	got = AlignRect(image.Rect(8, 0, 24, 10), bounds)
	assert.Equal(t, image.Rect(8, 0, 24, 10), got)

	// clipped to bounds
	got = AlignRect(image.Rect(118, 0, 122, 10), bounds)
	assert.Equal(t, image.Rect(112, 0, 122, 10), got)
}

func TestRefreshPolicyForcesFullAfterPartialRun(t *testing.T) {
	p := NewRefreshPolicy(3, 24*time.Hour)
	now := time.Unix(1700000000, 0)
	p.now = func() time.Time { return now }

	// first render has no previous frame
	assert.True(t, p.ShouldFull(true, false))
	p.NoteRefresh(true)

	for i := 0; i < 3; i++ {
		assert.False(t, p.ShouldFull(true, true), "partial %d", i)
		p.NoteRefresh(false)
	}

	assert.True(t, p.ShouldFull(true, true), "run of partials exhausted")
	p.NoteRefresh(true)
	assert.False(t, p.ShouldFull(true, true))
}

func TestRefreshPolicyForcesFullAfterInterval(t *testing.T) {
	p := NewRefreshPolicy(100, time.Hour)
	now := time.Unix(1700000000, 0)
	p.now = func() time.Time { return now }

	p.NoteRefresh(true)
	assert.False(t, p.ShouldFull(true, true))

	now = now.Add(2 * time.Hour)
	assert.True(t, p.ShouldFull(true, true))
}

func TestRefreshPolicyHonorsExplicitFullRequest(t *testing.T) {
	p := NewRefreshPolicy(100, 24*time.Hour)
	p.NoteRefresh(true)
	assert.True(t, p.ShouldFull(false, true))
}
