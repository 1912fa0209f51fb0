package screens

import (
	"image"
	"testing"

	"github.com/inkdash/inkdash/display"
	"github.com/inkdash/inkdash/touch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tapKey(t *testing.T, n *Numpad, label string) {
	t.Helper()
	for row := range numpadKeys {
		for col := range numpadKeys[row] {
			if numpadKeys[row][col] == label {
				rect := n.buttonRect(row, col)
				center := image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
				assert.True(t, n.Handle(touch.Gesture{Kind: touch.Tap, Pos: center}))
				return
			}
		}
	}
	t.Fatalf("no key %q", label)
}

func TestNumpadDigitsAndSubmit(t *testing.T) {
	n := NewNumpad(250, 122)

	var submitted string
	n.Show("PIN", 5, func(v string) { submitted = v }, nil)

	for _, key := range []string{"1", "2", "3", "4"} {
		tapKey(t, n, key)
	}
	assert.Equal(t, "1234", n.Value())

	// confirm with an incomplete buffer is a no-op
	tapKey(t, n, "OK")
	assert.True(t, n.Active())
	assert.Equal(t, "1234", n.Value())
	assert.Empty(t, submitted)

	tapKey(t, n, "5")
	tapKey(t, n, "OK")
	assert.Equal(t, "12345", submitted)
	assert.False(t, n.Active())
}

func TestNumpadBackspaceDeletesThenCancels(t *testing.T) {
	n := NewNumpad(250, 122)

	canceled := false
	n.Show("ZIP", 5, nil, func() { canceled = true })

	tapKey(t, n, "7")
	tapKey(t, n, "<")
	assert.Equal(t, "", n.Value())
	assert.True(t, n.Active())
	assert.False(t, canceled)

	tapKey(t, n, "<")
	assert.True(t, canceled)
	assert.False(t, n.Active())
}

func TestNumpadBufferCapsAtMaxLength(t *testing.T) {
	n := NewNumpad(250, 122)
	n.Show("PIN", 2, nil, nil)

	tapKey(t, n, "1")
	tapKey(t, n, "2")
	tapKey(t, n, "3")
	assert.Equal(t, "12", n.Value())
}

func TestNumpadConsumesEverythingWhileActive(t *testing.T) {
	n := NewNumpad(250, 122)
	n.Show("PIN", 4, nil, nil)

	// swipes and long presses are swallowed, not acted on
	assert.True(t, n.Handle(touch.Gesture{Kind: touch.SwipeLeft}))
	assert.True(t, n.Handle(touch.Gesture{Kind: touch.LongPress}))
	// a tap outside every button is still consumed
	assert.True(t, n.Handle(touch.Gesture{Kind: touch.Tap, Pos: image.Pt(0, 0)}))
	assert.True(t, n.Active())
}

func TestNumpadInactiveConsumesNothing(t *testing.T) {
	n := NewNumpad(250, 122)
	assert.False(t, n.Handle(touch.Gesture{Kind: touch.Tap, Pos: image.Pt(10, 10)}))
}

func TestNumpadShowReplacesOpenOverlay(t *testing.T) {
	n := NewNumpad(250, 122)
	n.Show("first", 3, nil, nil)
	tapKey(t, n, "9")
	require.Equal(t, "9", n.Value())

	n.Show("second", 4, nil, nil)
	assert.Equal(t, "", n.Value())
	assert.True(t, n.Active())
}

func TestNumpadRender(t *testing.T) {
	n := NewNumpad(250, 122)
	n.Show("ZIP", 5, nil, nil)

	r := display.NewRenderer(250, 122)
	n.Render(r)

	black := 0
	for _, p := range r.Image().Pix {
		if p == 0 {
			black++
		}
	}
	assert.Greater(t, black, 100)
}
