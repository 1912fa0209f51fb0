package screens

import (
	"image"
	"strings"

	"github.com/inkdash/inkdash/display"
	"github.com/inkdash/inkdash/touch"
	"github.com/inkdash/inkdash/utils"
)

// numpad key labels, row by row.
var numpadKeys = [4][3]string{
	{"1", "2", "3"},
	{"4", "5", "6"},
	{"7", "8", "9"},
	{"<", "0", "OK"},
}

// Numpad is a modal numeric-entry overlay. While active it consumes
// every gesture, including those outside its buttons, so nothing leaks
// through to navigation underneath.
type Numpad struct {
	width  int
	height int

	active   bool
	title    string
	maxLen   int
	buffer   string
	onSubmit func(string)
	onCancel func()
}

// NewNumpad creates an overlay sized to the display.
func NewNumpad(width, height int) *Numpad {
	return &Numpad{width: width, height: height}
}

// Show opens the overlay. Calling Show while already open replaces the
// prior entry state; there is no queueing.
func (n *Numpad) Show(title string, maxLen int, onSubmit func(string), onCancel func()) {
	if n.active {
		utils.Verbose("numpad: replacing open overlay %q with %q", n.title, title)
	}
	n.active = true
	n.title = title
	n.maxLen = maxLen
	n.buffer = ""
	n.onSubmit = onSubmit
	n.onCancel = onCancel
}

func (n *Numpad) Active() bool { return n.active }

// Value returns the current entry buffer.
func (n *Numpad) Value() string { return n.buffer }

// Close dismisses the overlay without firing any callback.
func (n *Numpad) Close() {
	n.active = false
	n.buffer = ""
	n.onSubmit = nil
	n.onCancel = nil
}

// Handle processes a gesture. It reports true whenever the overlay is
// active, whether or not the gesture hit a button.
func (n *Numpad) Handle(g touch.Gesture) bool {
	if !n.active {
		return false
	}
	if g.Kind != touch.Tap {
		return true
	}

	label, ok := n.keyAt(g.Pos)
	if !ok {
		return true
	}

	switch label {
	case "<":
		if n.buffer == "" {
			cancel := n.onCancel
			n.Close()
			if cancel != nil {
				cancel()
			}
			return true
		}
		n.buffer = n.buffer[:len(n.buffer)-1]
	case "OK":
		if len(n.buffer) != n.maxLen {
			// incomplete entry, the tap has no effect
			return true
		}
		value := n.buffer
		submit := n.onSubmit
		n.Close()
		if submit != nil {
			submit(value)
		}
	default:
		if len(n.buffer) < n.maxLen {
			n.buffer += label
		}
	}
	return true
}

// keyAt hit-tests pos against the button grid.
func (n *Numpad) keyAt(pos image.Point) (string, bool) {
	for row := range numpadKeys {
		for col := range numpadKeys[row] {
			if pos.In(n.buttonRect(row, col)) {
				return numpadKeys[row][col], true
			}
		}
	}
	return "", false
}

const (
	numpadGap      = 2
	numpadTitleRow = 16
)

func (n *Numpad) buttonRect(row, col int) image.Rectangle {
	gridW := n.width - 2*numpadGap
	gridH := n.height - numpadTitleRow - numpadGap
	btnW := (gridW - 2*numpadGap) / 3
	btnH := (gridH - 3*numpadGap) / 4
	x := numpadGap + col*(btnW+numpadGap)
	y := numpadTitleRow + row*(btnH+numpadGap)
	return image.Rect(x, y, x+btnW, y+btnH)
}

// Render paints the overlay over the whole frame.
func (n *Numpad) Render(r *display.Renderer) {
	if !n.active {
		return
	}
	r.Clear()

	masked := strings.Repeat("*", len(n.buffer)) + strings.Repeat("_", n.maxLen-len(n.buffer))
	r.Text(numpadGap+2, display.GlyphHeight, n.title+" "+masked)

	for row := range numpadKeys {
		for col := range numpadKeys[row] {
			label := numpadKeys[row][col]
			active := label == "OK" && len(n.buffer) == n.maxLen
			r.Button(n.buttonRect(row, col), label, active)
		}
	}
}
