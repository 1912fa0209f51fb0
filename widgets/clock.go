package widgets

import (
	"image"
	"time"

	"github.com/inkdash/inkdash/display"
)

// Clock shows the current time and date. It has no remote data, so Update
// is a no-op and Render reads the clock directly.
type Clock struct {
	now func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

func (c *Clock) Name() string { return "clock" }

func (c *Clock) Update() error { return nil }

func (c *Clock) Render(r *display.Renderer, bounds image.Rectangle) {
	t := c.now()

	timeStr := t.Format("15:04")
	dateStr := t.Format("Mon Jan 2")

	scale := 3
	if bounds.Dy() < 50 {
		scale = 2
	}
	tw := display.TextWidth(timeStr) * scale
	cx := bounds.Min.X + bounds.Dx()/2

	r.TextScaled(cx-tw/2, bounds.Min.Y+display.GlyphHeight*scale+6, timeStr, scale)
	r.TextCentered(cx, bounds.Max.Y-6, dateStr)
}
