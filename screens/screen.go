// Package screens implements the multi-screen UI: screen layout and zone
// resolution, the screen manager with wrap-around navigation, the modal
// numpad overlay and the gesture dispatcher that ties them together.
package screens

import (
	"image"

	"github.com/inkdash/inkdash/display"
	"github.com/inkdash/inkdash/widgets"
)

// Layout selects how a screen splits its area among widgets.
type Layout int

const (
	// LayoutVertical stacks widgets in equal horizontal bands.
	LayoutVertical Layout = iota
	// LayoutQuadrant arranges up to four widgets in a 2x2 grid.
	LayoutQuadrant
)

func ParseLayout(s string) Layout {
	if s == "quadrant" {
		return LayoutQuadrant
	}
	return LayoutVertical
}

// Screen is one page of the dashboard: an ordered set of widgets, a
// layout policy and optional per-zone links to detail screens.
type Screen struct {
	Name    string
	Widgets []widgets.Widget
	Layout  Layout
	// DetailLinks maps a zone index to the name of the screen a tap on
	// that zone navigates to.
	DetailLinks map[int]string
}

// ZoneBounds returns the rectangle of zone i for a screen of the given
// size, or an empty rectangle for an out-of-range zone.
func (s *Screen) ZoneBounds(i, width, height int) image.Rectangle {
	n := len(s.Widgets)
	if n == 0 || i < 0 || i >= n {
		return image.Rectangle{}
	}
	switch s.Layout {
	case LayoutQuadrant:
		halfW, halfH := width/2, height/2
		x := (i % 2) * halfW
		y := (i / 2) * halfH
		return image.Rect(x, y, x+halfW, y+halfH)
	default:
		bandH := height / n
		y := i * bandH
		bottom := y + bandH
		if i == n-1 {
			bottom = height
		}
		return image.Rect(0, y, width, bottom)
	}
}

// ZoneAt resolves the zone index containing pt, or -1 when pt hits no
// zone.
func (s *Screen) ZoneAt(pt image.Point, width, height int) int {
	for i := range s.Widgets {
		if pt.In(s.ZoneBounds(i, width, height)) {
			return i
		}
	}
	return -1
}

// DetailScreen returns the screen name linked to zone, if any.
func (s *Screen) DetailScreen(zone int) (string, bool) {
	name, ok := s.DetailLinks[zone]
	return name, ok
}

// Render paints every widget into its zone with separator lines between
// zones.
func (s *Screen) Render(r *display.Renderer) {
	width, height := r.Size()
	for i, w := range s.Widgets {
		bounds := s.ZoneBounds(i, width, height)
		w.Render(r, bounds)
	}

	switch s.Layout {
	case LayoutQuadrant:
		if len(s.Widgets) > 1 {
			r.VLine(width/2, 0, height-1)
		}
		if len(s.Widgets) > 2 {
			r.HLine(0, width-1, height/2)
		}
	default:
		for i := 1; i < len(s.Widgets); i++ {
			r.HLine(0, width-1, s.ZoneBounds(i, width, height).Min.Y)
		}
	}
}
