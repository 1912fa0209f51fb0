package screens

import (
	"image"

	"github.com/inkdash/inkdash/touch"
	"github.com/inkdash/inkdash/utils"
	"github.com/inkdash/inkdash/widgets"
)

// Dispatcher routes gestures to the overlay, screen navigation or the
// current screen's widgets, in that precedence order.
type Dispatcher struct {
	Manager      *Manager
	Overlay      *Numpad
	EdgeFraction float64
	Width        int
	Height       int
}

func NewDispatcher(m *Manager, overlay *Numpad, edgeFraction float64, width, height int) *Dispatcher {
	return &Dispatcher{
		Manager:      m,
		Overlay:      overlay,
		EdgeFraction: edgeFraction,
		Width:        width,
		Height:       height,
	}
}

// Dispatch routes one gesture and reports whether the frame needs a
// redraw.
func (d *Dispatcher) Dispatch(g touch.Gesture) bool {
	// The overlay owns the event stream while open. It consumes
	// everything, swipes included, so the screen index cannot move
	// underneath it.
	if d.Overlay != nil && d.Overlay.Active() {
		return d.Overlay.Handle(g)
	}

	switch g.Kind {
	case touch.SwipeLeft:
		return d.Manager.Next()
	case touch.SwipeRight:
		return d.Manager.Previous()
	case touch.SwipeUp, touch.SwipeDown:
		return false
	case touch.LongPress:
		// reserved
		return false
	case touch.Tap:
		return d.tap(g.Pos)
	}
	return false
}

// tap applies edge-zone navigation first, then zone delegation. A tap in
// the edge band always navigates, even when a widget zone sits under it.
func (d *Dispatcher) tap(pos image.Point) bool {
	edge := int(float64(d.Width) * d.EdgeFraction)
	if pos.X < edge {
		return d.Manager.Previous()
	}
	if pos.X >= d.Width-edge {
		return d.Manager.Next()
	}

	screen := d.Manager.Current()
	if screen == nil {
		return false
	}
	zone := screen.ZoneAt(pos, d.Width, d.Height)
	if zone < 0 {
		return false
	}
	if target, ok := screen.DetailScreen(zone); ok {
		if err := d.Manager.GoToName(target); err != nil {
			utils.Warn("dispatch: detail link from %s zone %d: %v", screen.Name, zone, err)
			return false
		}
		return true
	}

	// no detail link, the widget itself gets a crack at the tap
	if handler, ok := screen.Widgets[zone].(widgets.TapHandler); ok {
		handler.HandleTap(pos)
		return true
	}
	return false
}
