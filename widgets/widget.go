// Package widgets contains the dashboard's data widgets. A widget fetches
// its data in Update and paints itself into a bounds rectangle in Render;
// the two are separated so a screen change can redraw instantly from the
// last fetched data.
package widgets

import (
	"fmt"
	"image"
	"sort"

	"github.com/inkdash/inkdash/display"
)

// Widget is a rectangular dashboard element.
type Widget interface {
	// Name is the identifier used in screen configuration.
	Name() string
	// Update refreshes the widget's data. It may block on the network.
	Update() error
	// Render paints the widget into bounds on r.
	Render(r *display.Renderer, bounds image.Rectangle)
}

// TapHandler is implemented by widgets that react to taps landing inside
// their bounds.
type TapHandler interface {
	HandleTap(pos image.Point)
}

// Registry holds the instantiated widgets by name.
type Registry struct {
	widgets map[string]Widget
}

func NewRegistry() *Registry {
	return &Registry{widgets: make(map[string]Widget)}
}

func (reg *Registry) Register(w Widget) {
	reg.widgets[w.Name()] = w
}

// Get returns the widget registered under name.
func (reg *Registry) Get(name string) (Widget, error) {
	w, ok := reg.widgets[name]
	if !ok {
		return nil, fmt.Errorf("unknown widget: %s", name)
	}
	return w, nil
}

// Names returns the registered widget names, sorted.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.widgets))
	for name := range reg.widgets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UpdateAll refreshes every registered widget, returning the first error
// after trying them all.
func (reg *Registry) UpdateAll() error {
	var firstErr error
	for _, name := range reg.Names() {
		if err := reg.widgets[name].Update(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("widget %s: %w", name, err)
		}
	}
	return firstErr
}
