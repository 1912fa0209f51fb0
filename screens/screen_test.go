package screens

import (
	"image"
	"testing"

	"github.com/inkdash/inkdash/display"
	"github.com/inkdash/inkdash/widgets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubWidget fills in for real widgets in navigation tests.
type stubWidget struct {
	name string
	taps []image.Point
}

func (s *stubWidget) Name() string  { return s.name }
func (s *stubWidget) Update() error { return nil }
func (s *stubWidget) Render(r *display.Renderer, bounds image.Rectangle) {
	r.Rect(bounds)
}

// tappableWidget additionally records taps.
type tappableWidget struct {
	stubWidget
}

func (t *tappableWidget) HandleTap(pos image.Point) {
	t.taps = append(t.taps, pos)
}

func widgetList(names ...string) []widgets.Widget {
	out := make([]widgets.Widget, len(names))
	for i, name := range names {
		out[i] = &stubWidget{name: name}
	}
	return out
}

func TestVerticalZones(t *testing.T) {
	s := &Screen{
		Name:    "home",
		Layout:  LayoutVertical,
		Widgets: widgetList("a", "b"),
	}

	assert.Equal(t, image.Rect(0, 0, 250, 61), s.ZoneBounds(0, 250, 122))
	// last band absorbs the rounding remainder
	assert.Equal(t, image.Rect(0, 61, 250, 122), s.ZoneBounds(1, 250, 122))

	assert.Equal(t, 0, s.ZoneAt(image.Pt(100, 10), 250, 122))
	assert.Equal(t, 1, s.ZoneAt(image.Pt(100, 100), 250, 122))
}

func TestQuadrantZones(t *testing.T) {
	s := &Screen{
		Name:    "grid",
		Layout:  LayoutQuadrant,
		Widgets: widgetList("a", "b", "c", "d"),
	}

	assert.Equal(t, 0, s.ZoneAt(image.Pt(10, 10), 250, 122))
	assert.Equal(t, 1, s.ZoneAt(image.Pt(200, 10), 250, 122))
	assert.Equal(t, 2, s.ZoneAt(image.Pt(10, 100), 250, 122))
	assert.Equal(t, 3, s.ZoneAt(image.Pt(200, 100), 250, 122))
}

func TestZoneAtMiss(t *testing.T) {
	s := &Screen{Name: "empty", Layout: LayoutVertical}
	assert.Equal(t, -1, s.ZoneAt(image.Pt(10, 10), 250, 122))
}

func TestDetailScreenLookup(t *testing.T) {
	s := &Screen{
		Name:        "home",
		Widgets:     widgetList("a", "b"),
		DetailLinks: map[int]string{1: "detail"},
	}

	_, ok := s.DetailScreen(0)
	assert.False(t, ok)

	name, ok := s.DetailScreen(1)
	require.True(t, ok)
	assert.Equal(t, "detail", name)
}

func TestParseLayout(t *testing.T) {
	assert.Equal(t, LayoutQuadrant, ParseLayout("quadrant"))
	assert.Equal(t, LayoutVertical, ParseLayout("vertical"))
	assert.Equal(t, LayoutVertical, ParseLayout(""))
}

func TestScreenRenderPaintsEveryZone(t *testing.T) {
	s := &Screen{
		Name:    "grid",
		Layout:  LayoutQuadrant,
		Widgets: widgetList("a", "b", "c", "d"),
	}
	r := display.NewRenderer(250, 122)
	s.Render(r)

	// separator lines cross the center
	assert.EqualValues(t, 0, r.Image().GrayAt(125, 30).Y)
	assert.EqualValues(t, 0, r.Image().GrayAt(60, 61).Y)
}
