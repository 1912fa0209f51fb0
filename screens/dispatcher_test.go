package screens

import (
	"image"
	"testing"

	"github.com/inkdash/inkdash/touch"
	"github.com/inkdash/inkdash/widgets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(m *Manager) *Dispatcher {
	return NewDispatcher(m, NewNumpad(250, 122), 0.2, 250, 122)
}

func TestDispatchSwipeLeftAdvancesAndWraps(t *testing.T) {
	m := newTestManager("a", "b", "c", "d", "e")
	d := newTestDispatcher(m)
	require.NoError(t, m.GoToIndex(4))

	assert.True(t, d.Dispatch(touch.Gesture{Kind: touch.SwipeLeft}))
	assert.Equal(t, 0, m.Index())
}

func TestDispatchSwipeRightGoesBack(t *testing.T) {
	m := newTestManager("a", "b", "c")
	d := newTestDispatcher(m)

	assert.True(t, d.Dispatch(touch.Gesture{Kind: touch.SwipeRight}))
	assert.Equal(t, 2, m.Index())
}

func TestDispatchVerticalSwipesAreNoOps(t *testing.T) {
	m := newTestManager("a", "b")
	d := newTestDispatcher(m)

	assert.False(t, d.Dispatch(touch.Gesture{Kind: touch.SwipeUp}))
	assert.False(t, d.Dispatch(touch.Gesture{Kind: touch.SwipeDown}))
	assert.Equal(t, 0, m.Index())
}

func TestDispatchLongPressIsNoOp(t *testing.T) {
	m := newTestManager("a", "b")
	d := newTestDispatcher(m)

	assert.False(t, d.Dispatch(touch.Gesture{Kind: touch.LongPress, Pos: image.Pt(100, 60)}))
	assert.Equal(t, 0, m.Index())
}

func TestDispatchEdgeTapBeatsZoneDelegation(t *testing.T) {
	// screen "b" links its zone 0 (which covers x=5) to a detail screen;
	// the edge band still wins
	detail := &Screen{Name: "detail", Widgets: widgetList("d")}
	b := &Screen{
		Name:        "b",
		Widgets:     widgetList("w"),
		DetailLinks: map[int]string{0: "detail"},
	}
	a := &Screen{Name: "a", Widgets: widgetList("w")}
	m := NewManager([]*Screen{a, b, detail})
	d := newTestDispatcher(m)
	require.NoError(t, m.GoToIndex(1))

	assert.True(t, d.Dispatch(touch.Gesture{Kind: touch.Tap, Pos: image.Pt(5, 60)}))
	assert.Equal(t, 0, m.Index(), "left edge tap navigates to previous screen")
}

func TestDispatchRightEdgeTapAdvances(t *testing.T) {
	m := newTestManager("a", "b")
	d := newTestDispatcher(m)

	assert.True(t, d.Dispatch(touch.Gesture{Kind: touch.Tap, Pos: image.Pt(245, 60)}))
	assert.Equal(t, 1, m.Index())
}

func TestDispatchInteriorTapFollowsDetailLink(t *testing.T) {
	home := &Screen{
		Name:        "home",
		Widgets:     widgetList("w"),
		DetailLinks: map[int]string{0: "detail"},
	}
	detail := &Screen{Name: "detail", Widgets: widgetList("d")}
	m := NewManager([]*Screen{home, detail})
	d := newTestDispatcher(m)

	assert.True(t, d.Dispatch(touch.Gesture{Kind: touch.Tap, Pos: image.Pt(125, 60)}))
	assert.Equal(t, "detail", m.Current().Name)
}

func TestDispatchInteriorTapPassesThroughToWidget(t *testing.T) {
	w := &tappableWidget{stubWidget: stubWidget{name: "news"}}
	home := &Screen{Name: "home", Widgets: []widgets.Widget{w}}
	m := NewManager([]*Screen{home, {Name: "other", Widgets: widgetList("x")}})
	d := newTestDispatcher(m)

	assert.True(t, d.Dispatch(touch.Gesture{Kind: touch.Tap, Pos: image.Pt(125, 60)}))
	require.Len(t, w.taps, 1)
	assert.Equal(t, image.Pt(125, 60), w.taps[0])
	assert.Equal(t, 0, m.Index())
}

func TestDispatchInteriorTapNoHandlerNoDetail(t *testing.T) {
	m := newTestManager("a", "b")
	d := newTestDispatcher(m)

	assert.False(t, d.Dispatch(touch.Gesture{Kind: touch.Tap, Pos: image.Pt(125, 60)}))
}

func TestDispatchOverlayConsumesEverything(t *testing.T) {
	m := newTestManager("a", "b", "c")
	d := newTestDispatcher(m)
	d.Overlay.Show("PIN", 4, nil, nil)

	assert.True(t, d.Dispatch(touch.Gesture{Kind: touch.SwipeLeft}))
	assert.True(t, d.Dispatch(touch.Gesture{Kind: touch.Tap, Pos: image.Pt(5, 60)}))
	assert.True(t, d.Dispatch(touch.Gesture{Kind: touch.LongPress}))
	assert.Equal(t, 0, m.Index(), "screen index unchanged while overlay is open")
}

func TestDispatchAfterOverlayClosesNavigationResumes(t *testing.T) {
	m := newTestManager("a", "b")
	d := newTestDispatcher(m)
	d.Overlay.Show("PIN", 4, nil, nil)
	d.Overlay.Close()

	assert.True(t, d.Dispatch(touch.Gesture{Kind: touch.SwipeLeft}))
	assert.Equal(t, 1, m.Index())
}

func TestDispatchBrokenDetailLink(t *testing.T) {
	home := &Screen{
		Name:        "home",
		Widgets:     widgetList("w"),
		DetailLinks: map[int]string{0: "missing"},
	}
	m := NewManager([]*Screen{home, {Name: "b", Widgets: widgetList("x")}})
	d := newTestDispatcher(m)

	assert.False(t, d.Dispatch(touch.Gesture{Kind: touch.Tap, Pos: image.Pt(125, 60)}))
	assert.Equal(t, 0, m.Index())
}
