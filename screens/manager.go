package screens

import (
	"fmt"

	"github.com/inkdash/inkdash/display"
	"github.com/inkdash/inkdash/utils"
)

// Manager owns the ordered screens and the current index. Navigation
// wraps modulo the screen count. The index has a single writer, the
// dispatch loop, so no locking happens here.
type Manager struct {
	screens []*Screen
	index   int
}

func NewManager(screens []*Screen) *Manager {
	return &Manager{screens: screens}
}

// Current returns the active screen, or nil when no screens exist.
func (m *Manager) Current() *Screen {
	if len(m.screens) == 0 {
		return nil
	}
	return m.screens[m.index]
}

func (m *Manager) Index() int { return m.index }

func (m *Manager) Count() int { return len(m.screens) }

// Names returns the screen names in order.
func (m *Manager) Names() []string {
	names := make([]string, len(m.screens))
	for i, s := range m.screens {
		names[i] = s.Name
	}
	return names
}

// Next advances to the following screen, wrapping at the end.
func (m *Manager) Next() bool {
	if len(m.screens) < 2 {
		return false
	}
	m.index = (m.index + 1) % len(m.screens)
	utils.Verbose("screens: -> %s", m.Current().Name)
	return true
}

// Previous steps back to the prior screen, wrapping at the start.
func (m *Manager) Previous() bool {
	if len(m.screens) < 2 {
		return false
	}
	m.index = (m.index - 1 + len(m.screens)) % len(m.screens)
	utils.Verbose("screens: -> %s", m.Current().Name)
	return true
}

// GoToName jumps to the screen called name.
func (m *Manager) GoToName(name string) error {
	for i, s := range m.screens {
		if s.Name == name {
			m.index = i
			return nil
		}
	}
	return fmt.Errorf("unknown screen: %s", name)
}

// GoToIndex jumps to screen i.
func (m *Manager) GoToIndex(i int) error {
	if i < 0 || i >= len(m.screens) {
		return fmt.Errorf("screen index %d out of range", i)
	}
	m.index = i
	return nil
}

// Render draws the current screen plus the page indicator dots along the
// bottom edge.
func (m *Manager) Render(r *display.Renderer) {
	r.Clear()
	current := m.Current()
	if current == nil {
		return
	}
	current.Render(r)

	if len(m.screens) < 2 {
		return
	}
	width, height := r.Size()
	const dotSpacing = 10
	startX := width/2 - (len(m.screens)-1)*dotSpacing/2
	for i := range m.screens {
		r.Circle(startX+i*dotSpacing, height-4, 2, i == m.index)
	}
}
