// Package dashboard runs the main loop: poll the touch sensor, recognize
// gestures, dispatch them to navigation, refresh widget data on a slower
// cadence and push composited frames to the display.
package dashboard

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/inkdash/inkdash/cache"
	"github.com/inkdash/inkdash/config"
	"github.com/inkdash/inkdash/display"
	"github.com/inkdash/inkdash/screens"
	"github.com/inkdash/inkdash/touch"
	"github.com/inkdash/inkdash/utils"
	"github.com/inkdash/inkdash/widgets"
)

// ScreenInfo describes one screen for the RPC surface.
type ScreenInfo struct {
	Name   string `json:"name"`
	Index  int    `json:"index"`
	Active bool   `json:"active"`
}

// Dashboard owns all UI state. The poll loop is the primary writer; RPC
// handlers from the settings server take the same lock, so every state
// mutation is serialized.
type Dashboard struct {
	cfg    *config.Config
	sensor touch.Sensor
	driver display.Driver
	store  *cache.Cache

	registry    *widgets.Registry
	manager     *screens.Manager
	overlay     *screens.Numpad
	dispatcher  *screens.Dispatcher
	transformer touch.Transformer
	recognizer  *touch.Recognizer
	renderer    *display.Renderer

	events *broker

	mu          sync.Mutex
	lastPollErr string
}

// New wires a dashboard from its collaborators. sensor may be nil when
// touch is disabled.
func New(cfg *config.Config, sensor touch.Sensor, driver display.Driver, store *cache.Cache) (*Dashboard, error) {
	registry := widgets.NewRegistry()
	registry.Register(widgets.NewClock())
	registry.Register(widgets.NewWeather(cfg.Weather, store))
	registry.Register(widgets.NewPortfolio(cfg.Portfolio, store))
	registry.Register(widgets.NewNews(cfg.News, store))
	registry.Register(widgets.NewNetwork(cfg.Network))

	screenList, err := buildScreens(cfg.Screens, registry)
	if err != nil {
		return nil, err
	}

	width, height := cfg.Display.Width, cfg.Display.Height
	manager := screens.NewManager(screenList)
	overlay := screens.NewNumpad(width, height)

	d := &Dashboard{
		cfg:         cfg,
		sensor:      sensor,
		driver:      driver,
		store:       store,
		registry:    registry,
		manager:     manager,
		overlay:     overlay,
		dispatcher:  screens.NewDispatcher(manager, overlay, cfg.Touch.EdgeZoneFraction, width, height),
		transformer: touch.NewTransformer(cfg.Display.Rotation, cfg.Touch.SensorWidth, cfg.Touch.SensorHeight),
		recognizer:  touch.NewRecognizer(cfg.Touch.SwipeThresholdPx, cfg.Touch.LongPressThreshold),
		renderer:    display.NewRenderer(width, height),
		events:      newBroker(),
	}
	return d, nil
}

// buildScreens instantiates the configured screens against the widget
// registry.
func buildScreens(configs []config.ScreenConfig, registry *widgets.Registry) ([]*screens.Screen, error) {
	out := make([]*screens.Screen, 0, len(configs))
	for _, sc := range configs {
		screen := &screens.Screen{
			Name:        sc.Name,
			Layout:      screens.ParseLayout(sc.Layout),
			DetailLinks: sc.Details,
		}
		for _, name := range sc.Widgets {
			w, err := registry.Get(name)
			if err != nil {
				return nil, fmt.Errorf("screen %s: %w", sc.Name, err)
			}
			screen.Widgets = append(screen.Widgets, w)
		}
		out = append(out, screen)
	}
	return out, nil
}

// Run drives the poll and refresh loops until ctx is canceled.
func (d *Dashboard) Run(ctx context.Context) error {
	if err := d.driver.Init(); err != nil {
		return fmt.Errorf("display init: %w", err)
	}

	if err := d.RefreshWidgets(); err != nil {
		utils.Warn("initial widget refresh: %v", err)
	}

	refresh := time.NewTicker(d.cfg.Refresh.Interval)
	defer refresh.Stop()

	var poll *time.Ticker
	var pollC <-chan time.Time
	if d.sensor != nil {
		poll = time.NewTicker(d.cfg.Touch.PollInterval)
		defer poll.Stop()
		pollC = poll.C
	}

	for {
		select {
		case <-ctx.Done():
			d.events.Close()
			_ = d.driver.Sleep()
			return ctx.Err()
		case <-pollC:
			d.pollOnce()
		case <-refresh.C:
			if err := d.RefreshWidgets(); err != nil {
				utils.Warn("widget refresh: %v", err)
			}
		}
	}
}

// RunOnce refreshes every widget and renders a single frame, for
// cron-style invocations without a resident process.
func (d *Dashboard) RunOnce() error {
	if err := d.driver.Init(); err != nil {
		return fmt.Errorf("display init: %w", err)
	}
	if err := d.RefreshWidgets(); err != nil {
		utils.Warn("widget refresh: %v", err)
	}
	return d.driver.Sleep()
}

// pollOnce reads one sample and advances the gesture state machine. A
// poll error skips the cycle and keeps the open session; the error is
// logged once per distinct message, not per poll.
func (d *Dashboard) pollOnce() {
	sample, err := d.sensor.Poll()
	if err != nil {
		msg := err.Error()
		d.mu.Lock()
		if msg != d.lastPollErr {
			d.lastPollErr = msg
			utils.Warn("touch poll: %v", err)
		}
		d.mu.Unlock()
		return
	}
	d.mu.Lock()
	d.lastPollErr = ""
	d.mu.Unlock()
	d.handleSample(sample)
}

// handleSample transforms a raw sample into display space and feeds the
// recognizer. The controller's (0,0) noise value is passed through
// untransformed so the recognizer can spot it.
func (d *Dashboard) handleSample(s touch.Sample) {
	if s.Active && (s.X != 0 || s.Y != 0) {
		s.X, s.Y = d.transformer.Apply(s.X, s.Y)
	}

	d.mu.Lock()
	gesture := d.recognizer.Feed(s)
	d.mu.Unlock()
	if gesture == nil {
		return
	}
	d.HandleGesture(*gesture)
}

// HandleGesture dispatches a recognized gesture and redraws when it
// changed anything on screen.
func (d *Dashboard) HandleGesture(g touch.Gesture) {
	utils.Verbose("gesture: %s", g)
	d.events.Publish(EventGesture, map[string]interface{}{
		"kind": g.Kind.String(),
		"x":    g.Pos.X,
		"y":    g.Pos.Y,
	})

	d.mu.Lock()
	before := d.manager.Index()
	changed := d.dispatcher.Dispatch(g)
	after := d.manager.Index()
	d.mu.Unlock()

	if after != before {
		d.events.Publish(EventScreen, map[string]interface{}{
			"name":  d.CurrentScreen(),
			"index": after,
		})
	}
	if changed {
		d.render()
	}
}

// InjectGesture feeds a synthetic gesture into the dispatcher, as if the
// sensor had produced it.
func (d *Dashboard) InjectGesture(kind string, x, y int) error {
	k, err := touch.ParseGestureKind(kind)
	if err != nil {
		return err
	}
	d.HandleGesture(touch.Gesture{Kind: k, Pos: image.Pt(x, y)})
	return nil
}

// RefreshWidgets re-fetches every widget's data and renders a frame.
func (d *Dashboard) RefreshWidgets() error {
	err := d.registry.UpdateAll()
	d.events.Publish(EventRefresh, nil)
	d.render()
	return err
}

// render composites the current screen (and overlay, when open) and
// pushes the frame to the display.
func (d *Dashboard) render() {
	d.mu.Lock()
	d.manager.Render(d.renderer)
	if d.overlay.Active() {
		d.overlay.Render(d.renderer)
	}
	frame := d.renderer.Snapshot()
	d.mu.Unlock()

	if err := d.driver.Render(frame, d.cfg.Display.Partial); err != nil {
		utils.Error("display render: %v", err)
	}
}

// Screens lists the configured screens.
func (d *Dashboard) Screens() []ScreenInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := d.manager.Names()
	out := make([]ScreenInfo, len(names))
	for i, name := range names {
		out[i] = ScreenInfo{Name: name, Index: i, Active: i == d.manager.Index()}
	}
	return out
}

// CurrentScreen returns the active screen's name.
func (d *Dashboard) CurrentScreen() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s := d.manager.Current(); s != nil {
		return s.Name
	}
	return ""
}

// GoToScreen jumps to the named screen and redraws.
func (d *Dashboard) GoToScreen(name string) error {
	d.mu.Lock()
	err := d.manager.GoToName(name)
	index := d.manager.Index()
	d.mu.Unlock()
	if err != nil {
		return err
	}
	d.events.Publish(EventScreen, map[string]interface{}{"name": name, "index": index})
	d.render()
	return nil
}

// FramePNG returns the current frame as base64-encoded PNG.
func (d *Dashboard) FramePNG() (string, error) {
	d.mu.Lock()
	frame := d.renderer.Snapshot()
	d.mu.Unlock()
	return utils.EncodePngBase64(frame)
}

// PromptZIP opens the numpad to enter a 5-digit postal code for the
// weather widget. Submitting saves the config and refetches weather.
func (d *Dashboard) PromptZIP() {
	d.mu.Lock()
	d.overlay.Show("ZIP", 5, func(zip string) {
		d.events.Publish(EventOverlay, map[string]interface{}{"action": "submit", "value": zip})
		d.cfg.Weather.ZipCode = zip
		if err := d.cfg.Save(); err != nil {
			utils.Warn("saving config after ZIP entry: %v", err)
		}
		d.store.Invalidate("weather")
		go func() {
			if err := d.RefreshWidgets(); err != nil {
				utils.Warn("weather refresh after ZIP entry: %v", err)
			}
		}()
	}, func() {
		d.events.Publish(EventOverlay, map[string]interface{}{"action": "cancel"})
	})
	d.mu.Unlock()
	d.events.Publish(EventOverlay, map[string]interface{}{"action": "show", "title": "ZIP"})
	d.render()
}

// Config returns the live configuration.
func (d *Dashboard) Config() *config.Config {
	return d.cfg
}

// Subscribe registers an event stream subscriber.
func (d *Dashboard) Subscribe() (string, <-chan Event) {
	return d.events.Subscribe()
}

// Unsubscribe drops an event stream subscriber.
func (d *Dashboard) Unsubscribe(id string) {
	d.events.Unsubscribe(id)
}

// Close releases the display and sensor.
func (d *Dashboard) Close() error {
	if d.sensor != nil {
		if err := d.sensor.Close(); err != nil {
			utils.Warn("closing touch sensor: %v", err)
		}
	}
	return d.driver.Close()
}
