// Package config loads and saves the dashboard configuration from an INI
// file, applying defaults for anything missing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/inkdash/inkdash/utils"
	"gopkg.in/ini.v1"
)

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.ini"
	}
	return filepath.Join(home, ".config", "inkdash", "config.ini")
}

type DisplayConfig struct {
	Width            int           `ini:"width"`
	Height           int           `ini:"height"`
	Rotation         int           `ini:"rotation"`
	Partial          bool          `ini:"partial"`
	MaxPartials      int           `ini:"max_partials"`
	FullRefreshEvery time.Duration `ini:"full_refresh_every"`
}

type TouchConfig struct {
	Enabled            bool          `ini:"enabled"`
	Backend            string        `ini:"backend"` // "gt1151", "evdev" or "none"
	I2CBus             string        `ini:"i2c_bus"`
	EvdevPath          string        `ini:"evdev_path"`
	SensorWidth        int           `ini:"sensor_width"`
	SensorHeight       int           `ini:"sensor_height"`
	PollInterval       time.Duration `ini:"poll_interval"`
	SwipeThresholdPx   int           `ini:"swipe_threshold_px"`
	LongPressThreshold time.Duration `ini:"long_press_threshold"`
	// TapTimeout documents the intended maximum tap duration. Gesture
	// classification does not gate on it: a motionless release is a tap
	// no matter how long the finger rested.
	TapTimeout       time.Duration `ini:"tap_timeout"`
	EdgeZoneFraction float64       `ini:"edge_zone_fraction"`
}

type RefreshConfig struct {
	Interval time.Duration `ini:"interval"`
}

type ServerConfig struct {
	Enabled bool   `ini:"enabled"`
	Listen  string `ini:"listen"`
	CORS    bool   `ini:"cors"`
}

type WeatherConfig struct {
	Latitude     float64 `ini:"latitude"`
	Longitude    float64 `ini:"longitude"`
	LocationName string  `ini:"location_name"`
	ZipCode      string  `ini:"zip_code"`
	Units        string  `ini:"units"` // "fahrenheit" or "celsius"
	ForecastDays int     `ini:"forecast_days"`
}

type PortfolioConfig struct {
	Symbols       []string `ini:"symbols" delim:","`
	FinnhubAPIKey string   `ini:"finnhub_api_key"`
}

// Feed is a single RSS source.
type Feed struct {
	URL  string
	Name string
}

type NewsConfig struct {
	// Feeds are stored as "url|name" entries.
	Feeds        []string `ini:"feeds" delim:","`
	MaxHeadlines int      `ini:"max_headlines"`
}

// FeedList parses the configured feeds into URL/name pairs.
func (n NewsConfig) FeedList() []Feed {
	feeds := make([]Feed, 0, len(n.Feeds))
	for _, entry := range n.Feeds {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "|", 2)
		feed := Feed{URL: parts[0], Name: parts[0]}
		if len(parts) == 2 && parts[1] != "" {
			feed.Name = parts[1]
		}
		feeds = append(feeds, feed)
	}
	return feeds
}

type NetworkConfig struct {
	PingTarget string `ini:"ping_target"`
	Privileged bool   `ini:"privileged"`
}

// ScreenConfig describes one screen: its widgets, layout policy and
// optional per-zone detail screen links.
type ScreenConfig struct {
	Name    string
	Widgets []string
	Layout  string // "vertical" or "quadrant"
	// Details maps a zone index to the name of the screen a tap on that
	// zone jumps to.
	Details map[int]string
}

type Config struct {
	path string

	Display   DisplayConfig
	Touch     TouchConfig
	Refresh   RefreshConfig
	Server    ServerConfig
	Weather   WeatherConfig
	Portfolio PortfolioConfig
	News      NewsConfig
	Network   NetworkConfig
	Screens   []ScreenConfig
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:            250,
			Height:           122,
			Rotation:         90,
			Partial:          true,
			MaxPartials:      6,
			FullRefreshEvery: 24 * time.Hour,
		},
		Touch: TouchConfig{
			Enabled:            true,
			Backend:            "gt1151",
			I2CBus:             "1",
			EvdevPath:          "",
			SensorWidth:        122,
			SensorHeight:       250,
			PollInterval:       50 * time.Millisecond,
			SwipeThresholdPx:   30,
			LongPressThreshold: 2 * time.Second,
			TapTimeout:         500 * time.Millisecond,
			EdgeZoneFraction:   0.2,
		},
		Refresh: RefreshConfig{
			Interval: 15 * time.Minute,
		},
		Server: ServerConfig{
			Enabled: true,
			Listen:  "localhost:12600",
			CORS:    false,
		},
		Weather: WeatherConfig{
			Latitude:     40.7128,
			Longitude:    -74.0060,
			Units:        "fahrenheit",
			ForecastDays: 3,
		},
		Portfolio: PortfolioConfig{
			Symbols: []string{"AAPL", "BTC"},
		},
		News: NewsConfig{
			Feeds: []string{
				"https://feeds.bbci.co.uk/news/technology/rss.xml|BBC Tech",
				"https://news.ycombinator.com/rss|Hacker News",
			},
			MaxHeadlines: 5,
		},
		Network: NetworkConfig{
			PingTarget: "8.8.8.8",
		},
		Screens: []ScreenConfig{
			{Name: "home", Widgets: []string{"clock", "weather"}, Layout: "vertical"},
			{Name: "markets", Widgets: []string{"portfolio"}, Layout: "vertical"},
			{Name: "news", Widgets: []string{"news"}, Layout: "vertical"},
			{Name: "network", Widgets: []string{"network"}, Layout: "vertical"},
		},
	}
}

// Load reads the configuration at path. A missing file is not an error:
// defaults are returned and will be written out on the next Save.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		utils.Verbose("config file %s not found, using defaults", path)
		cfg.Validate()
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := mapSections(file, cfg); err != nil {
		return nil, err
	}

	screens, err := parseScreens(file)
	if err != nil {
		return nil, err
	}
	if len(screens) > 0 {
		cfg.Screens = screens
	}

	cfg.Validate()
	return cfg, nil
}

func mapSections(file *ini.File, cfg *Config) error {
	for name, target := range cfg.sectionTargets() {
		if sec, err := file.GetSection(name); err == nil {
			if err := sec.MapTo(target); err != nil {
				return fmt.Errorf("invalid [%s] section: %w", name, err)
			}
		}
	}
	return nil
}

// parseScreens reads [screen.<name>] child sections in file order.
func parseScreens(file *ini.File) ([]ScreenConfig, error) {
	var screens []ScreenConfig
	for _, sec := range file.Sections() {
		if !strings.HasPrefix(sec.Name(), "screen.") {
			continue
		}
		name := strings.TrimPrefix(sec.Name(), "screen.")
		screen := ScreenConfig{
			Name:    name,
			Widgets: sec.Key("widgets").Strings(","),
			Layout:  sec.Key("layout").MustString("vertical"),
		}
		if details := sec.Key("details").String(); details != "" {
			screen.Details = make(map[int]string)
			for _, pair := range strings.Split(details, ",") {
				parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
				if len(parts) != 2 {
					return nil, fmt.Errorf("screen %s: invalid details entry %q, expected zone:screen", name, pair)
				}
				zone, err := strconv.Atoi(parts[0])
				if err != nil {
					return nil, fmt.Errorf("screen %s: invalid zone index %q", name, parts[0])
				}
				screen.Details[zone] = parts[1]
			}
		}
		screens = append(screens, screen)
	}
	return screens, nil
}

// Validate clamps out-of-range values back to safe defaults. An unknown
// rotation falls back to identity; this is flagged here rather than at
// transform time so the fallback is visible once, at startup.
func (c *Config) Validate() {
	switch c.Display.Rotation {
	case 0, 90, 180, 270:
	default:
		utils.Warn("unknown display rotation %d, falling back to 0 (identity)", c.Display.Rotation)
		c.Display.Rotation = 0
	}
	if c.Touch.EdgeZoneFraction <= 0 || c.Touch.EdgeZoneFraction >= 0.5 {
		utils.Warn("edge_zone_fraction %.2f out of range (0, 0.5), using 0.2", c.Touch.EdgeZoneFraction)
		c.Touch.EdgeZoneFraction = 0.2
	}
	if c.Touch.SwipeThresholdPx <= 0 {
		c.Touch.SwipeThresholdPx = 30
	}
	if c.Touch.LongPressThreshold <= 0 {
		c.Touch.LongPressThreshold = 2 * time.Second
	}
	if c.Touch.PollInterval <= 0 {
		c.Touch.PollInterval = 50 * time.Millisecond
	}
	if c.Refresh.Interval < time.Minute {
		c.Refresh.Interval = time.Minute
	}
	if len(c.Screens) == 0 {
		c.Screens = Default().Screens
	}
}

// Path returns the file this configuration was loaded from.
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultPath()
	}
	return c.path
}

// Save writes the configuration back to its file, creating parent
// directories as needed.
func (c *Config) Save() error {
	path := c.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file := ini.Empty()
	for name, source := range c.sectionTargets() {
		sec, err := file.NewSection(name)
		if err != nil {
			return err
		}
		if err := sec.ReflectFrom(source); err != nil {
			return fmt.Errorf("failed to serialize [%s]: %w", name, err)
		}
	}

	for _, screen := range c.Screens {
		sec, err := file.NewSection("screen." + screen.Name)
		if err != nil {
			return err
		}
		sec.Key("widgets").SetValue(strings.Join(screen.Widgets, ","))
		sec.Key("layout").SetValue(screen.Layout)
		if len(screen.Details) > 0 {
			var pairs []string
			for zone, target := range screen.Details {
				pairs = append(pairs, fmt.Sprintf("%d:%s", zone, target))
			}
			sec.Key("details").SetValue(strings.Join(pairs, ","))
		}
	}

	return file.SaveTo(path)
}
