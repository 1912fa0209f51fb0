package widgets

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/inkdash/inkdash/cache"
	"github.com/inkdash/inkdash/config"
	"github.com/inkdash/inkdash/display"
	"github.com/inkdash/inkdash/utils"
)

const (
	openMeteoURL    = "https://api.open-meteo.com/v1/forecast"
	geocodingURL    = "https://geocoding-api.open-meteo.com/v1/search"
	weatherCacheTTL = 30 * time.Minute
)

// wmoConditions maps WMO weather interpretation codes to short labels
// that fit a 1-bit panel.
var wmoConditions = map[int]string{
	0:  "Clear",
	1:  "Mostly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Rime fog",
	51: "Light drizzle",
	53: "Drizzle",
	55: "Heavy drizzle",
	61: "Light rain",
	63: "Rain",
	65: "Heavy rain",
	66: "Freezing rain",
	67: "Freezing rain",
	71: "Light snow",
	73: "Snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Showers",
	81: "Showers",
	82: "Heavy showers",
	85: "Snow showers",
	86: "Snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm",
	99: "Thunderstorm",
}

func conditionLabel(code int) string {
	if label, ok := wmoConditions[code]; ok {
		return label
	}
	return fmt.Sprintf("Code %d", code)
}

type forecastDay struct {
	Date string
	High float64
	Low  float64
	Code int
}

type weatherData struct {
	Temperature float64       `json:"temperature"`
	Code        int           `json:"code"`
	Days        []forecastDay `json:"days"`
}

// Weather fetches current conditions and a short forecast from the
// Open-Meteo API. Responses go through the TTL cache so a redraw never
// hits the network.
type Weather struct {
	cfg    config.WeatherConfig
	cache  *cache.Cache
	client *http.Client

	// overridable in tests
	forecastURL string
	geocodeURL  string

	data *weatherData
	err  error
}

func NewWeather(cfg config.WeatherConfig, c *cache.Cache) *Weather {
	return &Weather{
		cfg:         cfg,
		cache:       c,
		client:      &http.Client{Timeout: 10 * time.Second},
		forecastURL: openMeteoURL,
		geocodeURL:  geocodingURL,
	}
}

func (w *Weather) Name() string { return "weather" }

func (w *Weather) Update() error {
	data, err := w.cache.Get("weather", weatherCacheTTL, w.fetch)
	if err != nil {
		w.err = err
		return err
	}
	var parsed weatherData
	if err := json.Unmarshal(data, &parsed); err != nil {
		w.err = err
		return err
	}
	w.data = &parsed
	w.err = nil
	return nil
}

func (w *Weather) fetch() ([]byte, error) {
	lat, lon := w.cfg.Latitude, w.cfg.Longitude
	if w.cfg.ZipCode != "" {
		var err error
		lat, lon, err = w.geocodeZIP(w.cfg.ZipCode)
		if err != nil {
			utils.Warn("weather: geocoding %s failed, using configured coordinates: %v", w.cfg.ZipCode, err)
			lat, lon = w.cfg.Latitude, w.cfg.Longitude
		}
	}

	days := w.cfg.ForecastDays
	if days <= 0 {
		days = 3
	}
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("current", "temperature_2m,weather_code")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code")
	q.Set("forecast_days", fmt.Sprintf("%d", days))
	q.Set("timezone", "auto")
	if w.cfg.Units == "fahrenheit" {
		q.Set("temperature_unit", "fahrenheit")
	}

	body, err := w.get(w.forecastURL + "?" + q.Encode())
	if err != nil {
		return nil, err
	}

	var resp struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			Code        int     `json:"weather_code"`
		} `json:"current"`
		Daily struct {
			Time []string  `json:"time"`
			Max  []float64 `json:"temperature_2m_max"`
			Min  []float64 `json:"temperature_2m_min"`
			Code []int     `json:"weather_code"`
		} `json:"daily"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("weather: invalid forecast response: %w", err)
	}

	data := weatherData{
		Temperature: resp.Current.Temperature,
		Code:        resp.Current.Code,
	}
	for i := range resp.Daily.Time {
		if i >= len(resp.Daily.Max) || i >= len(resp.Daily.Min) || i >= len(resp.Daily.Code) {
			break
		}
		data.Days = append(data.Days, forecastDay{
			Date: resp.Daily.Time[i],
			High: resp.Daily.Max[i],
			Low:  resp.Daily.Min[i],
			Code: resp.Daily.Code[i],
		})
	}
	return json.Marshal(data)
}

// geocodeZIP resolves a postal code to coordinates via the Open-Meteo
// geocoding API.
func (w *Weather) geocodeZIP(zip string) (lat, lon float64, err error) {
	q := url.Values{}
	q.Set("name", zip)
	q.Set("count", "1")

	body, err := w.get(w.geocodeURL + "?" + q.Encode())
	if err != nil {
		return 0, 0, err
	}
	var resp struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Name      string  `json:"name"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, 0, fmt.Errorf("weather: invalid geocoding response: %w", err)
	}
	if len(resp.Results) == 0 {
		return 0, 0, fmt.Errorf("weather: no geocoding match for %q", zip)
	}
	return resp.Results[0].Latitude, resp.Results[0].Longitude, nil
}

func (w *Weather) get(u string) ([]byte, error) {
	resp, err := w.client.Get(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: HTTP %d from %s", resp.StatusCode, u)
	}
	return io.ReadAll(resp.Body)
}

func (w *Weather) Render(r *display.Renderer, bounds image.Rectangle) {
	title := "Weather"
	if w.cfg.LocationName != "" {
		title = w.cfg.LocationName
	}
	r.Text(bounds.Min.X+4, bounds.Min.Y+display.GlyphHeight, title)
	r.HLine(bounds.Min.X+2, bounds.Max.X-3, bounds.Min.Y+display.GlyphHeight+3)

	if w.data == nil {
		msg := "no data"
		if w.err != nil {
			msg = "unavailable"
		}
		r.TextCentered(bounds.Min.X+bounds.Dx()/2, bounds.Min.Y+bounds.Dy()/2, msg)
		return
	}

	unit := "F"
	if w.cfg.Units == "celsius" {
		unit = "C"
	}
	y := bounds.Min.Y + display.GlyphHeight*2 + 8
	r.Text(bounds.Min.X+4, y, fmt.Sprintf("%.0f%s %s", w.data.Temperature, unit, conditionLabel(w.data.Code)))

	y += display.GlyphHeight + 3
	for _, day := range w.data.Days {
		if y > bounds.Max.Y-2 {
			break
		}
		label := day.Date
		if t, err := time.Parse("2006-01-02", day.Date); err == nil {
			label = t.Format("Mon")
		}
		r.Text(bounds.Min.X+4, y, fmt.Sprintf("%s %.0f/%.0f", label, day.High, day.Low))
		y += display.GlyphHeight + 2
	}
}
