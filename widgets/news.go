package widgets

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inkdash/inkdash/cache"
	"github.com/inkdash/inkdash/config"
	"github.com/inkdash/inkdash/display"
	"github.com/inkdash/inkdash/utils"
)

const newsCacheTTL = 20 * time.Minute

type headline struct {
	Source string `json:"source"`
	Title  string `json:"title"`
}

// rssDoc covers the subset of RSS 2.0 the widget needs.
type rssDoc struct {
	Channel struct {
		Items []struct {
			Title string `xml:"title"`
		} `xml:"item"`
	} `xml:"channel"`
}

// News aggregates headlines from the configured RSS feeds. A tap on the
// widget cycles to the next feed.
type News struct {
	cfg    config.NewsConfig
	cache  *cache.Cache
	client *http.Client

	headlines []headline
	feedIdx   int
}

func NewNews(cfg config.NewsConfig, c *cache.Cache) *News {
	return &News{
		cfg:    cfg,
		cache:  c,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *News) Name() string { return "news" }

func (n *News) Update() error {
	feeds := n.cfg.FeedList()
	if len(feeds) == 0 {
		return fmt.Errorf("news: no feeds configured")
	}
	if n.feedIdx >= len(feeds) {
		n.feedIdx = 0
	}
	feed := feeds[n.feedIdx]

	data, err := n.cache.Get("news_"+feed.Name, newsCacheTTL, func() ([]byte, error) {
		return n.fetch(feed)
	})
	if err != nil {
		return err
	}
	var parsed []headline
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	n.headlines = parsed
	return nil
}

// HandleTap advances to the next configured feed. The new feed's
// headlines show up on the next Update.
func (n *News) HandleTap(pos image.Point) {
	feeds := n.cfg.FeedList()
	if len(feeds) == 0 {
		return
	}
	n.feedIdx = (n.feedIdx + 1) % len(feeds)
	utils.Verbose("news: switched to feed %s", feeds[n.feedIdx].Name)
	if err := n.Update(); err != nil {
		utils.Warn("news: update after feed switch failed: %v", err)
	}
}

func (n *News) fetch(feed config.Feed) ([]byte, error) {
	resp, err := n.client.Get(feed.URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news: HTTP %d from %s", resp.StatusCode, feed.URL)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var doc rssDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("news: invalid RSS from %s: %w", feed.URL, err)
	}

	limit := n.cfg.MaxHeadlines
	if limit <= 0 {
		limit = 5
	}
	var headlines []headline
	for _, item := range doc.Channel.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		headlines = append(headlines, headline{Source: feed.Name, Title: title})
		if len(headlines) >= limit {
			break
		}
	}
	return json.Marshal(headlines)
}

func (n *News) Render(r *display.Renderer, bounds image.Rectangle) {
	title := "News"
	if feeds := n.cfg.FeedList(); len(feeds) > 0 && n.feedIdx < len(feeds) {
		title = feeds[n.feedIdx].Name
	}
	r.Text(bounds.Min.X+4, bounds.Min.Y+display.GlyphHeight, title)
	r.HLine(bounds.Min.X+2, bounds.Max.X-3, bounds.Min.Y+display.GlyphHeight+3)

	if len(n.headlines) == 0 {
		r.TextCentered(bounds.Min.X+bounds.Dx()/2, bounds.Min.Y+bounds.Dy()/2, "no headlines")
		return
	}

	maxChars := (bounds.Dx() - 8) / display.GlyphWidth
	y := bounds.Min.Y + display.GlyphHeight*2 + 8
	for _, h := range n.headlines {
		if y > bounds.Max.Y-2 {
			break
		}
		text := h.Title
		if len(text) > maxChars && maxChars > 3 {
			text = text[:maxChars-3] + "..."
		}
		r.Text(bounds.Min.X+4, y, text)
		y += display.GlyphHeight + 2
	}
}
