package widgets

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inkdash/inkdash/cache"
	"github.com/inkdash/inkdash/config"
	"github.com/inkdash/inkdash/display"
	"github.com/inkdash/inkdash/utils"
	"github.com/zalando/go-keyring"
)

const (
	finnhubQuoteURL   = "https://finnhub.io/api/v1/quote"
	coingeckoPriceURL = "https://api.coingecko.com/api/v3/simple/price"
	portfolioCacheTTL = 10 * time.Minute

	keyringService = "inkdash"
	keyringUser    = "finnhub"
)

// cryptoIDs maps ticker-style symbols to CoinGecko coin ids. Symbols not
// in this table are treated as stocks and quoted through Finnhub.
var cryptoIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"DOGE": "dogecoin",
	"ADA":  "cardano",
	"XMR":  "monero",
}

type quote struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
}

// Portfolio shows stock and crypto quotes. Stocks come from Finnhub,
// crypto from CoinGecko. The Finnhub API key is looked up in the system
// keyring first so it does not have to live in the config file.
type Portfolio struct {
	cfg    config.PortfolioConfig
	cache  *cache.Cache
	client *http.Client

	quoteURL  string
	cryptoURL string

	quotes []quote
	err    error
}

func NewPortfolio(cfg config.PortfolioConfig, c *cache.Cache) *Portfolio {
	return &Portfolio{
		cfg:       cfg,
		cache:     c,
		client:    &http.Client{Timeout: 10 * time.Second},
		quoteURL:  finnhubQuoteURL,
		cryptoURL: coingeckoPriceURL,
	}
}

func (p *Portfolio) Name() string { return "portfolio" }

// apiKey returns the Finnhub key from the keyring, falling back to the
// config file.
func (p *Portfolio) apiKey() string {
	if key, err := keyring.Get(keyringService, keyringUser); err == nil && key != "" {
		return key
	}
	return p.cfg.FinnhubAPIKey
}

// StoreAPIKey saves the Finnhub API key into the system keyring.
func StoreAPIKey(key string) error {
	return keyring.Set(keyringService, keyringUser, key)
}

func (p *Portfolio) Update() error {
	data, err := p.cache.Get("portfolio", portfolioCacheTTL, p.fetch)
	if err != nil {
		p.err = err
		return err
	}
	var quotes []quote
	if err := json.Unmarshal(data, &quotes); err != nil {
		p.err = err
		return err
	}
	p.quotes = quotes
	p.err = nil
	return nil
}

func (p *Portfolio) fetch() ([]byte, error) {
	var quotes []quote
	var cryptos []string
	for _, sym := range p.cfg.Symbols {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym == "" {
			continue
		}
		if _, ok := cryptoIDs[sym]; ok {
			cryptos = append(cryptos, sym)
			continue
		}
		q, err := p.fetchStock(sym)
		if err != nil {
			utils.Warn("portfolio: quote for %s failed: %v", sym, err)
			continue
		}
		quotes = append(quotes, q)
	}

	if len(cryptos) > 0 {
		cq, err := p.fetchCrypto(cryptos)
		if err != nil {
			utils.Warn("portfolio: crypto quotes failed: %v", err)
		} else {
			quotes = append(quotes, cq...)
		}
	}

	if len(quotes) == 0 {
		return nil, fmt.Errorf("portfolio: no quotes fetched")
	}
	return json.Marshal(quotes)
}

func (p *Portfolio) fetchStock(symbol string) (quote, error) {
	key := p.apiKey()
	if key == "" {
		return quote{}, fmt.Errorf("no Finnhub API key configured")
	}
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("token", key)

	body, err := p.get(p.quoteURL + "?" + q.Encode())
	if err != nil {
		return quote{}, err
	}
	var resp struct {
		Current   float64 `json:"c"`
		ChangePct float64 `json:"dp"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return quote{}, err
	}
	if resp.Current == 0 {
		return quote{}, fmt.Errorf("empty quote for %s", symbol)
	}
	return quote{Symbol: symbol, Price: resp.Current, ChangePct: resp.ChangePct}, nil
}

func (p *Portfolio) fetchCrypto(symbols []string) ([]quote, error) {
	ids := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		ids = append(ids, cryptoIDs[sym])
	}
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	q.Set("include_24hr_change", "true")

	body, err := p.get(p.cryptoURL + "?" + q.Encode())
	if err != nil {
		return nil, err
	}
	var resp map[string]struct {
		USD       float64 `json:"usd"`
		Change24h float64 `json:"usd_24h_change"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	var quotes []quote
	for _, sym := range symbols {
		if r, ok := resp[cryptoIDs[sym]]; ok {
			quotes = append(quotes, quote{Symbol: sym, Price: r.USD, ChangePct: r.Change24h})
		}
	}
	return quotes, nil
}

func (p *Portfolio) get(u string) ([]byte, error) {
	resp, err := p.client.Get(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (p *Portfolio) Render(r *display.Renderer, bounds image.Rectangle) {
	r.Text(bounds.Min.X+4, bounds.Min.Y+display.GlyphHeight, "Markets")
	r.HLine(bounds.Min.X+2, bounds.Max.X-3, bounds.Min.Y+display.GlyphHeight+3)

	if len(p.quotes) == 0 {
		r.TextCentered(bounds.Min.X+bounds.Dx()/2, bounds.Min.Y+bounds.Dy()/2, "no quotes")
		return
	}

	y := bounds.Min.Y + display.GlyphHeight*2 + 8
	for _, q := range p.quotes {
		if y > bounds.Max.Y-2 {
			break
		}
		arrow := "+"
		if q.ChangePct < 0 {
			arrow = "-"
		}
		line := fmt.Sprintf("%-5s %9.2f %s%.1f%%", q.Symbol, q.Price, arrow, iabsf(q.ChangePct))
		r.Text(bounds.Min.X+4, y, line)
		y += display.GlyphHeight + 2
	}
}

func iabsf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
