// Package scraper implements the two-tier smart scraper: a fast HTTP
// fetch through colly, falling back to a headless-browser navigation
// when the fast path yields no contact data.
package scraper

import (
	"context"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"

	"leadforge-worker/internal/apperrors"
	"leadforge-worker/internal/browser"
	"leadforge-worker/internal/extract"
	"leadforge-worker/internal/logging"
	"leadforge-worker/pkg/models"
)

// Scraper composes the fast-fetch and browser-fetch tiers over a shared
// cache and rate limiter.
type Scraper struct {
	cache     *cache
	browser   *browser.Manager
	limiter   *rate.Limiter
	userAgent string
	timeout   time.Duration
}

// Config holds the scraper's tunables, mirroring the worker's Scraper
// config section.
type Config struct {
	UserAgent      string
	RequestTimeout time.Duration
	RateLimitRPM   int
	ViewportWidth  int
	ViewportHeight int
}

// New builds a Scraper with its own browser manager and request-rate
// limiter derived from cfg.RateLimitRPM (requests per minute).
func New(cfg Config) *Scraper {
	rps := float64(cfg.RateLimitRPM) / 60.0
	if rps <= 0 {
		rps = 1
	}

	return &Scraper{
		cache:     newCache(),
		browser:   browser.NewManager(cfg.ViewportWidth, cfg.ViewportHeight),
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		userAgent: cfg.UserAgent,
		timeout:   cfg.RequestTimeout,
	}
}

// Close tears down the scraper's owned browser handle.
func (s *Scraper) Close() error {
	return s.browser.Close()
}

// Scrape fetches and extracts contact data from a single URL, trying the
// fast tier first and falling back to the browser tier. Results are
// cached by normalized URL.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*models.ScrapedData, error) {
	normalized, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.get(normalized); ok {
		return cached, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, apperrors.Transient("scraper: rate limiter wait failed", err)
	}

	html, ok := s.fastFetch(ctx, normalized)
	if ok {
		data := s.materialize(normalized, html)
		if len(data.Emails) > 0 || len(data.Phones) > 0 {
			s.cache.put(normalized, data)
			return data, nil
		}
	}

	html, err = s.browser.Fetch(ctx, normalized, s.timeout, s.userAgent)
	if err != nil {
		return nil, err
	}

	data := s.materialize(normalized, html)
	s.cache.put(normalized, data)
	return data, nil
}

// fastFetch performs an HTTPS GET via colly. It reports ok=false on any
// transport-level failure or non-2xx response, so the caller falls
// through to the browser tier.
func (s *Scraper) fastFetch(ctx context.Context, normalized string) (string, bool) {
	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(s.timeout)

	var body string
	var status int
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
		if r != nil {
			status = r.StatusCode
		}
	})

	if err := c.Visit(normalized); err != nil {
		logging.GetGlobalLogger().Debug("scraper: fast fetch failed", map[string]interface{}{
			"url": normalized, "error": err.Error(),
		})
		return "", false
	}

	if fetchErr != nil || status < 200 || status >= 300 {
		return "", false
	}

	return body, true
}

// materialize runs the extractors over raw HTML and builds ScrapedData.
func (s *Scraper) materialize(url, html string) *models.ScrapedData {
	return &models.ScrapedData{
		URL:       url,
		Emails:    extract.Emails(html),
		Phones:    extract.Phones(html),
		HTML:      html,
		ScrapedAt: time.Now(),
	}
}
