package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pfrederiksen/bcmc-trips/internal/logger"
	"github.com/pfrederiksen/bcmc-trips/internal/trip"
	"golang.org/x/time/rate"
)

const (
	EventsURL = "https://bcmc.ca/m/events/"
	UserAgent = "bcmc-trips/1.0 (github.com/pfrederiksen/bcmc-trips)"
	Timeout   = 30 * time.Second

	// maxBodySize caps how much of the listing page is read
	maxBodySize = 10 << 20
)

// ErrUnexpectedStatus is returned when the listing page answers with a
// non-success status code.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// ErrPageTooLarge is returned when the listing page exceeds the body cap.
// Nothing is extracted from a truncated page.
var ErrPageTooLarge = errors.New("listing page too large")

// Scraper handles fetching and parsing the BCMC event listing
type Scraper struct {
	client    *http.Client
	url       string
	userAgent string
	limiter   *rate.Limiter
	extractor *Extractor
}

// Option configures a Scraper
type Option func(*Scraper)

// WithURL sets the listing page to fetch
func WithURL(u string) Option {
	return func(s *Scraper) {
		s.url = u
	}
}

// WithBaseURL sets the origin relative trip and organizer links resolve against
func WithBaseURL(u string) Option {
	return func(s *Scraper) {
		s.extractor = NewExtractor(u)
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent upstream
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		s.userAgent = ua
	}
}

// WithRateLimit limits upstream requests to rps per second with the given burst.
// Every fetch waits for a token, so concurrent viewers can't flood the club's site.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Scraper) {
		if rps <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		s.client = c
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url:       EventsURL,
		userAgent: UserAgent,
		limiter:   rate.NewLimiter(rate.Inf, 0),
		extractor: NewExtractor(DefaultBaseURL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the listing page the scraper fetches
func (s *Scraper) URL() string {
	return s.url
}

// FetchHTML retrieves the listing page. It makes exactly one attempt; a
// network error or non-2xx status is returned as an error.
func (s *Scraper) FetchHTML(ctx context.Context) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		logger.IncrCounter("upstream.errors")
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.IncrCounter("upstream.errors")
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	// One byte past the cap tells a full page from a truncated one
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		logger.IncrCounter("upstream.errors")
		return "", fmt.Errorf("reading page: %w", err)
	}
	if len(body) > maxBodySize {
		logger.IncrCounter("upstream.errors")
		return "", fmt.Errorf("%w: more than %d bytes", ErrPageTooLarge, maxBodySize)
	}

	logger.RecordTiming("upstream.fetch", time.Since(start))
	logger.Debug("Fetched listing page", logger.Fields{
		"url":   s.url,
		"bytes": len(body),
	})

	return string(body), nil
}

// FetchTrips fetches the listing page and extracts its trips.
// Extraction only runs on a successful fetch.
func (s *Scraper) FetchTrips(ctx context.Context) ([]*trip.Trip, error) {
	html, err := s.FetchHTML(ctx)
	if err != nil {
		return nil, err
	}

	trips := s.extractor.Extract(html)
	logger.SetGauge("trips.last_count", float64(len(trips)))
	if len(trips) == 0 {
		// Valid off-season, but also what a markup change looks like
		logger.Warn("No trips found on listing page", logger.Fields{"url": s.url})
	}

	return trips, nil
}

// Extract parses trips from an already fetched listing page using the
// scraper's base URL.
func (s *Scraper) Extract(html string) []*trip.Trip {
	return s.extractor.Extract(html)
}
