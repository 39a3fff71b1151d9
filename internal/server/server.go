// Package server exposes the trip report over HTTP.
//
// Every request fetches the listing page once; nothing is cached on the
// server side. Downstream caches are told how long a response stays fresh
// through Cache-Control, and ETags let them revalidate with If-None-Match.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

// TripSource fetches the current trip list
type TripSource interface {
	FetchTrips(ctx context.Context) ([]*trip.Trip, error)
}

// Options configures the service
type Options struct {
	// CacheMaxAge is sent as Cache-Control max-age on successful responses
	CacheMaxAge time.Duration

	// CORSOrigins lists the origins allowed to read responses cross-site.
	// Empty disables CORS headers.
	CORSOrigins []string

	// SourceURL is the listing page linked from the report and the feed
	SourceURL string
}

// Server serves the trip report and its data formats
type Server struct {
	source TripSource
	opts   Options
	router chi.Router
}

// New creates a Server reading trips from source
func New(source TripSource, opts Options) *Server {
	s := &Server{source: source, opts: opts}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	// RequestID → RealIP → request log → Recoverer → CORS
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger)
	r.Use(chimiddleware.Recoverer)
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(NewCORSHandler(s.opts.CORSOrigins))
	}
	r.Use(chimiddleware.GetHead)

	r.Get("/", s.handleReport)
	r.Get("/trips.json", s.handleJSON)
	r.Get("/trips.ics", s.handleICS)
	r.Get("/feed.xml", s.handleFeed)
	r.Get("/healthz", handleHealth)
	r.Get("/debug/metrics", handleMetrics)

	return r
}

// NewHTTPServer wraps handler in an http.Server with conservative timeouts.
// WriteTimeout leaves room for one upstream fetch.
func NewHTTPServer(addr string, handler http.Handler, fetchTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      fetchTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (s *Server) cacheControl() string {
	return fmt.Sprintf("public, max-age=%d", int(s.opts.CacheMaxAge/time.Second))
}
