package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pfrederiksen/bcmc-trips/internal/calendar"
	"github.com/pfrederiksen/bcmc-trips/internal/feed"
	"github.com/pfrederiksen/bcmc-trips/internal/filter"
	"github.com/pfrederiksen/bcmc-trips/internal/logger"
	"github.com/pfrederiksen/bcmc-trips/internal/render"
	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

// TripResponse is one element of GET /trips.json
type TripResponse struct {
	ID string `json:"id"`
	*trip.Trip
	SpotsLeft int `json:"spots_left"`
}

// TripsResponse is the JSON response for GET /trips.json
type TripsResponse struct {
	Count int            `json:"count"`
	Total int            `json:"total"`
	Trips []TripResponse `json:"trips"`
}

// loadTrips parses the filter, fetches and filters trips. On failure it has
// already written the error response and returns ok false.
func (s *Server) loadTrips(w http.ResponseWriter, r *http.Request) (matched []*trip.Trip, total int, f *filter.Filter, ok bool) {
	f, err := filter.FromValues(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, 0, nil, false
	}

	trips, err := s.source.FetchTrips(r.Context())
	if err != nil {
		logger.Error("Failed to fetch trips", logger.Fields{
			"path":       r.URL.Path,
			"request_id": chimiddleware.GetReqID(r.Context()),
		}, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return nil, 0, nil, false
	}

	return f.Apply(trips), len(trips), f, true
}

// handleReport handles GET /
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	trips, _, f, ok := s.loadTrips(w, r)
	if !ok {
		return
	}

	opts := render.Options{
		SourceURL:     s.opts.SourceURL,
		AvailableOnly: f.AvailableOnly,
	}
	if len(f.Types) == 1 {
		opts.SelectedType = f.Types[0]
	}

	var buf bytes.Buffer
	if err := render.Page(&buf, trips, opts); err != nil {
		logger.Error("Failed to render report", nil, err)
		writeError(w, http.StatusInternalServerError, "rendering report")
		return
	}
	s.write(w, r, "text/html; charset=utf-8", buf.Bytes())
}

// handleJSON handles GET /trips.json
func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	trips, total, _, ok := s.loadTrips(w, r)
	if !ok {
		return
	}

	resp := TripsResponse{
		Count: len(trips),
		Total: total,
		Trips: make([]TripResponse, 0, len(trips)),
	}
	for _, t := range trips {
		resp.Trips = append(resp.Trips, TripResponse{ID: t.ID(), Trip: t, SpotsLeft: t.SpotsLeft()})
	}

	body, err := json.Marshal(resp)
	if err != nil {
		logger.Error("Failed to encode trips", nil, err)
		writeError(w, http.StatusInternalServerError, "encoding trips")
		return
	}
	s.write(w, r, "application/json", body)
}

// handleICS handles GET /trips.ics
func (s *Server) handleICS(w http.ResponseWriter, r *http.Request) {
	trips, _, _, ok := s.loadTrips(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Disposition", `inline; filename="bcmc-trips.ics"`)
	s.write(w, r, "text/calendar; charset=utf-8", []byte(calendar.GenerateICS(trips)))
}

// handleFeed handles GET /feed.xml
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	trips, _, _, ok := s.loadTrips(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := feed.Write(&buf, trips, feed.Options{
		SelfURL:   requestURL(r),
		SourceURL: s.opts.SourceURL,
	})
	if err != nil {
		logger.Error("Failed to build feed", nil, err)
		writeError(w, http.StatusInternalServerError, "building feed")
		return
	}
	s.write(w, r, "application/atom+xml; charset=utf-8", buf.Bytes())
}

// handleHealth handles GET /healthz. It does not contact the listing site.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"}) //nolint:errcheck
}

// handleMetrics handles GET /debug/metrics
func handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(logger.GetMetricsSnapshot()) //nolint:errcheck
}

// write sends a successful response tagged with a content hash. A request
// whose If-None-Match names that hash gets 304 with no body.
func (s *Server) write(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	tag := etag(body)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", s.cacheControl())
	w.Header().Set("ETag", tag)

	if etagMatches(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck
}

func etag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
}

func etagMatches(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == tag || candidate == "*" {
			return true
		}
	}
	return false
}

// writeError writes "Error: <message>" as plain text
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write([]byte("Error: " + message)) //nolint:errcheck
}

// requestURL reconstructs the absolute URL of r, honouring proxy headers
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + r.Host + r.URL.Path
}
