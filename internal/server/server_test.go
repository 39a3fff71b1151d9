package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/bcmc-trips/internal/scraper"
	"github.com/pfrederiksen/bcmc-trips/internal/server"
	"github.com/pfrederiksen/bcmc-trips/internal/trip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource returns fixed trips or a fixed error and counts calls
type stubSource struct {
	trips []*trip.Trip
	err   error
	calls int
}

func (s *stubSource) FetchTrips(ctx context.Context) ([]*trip.Trip, error) {
	s.calls++
	return s.trips, s.err
}

func sampleTrips() []*trip.Trip {
	return []*trip.Trip{
		{
			DateStart: "Feb 2", DateEnd: "Feb 2", Year: 2026,
			Name: "Snowshoe Basics", URL: "https://bcmc.ca/m/trip/123", Type: "Snowshoeing",
			MaxParticipants: 10, Registered: 4, Organizer: "Sam P.", OrganizerURL: "https://bcmc.ca/m/member/9",
		},
		{
			DateStart: "Feb 6", DateEnd: "Feb 8", Year: 2026,
			Name: "Alpine Traverse", URL: "https://bcmc.ca/m/trip/124", Type: "Hiking",
			MaxParticipants: 6, Registered: 6, WaitingList: 1,
			Organizer: trip.UnknownOrganizer, OrganizerURL: trip.PlaceholderURL,
		},
	}
}

func newServer(src server.TripSource) *server.Server {
	return server.New(src, server.Options{
		CacheMaxAge: 300 * time.Second,
		CORSOrigins: []string{"*"},
		SourceURL:   "https://bcmc.ca/m/events/",
	})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// TestReport_success verifies GET / renders the report with caching headers.
func TestReport_success(t *testing.T) {
	src := &stubSource{trips: sampleTrips()}

	rec := get(t, newServer(src), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	body := rec.Body.String()
	assert.Contains(t, body, `<span id="visible-count">2</span> of 2 trips`)
	assert.Contains(t, body, "Snowshoe Basics")
	assert.Contains(t, body, "Alpine Traverse")
	assert.Equal(t, 1, src.calls)
}

// TestReport_filtered verifies query parameters filter server-side and
// preselect the page controls.
func TestReport_filtered(t *testing.T) {
	rec := get(t, newServer(&stubSource{trips: sampleTrips()}), "/?type=hiking&available=on")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<span id="visible-count">0</span> of 0 trips`)
	assert.Contains(t, body, "No upcoming trips found")
	assert.Contains(t, body, `id="filter-available" checked`)
}

// TestReport_upstreamFailure verifies a fetch failure becomes a 502 with a
// plain-text message and no caching.
func TestReport_upstreamFailure(t *testing.T) {
	src := &stubSource{err: errors.New("unexpected status code: 503")}

	for _, path := range []string{"/", "/trips.json", "/trips.ics", "/feed.xml"} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, newServer(src), path)

			require.Equal(t, http.StatusBadGateway, rec.Code)
			assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, "Error: unexpected status code: 503", rec.Body.String())
			assert.NotContains(t, rec.Header().Get("Cache-Control"), "max-age")
		})
	}
}

// TestBadFilter_returns400 verifies invalid filter parameters are rejected
// before the upstream is contacted.
func TestBadFilter_returns400(t *testing.T) {
	src := &stubSource{trips: sampleTrips()}

	rec := get(t, newServer(src), "/trips.json?dates=someday")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Error: "))
	assert.Equal(t, 0, src.calls)
}

// TestJSON verifies GET /trips.json returns the filtered trips with ids.
func TestJSON(t *testing.T) {
	trips := sampleTrips()

	rec := get(t, newServer(&stubSource{trips: trips}), "/trips.json?q=alpine")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))

	var body struct {
		Count int `json:"count"`
		Total int `json:"total"`
		Trips []struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			DateStart string `json:"date_start"`
			DateEnd   string `json:"date_end"`
			SpotsLeft int    `json:"spots_left"`
			Waiting   int    `json:"waiting_list"`
		} `json:"trips"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Trips, 1)
	assert.Equal(t, trips[1].ID(), body.Trips[0].ID)
	assert.Equal(t, "Alpine Traverse", body.Trips[0].Name)
	assert.Equal(t, "Feb 8", body.Trips[0].DateEnd)
	assert.Equal(t, 0, body.Trips[0].SpotsLeft)
	assert.Equal(t, 1, body.Trips[0].Waiting)
}

// TestETag verifies a repeated request carrying the ETag gets 304.
func TestETag(t *testing.T) {
	srv := newServer(&stubSource{trips: sampleTrips()})

	first := get(t, srv, "/trips.json")
	require.Equal(t, http.StatusOK, first.Code)
	tag := first.Header().Get("ETag")
	require.Regexp(t, `^"[0-9a-f]{16}"$`, tag)

	tests := []struct {
		name        string
		ifNoneMatch string
		want        int
	}{
		{"same tag", tag, http.StatusNotModified},
		{"weak tag in list", `"0000000000000000", W/` + tag, http.StatusNotModified},
		{"wildcard", "*", http.StatusNotModified},
		{"other tag", `"0000000000000000"`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/trips.json", nil)
			req.Header.Set("If-None-Match", tt.ifNoneMatch)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tag, rec.Header().Get("ETag"))
			if tt.want == http.StatusNotModified {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

// TestJSON_empty verifies an empty listing encodes as an empty array.
func TestJSON_empty(t *testing.T) {
	rec := get(t, newServer(&stubSource{trips: []*trip.Trip{}}), "/trips.json")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":0,"total":0,"trips":[]}`, rec.Body.String())
}

// TestICS verifies GET /trips.ics serves a calendar.
func TestICS(t *testing.T) {
	rec := get(t, newServer(&stubSource{trips: sampleTrips()}), "/trips.ics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "bcmc-trips.ics")
	assert.Equal(t, 2, strings.Count(rec.Body.String(), "BEGIN:VEVENT"))
}

// TestFeed verifies GET /feed.xml serves Atom with a self link built from
// the request.
func TestFeed(t *testing.T) {
	h := newServer(&stubSource{trips: sampleTrips()})
	req := httptest.NewRequest(http.MethodGet, "/feed.xml", nil)
	req.Host = "trips.example.com"
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/atom+xml; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `<feed xmlns="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, body, `href="https://trips.example.com/feed.xml"`)
	assert.Equal(t, 2, strings.Count(body, "<entry>"))
}

// TestHealth verifies GET /healthz never calls the upstream.
func TestHealth(t *testing.T) {
	src := &stubSource{err: errors.New("down")}

	rec := get(t, newServer(src), "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, 0, src.calls)
}

// TestMetrics verifies GET /debug/metrics reports request counters.
func TestMetrics(t *testing.T) {
	h := newServer(&stubSource{trips: sampleTrips()})
	get(t, h, "/healthz")

	rec := get(t, h, "/debug/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	var snap struct {
		Counters map[string]int64 `json:"counters"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.GreaterOrEqual(t, snap.Counters["http.requests"], int64(1))
}

// TestHead verifies HEAD is served by the GET handlers.
func TestHead(t *testing.T) {
	h := newServer(&stubSource{trips: sampleTrips()})
	req := httptest.NewRequest(http.MethodHead, "/trips.json", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestNotFound verifies unknown paths return 404.
func TestNotFound(t *testing.T) {
	rec := get(t, newServer(&stubSource{}), "/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestCORS verifies cross-origin reads are allowed.
func TestCORS(t *testing.T) {
	h := newServer(&stubSource{trips: sampleTrips()})
	req := httptest.NewRequest(http.MethodGet, "/trips.json", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

// TestCORS_restricted verifies disallowed origins get no CORS header.
func TestCORS_restricted(t *testing.T) {
	h := server.New(&stubSource{trips: sampleTrips()}, server.Options{
		CORSOrigins: []string{"https://allowed.example"},
	})
	req := httptest.NewRequest(http.MethodGet, "/trips.json", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

// TestEndToEnd runs the service against a fake listing site serving the
// fixture page.
func TestEndToEnd(t *testing.T) {
	page, err := os.ReadFile("../../testdata/fixtures/trips.html")
	require.NoError(t, err)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write(page) //nolint:errcheck
	}))
	defer upstream.Close()

	src := scraper.New(scraper.WithURL(upstream.URL), scraper.WithBaseURL("https://bcmc.ca"))
	svc := httptest.NewServer(newServer(src))
	defer svc.Close()

	resp, err := http.Get(svc.URL + "/trips.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		Count int `json:"count"`
		Trips []struct {
			Name      string `json:"name"`
			URL       string `json:"url"`
			DateStart string `json:"date_start"`
		} `json:"trips"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	require.Equal(t, 3, body.Count)
	assert.Equal(t, "Elfin Lakes Hut Trip", body.Trips[0].Name)
	assert.Equal(t, "https://bcmc.ca/m/events/view/101", body.Trips[0].URL)
	assert.Equal(t, "Feb 2", body.Trips[1].DateStart)
	assert.Equal(t, "Stawamus Chief Scramble", body.Trips[2].Name)
}

// TestEndToEnd_upstreamDown verifies a failing listing site yields 502.
func TestEndToEnd_upstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	svc := httptest.NewServer(newServer(scraper.New(scraper.WithURL(upstream.URL))))
	defer svc.Close()

	resp, err := http.Get(svc.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Error: unexpected status code: 503", string(data))
}
