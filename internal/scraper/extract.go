package scraper

import (
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

// DefaultBaseURL is the origin relative listing links are resolved against
const DefaultBaseURL = "https://bcmc.ca"

var (
	// One trip: schedule, information, participants and organizer cells.
	// The participants cell holds a nested table, so each lazy group is
	// anchored on the class of the cell that follows it.
	tripRowPattern = regexp.MustCompile(`(?is)<tr(?:\s[^>]*)?>\s*` +
		`<td[^>]*trip_list_date-time[^>]*>(.*?)</td>\s*` +
		`<td[^>]*trip_list_information[^>]*>(.*?)</td>\s*` +
		`<td[^>]*trip_list_participants[^>]*>(.*?)</td>\s*` +
		`<td[^>]*trip_list_organizer[^>]*>(.*?)</td>\s*</tr>`)

	// Section header: an element whose whole text is "Feb 2026" or "February 2026"
	monthHeaderPattern = regexp.MustCompile(`(?i)>\s*(january|february|march|april|may|june|july|august|september|sept|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\.?(?:\s|&nbsp;)+(\d{4})\s*<`)

	strongPattern     = regexp.MustCompile(`(?is)<strong[^>]*>(.*?)</strong>`)
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	toSeparator       = regexp.MustCompile(`(?i)\s+to\s+`)
	gradePattern      = regexp.MustCompile(`(?i)Grade:(?:\s|&nbsp;|</?(?:strong|b|em)>)*<span[^>]*>([^<]+)</span>`)
	nbspPattern       = regexp.MustCompile(`(?i)&nbsp;|\x{00a0}`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

var cellMarkers = []string{
	"trip_list_date-time",
	"trip_list_information",
	"trip_list_participants",
	"trip_list_organizer",
}

const (
	membersOnlyMarker = "Members Only"
	screeningMarker   = "Screening"
)

// Extractor turns the event listing page into trip records
type Extractor struct {
	base *url.URL
}

// NewExtractor creates an Extractor resolving relative links against baseURL.
// An unparsable or non-absolute baseURL falls back to DefaultBaseURL.
func NewExtractor(baseURL string) *Extractor {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		base, _ = url.Parse(DefaultBaseURL)
	}
	return &Extractor{base: base}
}

// Extract parses trips from the listing page using the default base URL
func Extract(doc string) []*trip.Trip {
	return NewExtractor(DefaultBaseURL).Extract(doc)
}

// Extract returns one trip per listing row, in document order.
//
// It never fails: rows that don't have the four-cell shape are skipped, rows
// without a trip name are dropped and every other missing field falls back
// to its default. Date tokens without a month ("Fri 2") take the month of
// the closest section header above them.
func (e *Extractor) Extract(doc string) []*trip.Trip {
	trips := make([]*trip.Trip, 0)

	var month string
	var year int
	prevEnd := 0

	for pos := 0; pos < len(doc); {
		loc := tripRowPattern.FindStringSubmatchIndex(doc[pos:])
		if loc == nil {
			break
		}
		for i := range loc {
			loc[i] += pos
		}

		cells := [4]string{
			doc[loc[2]:loc[3]], // schedule
			doc[loc[4]:loc[5]], // information
			doc[loc[6]:loc[7]], // participants
			doc[loc[8]:loc[9]], // organizer
		}

		// A row missing one of its cells lets the match run on into the next
		// row. Skip it and retry from the next row.
		if spansRows(cells) {
			pos = loc[0] + len("<tr")
			continue
		}
		pos = loc[1]

		// Headers since the previous accepted row update the context. That
		// span includes any rows dropped in between.
		if m, y, ok := lastMonthHeader(doc[prevEnd:loc[0]]); ok {
			month, year = m, y
		}

		t, ok := e.parseInformation(cells[1])
		if !ok {
			continue
		}
		prevEnd = loc[1]

		start, end := parseSchedule(cells[0])
		t.DateStart = trip.WithMonth(start, month)
		t.DateEnd = trip.WithMonth(end, month)
		t.Year = year

		t.MaxParticipants, t.Registered, t.WaitingList = parseParticipants(cells[2])
		t.Organizer, t.OrganizerURL = e.parseOrganizer(cells[3])

		trips = append(trips, t)
	}

	return trips
}

// spansRows reports whether a matched cell swallowed another row's cells
func spansRows(cells [4]string) bool {
	for _, cell := range cells {
		for _, marker := range cellMarkers {
			if strings.Contains(cell, marker) {
				return true
			}
		}
	}
	return false
}

// lastMonthHeader returns the month and year of the last section header in s
func lastMonthHeader(s string) (month string, year int, ok bool) {
	matches := monthHeaderPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return "", 0, false
	}
	last := matches[len(matches)-1]
	month, ok = trip.MonthAbbrev(last[1])
	if !ok {
		return "", 0, false
	}
	year, _ = strconv.Atoi(last[2])
	return month, year, true
}

// parseSchedule extracts the start and end date tokens of the schedule cell.
// The start token is the bold one; a multi-day trip adds "to <end>".
func parseSchedule(cell string) (start, end string) {
	if m := strongPattern.FindStringSubmatch(cell); m != nil {
		start = cleanText(m[1])
	}

	parts := toSeparator.Split(cleanText(cell), 2)
	if start == "" {
		start = strings.TrimSpace(parts[0])
	}

	end = start
	if len(parts) > 1 {
		end = strings.TrimSpace(parts[1])
	}
	return start, end
}

// parseInformation reads name, link, type, grade, description and flags.
// ok is false when the cell has no trip name or link.
func (e *Extractor) parseInformation(cell string) (*trip.Trip, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cell))
	if err != nil {
		return nil, false
	}

	link := doc.Find(".trip_title a[href]").First()
	href, _ := link.Attr("href")
	name := collapse(link.Text())
	if name == "" || strings.TrimSpace(href) == "" {
		return nil, false
	}

	t := &trip.Trip{
		Name:        name,
		URL:         e.resolve(href),
		Type:        trip.UnknownType,
		Description: collapse(doc.Find(".trip_list_desc em").First().Text()),
		MembersOnly: strings.Contains(cell, membersOnlyMarker),
		Screening:   strings.Contains(cell, screeningMarker),
	}

	if category := collapse(doc.Find("div.category").First().Text()); category != "" {
		t.Type = category
	}

	if m := gradePattern.FindStringSubmatch(cell); m != nil {
		t.Grade = cleanText(m[1])
	}

	return t, true
}

// parseParticipants reads the Maximum, Registered and Waiting List counts
func parseParticipants(cell string) (maximum, registered, waiting int) {
	// Bare <th>/<td> pairs are only kept by the HTML parser inside a table
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table>" + cell + "</table>"))
	if err != nil {
		return 0, 0, 0
	}

	doc.Find("th").Each(func(i int, th *goquery.Selection) {
		label := strings.ToLower(strings.TrimSuffix(collapse(th.Text()), ":"))
		value := count(th.Next().Filter("td").Text())

		switch label {
		case "maximum":
			maximum = value
		case "registered":
			registered = value
		case "waiting list":
			waiting = value
		}
	})

	return maximum, registered, waiting
}

// parseOrganizer returns the organizer's name and profile link
func (e *Extractor) parseOrganizer(cell string) (name, link string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cell))
	if err != nil {
		return trip.UnknownOrganizer, trip.PlaceholderURL
	}

	a := doc.Find("a[href]").First()
	href, _ := a.Attr("href")
	name = collapse(a.Text())
	if name == "" || strings.TrimSpace(href) == "" {
		return trip.UnknownOrganizer, trip.PlaceholderURL
	}
	return name, e.resolve(href)
}

// resolve makes a listing link absolute. http(s) links with a host are
// returned unchanged. Any other scheme, or a scheme without a host, keeps
// only its path, which is resolved against the base origin.
func (e *Extractor) resolve(href string) string {
	href = strings.TrimSpace(href)
	u, err := url.Parse(href)
	if err != nil {
		return strings.TrimSuffix(e.base.String(), "/") + "/" + strings.TrimPrefix(href, "/")
	}
	if u.Scheme == "" {
		return e.base.ResolveReference(u).String()
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return href
	}

	path := u.Path
	if u.Opaque != "" {
		path = u.Opaque
	}
	ref := &url.URL{Path: path, RawQuery: u.RawQuery, Fragment: u.Fragment}
	return e.base.ResolveReference(ref).String()
}

// count parses a participant count, treating anything else as 0
func count(s string) int {
	n, err := strconv.Atoi(collapse(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// cleanText turns a markup fragment into single-spaced plain text
func cleanText(fragment string) string {
	s := tagPattern.ReplaceAllString(fragment, " ")
	s = nbspPattern.ReplaceAllString(s, " ")
	return collapse(html.UnescapeString(s))
}

// collapse trims s and squeezes inner whitespace, including no-break spaces
func collapse(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
