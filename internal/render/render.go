// Package render writes the interactive HTML trip report.
//
// The page is a single self-contained document: styles and the client-side
// filter script are inline, so it can be served directly or saved to disk.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

// DefaultSourceURL is linked from the page footer
const DefaultSourceURL = "https://bcmc.ca/m/events/"

//go:embed templates/page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

// Options controls the initial state of the page
type Options struct {
	// SourceURL is the listing page linked from the footer
	SourceURL string

	// SelectedType preselects an activity in the type menu (case-insensitive)
	SelectedType string

	// AvailableOnly pre-checks the "Space available" box
	AvailableOnly bool
}

type pageView struct {
	Types         []typeOption
	Trips         []tripView
	Total         int
	AvailableOnly bool
	SourceURL     string
}

type typeOption struct {
	Value    string
	Label    string
	Selected bool
}

type datePart struct {
	Label string
	Day   string
}

type tripView struct {
	Index        int
	Type         string
	TypeKey      string
	NameKey      string
	Spots        int
	MultiDay     bool
	Start        datePart
	End          datePart
	Grade        string
	GradeTip     string
	Icon         template.HTML
	Name         string
	URL          string
	Organizer    string
	OrganizerURL string
	MembersOnly  bool
	Screening    bool
	Full         bool
	Registered   int
	Max          int
	Waiting      int
	Description  string
}

// Page writes the HTML report for trips to w. Nothing is written if the
// template fails to execute.
func Page(w io.Writer, trips []*trip.Trip, opts Options) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, newPageView(trips, opts)); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	return nil
}

func newPageView(trips []*trip.Trip, opts Options) pageView {
	source := opts.SourceURL
	if source == "" {
		source = DefaultSourceURL
	}

	view := pageView{
		Trips:         make([]tripView, 0, len(trips)),
		Total:         len(trips),
		AvailableOnly: opts.AvailableOnly,
		SourceURL:     source,
	}

	selected := strings.ToLower(strings.TrimSpace(opts.SelectedType))
	for _, typ := range trip.Types(trips) {
		value := strings.ToLower(typ)
		view.Types = append(view.Types, typeOption{
			Value:    value,
			Label:    typ,
			Selected: selected != "" && value == selected,
		})
	}

	for i, t := range trips {
		view.Trips = append(view.Trips, newTripView(i, t))
	}
	return view
}

func newTripView(index int, t *trip.Trip) tripView {
	startLabel, startDay := trip.DatePart(t.DateStart)
	endLabel, endDay := trip.DatePart(t.DateEnd)

	return tripView{
		Index:        index,
		Type:         t.Type,
		TypeKey:      strings.ToLower(t.Type),
		NameKey:      strings.ToLower(t.Name),
		Spots:        t.SpotsLeft(),
		MultiDay:     t.IsMultiDay(),
		Start:        datePart{Label: startLabel, Day: startDay},
		End:          datePart{Label: endLabel, Day: endDay},
		Grade:        t.Grade,
		GradeTip:     t.GradeTooltip(),
		Icon:         activityIcon(t.Type),
		Name:         t.Name,
		URL:          t.URL,
		Organizer:    t.Organizer,
		OrganizerURL: t.OrganizerURL,
		MembersOnly:  t.MembersOnly,
		Screening:    t.Screening,
		Full:         t.IsFull(),
		Registered:   t.Registered,
		Max:          t.MaxParticipants,
		Waiting:      t.WaitingList,
		Description:  t.Description,
	}
}
