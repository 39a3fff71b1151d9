// Package feed publishes trips as an Atom 1.0 feed.
package feed

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

const atomNS = "http://www.w3.org/2005/Atom"

// Options describes the feed itself
type Options struct {
	// Title defaults to "BCMC Trips"
	Title string

	// SelfURL is where the feed is served, used for the self link and as
	// the feed id. Optional.
	SelfURL string

	// SourceURL is the listing page the trips came from
	SourceURL string

	// Updated defaults to the current time
	Updated time.Time
}

// Write writes an Atom feed with one entry per trip, in listing order.
func Write(w io.Writer, trips []*trip.Trip, opts Options) error {
	doc := Build(trips, opts)
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("writing feed: %w", err)
	}
	return nil
}

// Build returns the feed document without serializing it
func Build(trips []*trip.Trip, opts Options) *etree.Document {
	if opts.Title == "" {
		opts.Title = "BCMC Trips"
	}
	if opts.Updated.IsZero() {
		opts.Updated = time.Now()
	}
	updated := opts.Updated.UTC().Format(time.RFC3339)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	feed := doc.CreateElement("feed")
	feed.CreateAttr("xmlns", atomNS)

	id := opts.SelfURL
	if id == "" {
		id = opts.SourceURL
	}
	feed.CreateElement("id").SetText(id)
	feed.CreateElement("title").SetText(opts.Title)
	feed.CreateElement("updated").SetText(updated)
	feed.CreateElement("generator").SetText("bcmc-trips")

	if opts.SelfURL != "" {
		addLink(feed, "self", opts.SelfURL, "application/atom+xml")
	}
	if opts.SourceURL != "" {
		addLink(feed, "alternate", opts.SourceURL, "text/html")
	}

	for _, t := range trips {
		addEntry(feed, t, updated)
	}

	return doc
}

func addEntry(feed *etree.Element, t *trip.Trip, updated string) {
	entry := feed.CreateElement("entry")
	entry.CreateElement("id").SetText("urn:uuid:" + t.ID())
	entry.CreateElement("title").SetText(t.Name)
	entry.CreateElement("updated").SetText(updated)

	if t.URL != "" && t.URL != trip.PlaceholderURL {
		addLink(entry, "alternate", t.URL, "text/html")
	}

	author := entry.CreateElement("author")
	author.CreateElement("name").SetText(t.Organizer)
	if t.OrganizerURL != "" && t.OrganizerURL != trip.PlaceholderURL {
		author.CreateElement("uri").SetText(t.OrganizerURL)
	}

	category := entry.CreateElement("category")
	category.CreateAttr("term", t.Type)

	summary := entry.CreateElement("summary")
	summary.CreateAttr("type", "text")
	summary.SetText(summarize(t))
}

func addLink(parent *etree.Element, rel, href, typ string) {
	link := parent.CreateElement("link")
	link.CreateAttr("rel", rel)
	link.CreateAttr("type", typ)
	link.CreateAttr("href", href)
}

// summarize renders e.g. "Feb 6 → Feb 8 · Hiking B2 · 2 spots left. Long days"
func summarize(t *trip.Trip) string {
	parts := []string{t.DateDisplay()}

	kind := t.Type
	if t.Grade != "" {
		kind += " " + t.Grade
	}
	parts = append(parts, kind)

	switch spots := t.SpotsLeft(); {
	case spots <= 0 && t.WaitingList > 0:
		parts = append(parts, fmt.Sprintf("full, %d waiting", t.WaitingList))
	case spots <= 0:
		parts = append(parts, "full")
	case spots == 1:
		parts = append(parts, "1 spot left")
	default:
		parts = append(parts, fmt.Sprintf("%d spots left", spots))
	}

	s := strings.Join(parts, " · ")
	if t.Description != "" {
		s += ". " + t.Description
	}
	return s
}
