// Package calendar exports trips as an iCalendar (RFC 5545) feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

const (
	prodID    = "-//BCMC Trips//bcmc-trips//EN"
	uidDomain = "bcmc.ca"
	// Content lines are folded at 75 octets
	maxLineOctets = 75
)

// GenerateICS generates an iCalendar document with one all-day event per
// trip. Trips whose start date can't be resolved are left out.
func GenerateICS(trips []*trip.Trip) string {
	return generate(trips, time.Now())
}

func generate(trips []*trip.Trip, now time.Time) string {
	var ics strings.Builder

	writeLine(&ics, "BEGIN:VCALENDAR")
	writeLine(&ics, "VERSION:2.0")
	writeLine(&ics, "PRODID:"+prodID)
	writeLine(&ics, "CALSCALE:GREGORIAN")
	writeLine(&ics, "METHOD:PUBLISH")
	writeLine(&ics, "X-WR-CALNAME:BCMC Trips")

	stamp := formatICSTime(now)
	for _, t := range trips {
		start := t.StartDate()
		if start.IsZero() {
			continue
		}
		// DTEND is exclusive for all-day events
		end := t.EndDate().AddDate(0, 0, 1)

		writeLine(&ics, "BEGIN:VEVENT")
		writeLine(&ics, fmt.Sprintf("UID:%s@%s", t.ID(), uidDomain))
		writeLine(&ics, "DTSTAMP:"+stamp)
		writeLine(&ics, "DTSTART;VALUE=DATE:"+formatICSDate(start))
		writeLine(&ics, "DTEND;VALUE=DATE:"+formatICSDate(end))
		writeLine(&ics, "SUMMARY:"+escapeICS(t.Name))
		writeLine(&ics, "DESCRIPTION:"+escapeICS(description(t)))
		if t.Type != "" && t.Type != trip.UnknownType {
			writeLine(&ics, "CATEGORIES:"+escapeICS(t.Type))
		}
		if t.URL != "" && t.URL != trip.PlaceholderURL {
			writeLine(&ics, "URL:"+t.URL)
		}
		writeLine(&ics, "STATUS:CONFIRMED")
		writeLine(&ics, "TRANSP:TRANSPARENT")
		writeLine(&ics, "END:VEVENT")
	}

	writeLine(&ics, "END:VCALENDAR")
	return ics.String()
}

// description summarises type, grade, availability and the listing blurb
func description(t *trip.Trip) string {
	lines := []string{"Type: " + t.Type}
	if t.Grade != "" {
		grade := "Grade: " + t.Grade
		if tip := t.GradeTooltip(); tip != "" {
			grade += " (" + tip + ")"
		}
		lines = append(lines, grade)
	}

	availability := fmt.Sprintf("Registered: %d/%d", t.Registered, t.MaxParticipants)
	if t.IsFull() {
		availability += " (full"
		if t.WaitingList > 0 {
			availability += fmt.Sprintf(", %d waiting", t.WaitingList)
		}
		availability += ")"
	}
	lines = append(lines, availability)

	if t.Organizer != "" && t.Organizer != trip.UnknownOrganizer {
		lines = append(lines, "Organizer: "+t.Organizer)
	}
	if t.MembersOnly {
		lines = append(lines, "Members only")
	}
	if t.Description != "" {
		lines = append(lines, "", t.Description)
	}
	return strings.Join(lines, "\n")
}

// writeLine writes a content line, folding it so no physical line exceeds
// 75 octets. Folds never split a UTF-8 sequence.
func writeLine(b *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !isRuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		// Continuation lines start with a space
		limit = maxLineOctets - 1
	}
	b.WriteString(line)
	b.WriteString("\r\n")
}

func isRuneStart(c byte) bool {
	return c&0xC0 != 0x80
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
