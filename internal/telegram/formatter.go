package telegram

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

// MaxMessageLength is the Bot API limit for a message, in characters
const MaxMessageLength = 4096

// FormatTrip formats a single trip as a Telegram message
func FormatTrip(t *trip.Trip) string {
	var msg strings.Builder

	fmt.Fprintf(&msg, "🏔️ <b>%s</b>\n\n", html.EscapeString(t.Name))
	fmt.Fprintf(&msg, "📅 %s\n", html.EscapeString(t.DateDisplay()))

	kind := html.EscapeString(t.Type)
	if t.Grade != "" {
		kind += " · " + html.EscapeString(t.Grade)
		if tip := t.GradeTooltip(); tip != "" {
			kind += fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(tip))
		}
	}
	fmt.Fprintf(&msg, "🥾 %s\n", kind)
	fmt.Fprintf(&msg, "👥 %s\n", spots(t))

	if t.Organizer != "" && t.Organizer != trip.UnknownOrganizer {
		fmt.Fprintf(&msg, "🧭 %s\n", html.EscapeString(t.Organizer))
	}
	if t.MembersOnly {
		msg.WriteString("🔒 Members only\n")
	}
	if t.Screening {
		msg.WriteString("📝 Screening required\n")
	}
	if t.Description != "" {
		fmt.Fprintf(&msg, "\n<i>%s</i>\n", html.EscapeString(t.Description))
	}

	fmt.Fprintf(&msg, "\n🔗 <a href=\"%s\">Trip details</a>", html.EscapeString(t.URL))

	return msg.String()
}

// FormatDigest formats trips as one message grouped by activity type.
// Lines that would push the message past MaxMessageLength are replaced by
// an "and N more" note.
func FormatDigest(trips []*trip.Trip) string {
	if len(trips) == 0 {
		return "No upcoming trips."
	}

	header := fmt.Sprintf("📬 <b>BCMC Trips</b> • %d trip%s\n\n", len(trips), pluralize(len(trips)))

	byType := make(map[string][]*trip.Trip)
	for _, t := range trips {
		byType[t.Type] = append(byType[t.Type], t)
	}

	types := make([]string, 0, len(byType))
	for typ := range byType {
		types = append(types, typ)
	}
	sort.Strings(types)

	var lines []string
	for _, typ := range types {
		group := byType[typ]
		lines = append(lines, fmt.Sprintf("🥾 <b>%s</b> (%d)", html.EscapeString(typ), len(group)))
		for _, t := range group {
			lines = append(lines, fmt.Sprintf("  • %s <a href=\"%s\">%s</a> - %s",
				html.EscapeString(t.DateDisplay()), html.EscapeString(t.URL), html.EscapeString(t.Name), spots(t)))
		}
		lines = append(lines, "")
	}

	var msg strings.Builder
	msg.WriteString(header)
	for i, line := range lines {
		// Reserve room for the overflow note
		if msg.Len()+len(line)+64 > MaxMessageLength {
			fmt.Fprintf(&msg, "…and %d more", countTrips(lines[i:]))
			return msg.String()
		}
		msg.WriteString(line)
		msg.WriteString("\n")
	}

	return strings.TrimRight(msg.String(), "\n")
}

// countTrips counts the trip lines among the remaining digest lines
func countTrips(lines []string) int {
	n := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "  • ") {
			n++
		}
	}
	return n
}

func spots(t *trip.Trip) string {
	switch left := t.SpotsLeft(); {
	case left <= 0 && t.WaitingList > 0:
		return fmt.Sprintf("Full (%d waiting)", t.WaitingList)
	case left <= 0:
		return "Full"
	case left == 1:
		return "1 spot left"
	default:
		return fmt.Sprintf("%d spots left", left)
	}
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
