package notifier

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

// MaxPostLength is the platform limit for a single post, in characters
const MaxPostLength = 280

// Notifier defines the interface for posting trip notifications
type Notifier interface {
	// Notify posts one notification per trip, in order
	Notify(trips []*trip.Trip) error
}

// formatPost formats a trip as a post of at most MaxPostLength characters.
// Long names are shortened first so the link survives.
func formatPost(t *trip.Trip) string {
	post := buildPost(t, t.Name)
	if over := utf8.RuneCountInString(post) - MaxPostLength; over > 0 {
		name := []rune(t.Name)
		keep := len(name) - over - 1
		if keep > 0 {
			post = buildPost(t, string(name[:keep])+"…")
		}
	}
	if utf8.RuneCountInString(post) > MaxPostLength {
		runes := []rune(post)
		post = string(runes[:MaxPostLength-3]) + "..."
	}
	return post
}

func buildPost(t *trip.Trip, name string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🏔️ %s\n", name)
	fmt.Fprintf(&b, "📅 %s\n", t.DateDisplay())

	kind := t.Type
	if t.Grade != "" {
		kind += " · " + t.Grade
	}
	fmt.Fprintf(&b, "🥾 %s\n", kind)

	switch spots := t.SpotsLeft(); {
	case spots <= 0 && t.WaitingList > 0:
		fmt.Fprintf(&b, "👥 Full (%d waiting)\n", t.WaitingList)
	case spots <= 0:
		b.WriteString("👥 Full\n")
	case spots == 1:
		b.WriteString("👥 1 spot left\n")
	default:
		fmt.Fprintf(&b, "👥 %d spots left\n", spots)
	}

	if t.MembersOnly {
		b.WriteString("🔒 Members only\n")
	}

	if t.URL != "" && t.URL != trip.PlaceholderURL {
		fmt.Fprintf(&b, "\n🔗 %s\n", t.URL)
	}

	b.WriteString("\n#BCMC #Mountaineering")
	return b.String()
}
