package notifier

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/pfrederiksen/bcmc-trips/internal/telegram"
	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct {
	w      io.Writer
	format func([]*trip.Trip) []string
}

// NewDryRunNotifier creates a dry-run notifier writing Twitter posts to w
func NewDryRunNotifier(w io.Writer) *DryRunNotifier {
	return &DryRunNotifier{w: w, format: func(trips []*trip.Trip) []string {
		posts := make([]string, len(trips))
		for i, t := range trips {
			posts[i] = formatPost(t)
		}
		return posts
	}}
}

// NewTelegramDryRunNotifier creates a dry-run notifier writing the Telegram
// messages TelegramNotifier would send: one per trip, or a single digest
func NewTelegramDryRunNotifier(w io.Writer, digest bool) *DryRunNotifier {
	return &DryRunNotifier{w: w, format: func(trips []*trip.Trip) []string {
		if digest {
			return []string{telegram.FormatDigest(trips)}
		}
		messages := make([]string, len(trips))
		for i, t := range trips {
			messages[i] = telegram.FormatTrip(t)
		}
		return messages
	}}
}

// Notify prints the posts that would be made
func (n *DryRunNotifier) Notify(trips []*trip.Trip) error {
	posts := n.format(trips)
	for i, post := range posts {
		if _, err := fmt.Fprintf(n.w, "--- Post %d/%d ---\n%s\n\n(Length: %d characters)\n\n",
			i+1, len(posts), post, utf8.RuneCountInString(post)); err != nil {
			return fmt.Errorf("writing post: %w", err)
		}
	}
	return nil
}
