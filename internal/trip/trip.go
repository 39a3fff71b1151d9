package trip

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	// UnknownType is used when a listing row has no activity category.
	UnknownType = "Unknown"
	// UnknownOrganizer is used when a listing row has no organizer link.
	UnknownOrganizer = "Unknown"
	// PlaceholderURL stands in for a missing organizer link.
	PlaceholderURL = "#"
)

// Trip represents one scheduled outing from the club's event listing
type Trip struct {
	DateStart       string `json:"date_start"`
	DateEnd         string `json:"date_end"`
	Year            int    `json:"year,omitempty"` // From the governing section header, 0 if unknown
	Name            string `json:"name"`
	URL             string `json:"url"`
	Type            string `json:"type"`
	Grade           string `json:"grade,omitempty"`
	Description     string `json:"description,omitempty"`
	MaxParticipants int    `json:"max_participants"`
	Registered      int    `json:"registered"`
	WaitingList     int    `json:"waiting_list"`
	Organizer       string `json:"organizer"`
	OrganizerURL    string `json:"organizer_url"`
	MembersOnly     bool   `json:"members_only"`
	Screening       bool   `json:"screening"`
}

// SpotsLeft returns the number of open places. It may be negative when the
// listing reports more registrations than the maximum.
func (t *Trip) SpotsLeft() int {
	return t.MaxParticipants - t.Registered
}

// IsFull reports whether no spots are left
func (t *Trip) IsFull() bool {
	return t.SpotsLeft() <= 0
}

// IsMultiDay reports whether the trip ends on a different day than it starts
func (t *Trip) IsMultiDay() bool {
	return t.DateStart != t.DateEnd
}

// DateDisplay returns a human readable date range such as "Feb 3 → Feb 4"
func (t *Trip) DateDisplay() string {
	if !t.IsMultiDay() {
		return t.DateStart
	}
	return t.DateStart + " → " + t.DateEnd
}

// ID returns a deterministic identifier for the trip.
// The same trip URL and start date always yield the same ID across fetches.
func (t *Trip) ID() string {
	key := strings.TrimSpace(t.URL) + "|" + strings.ToLower(strings.TrimSpace(t.DateStart))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

// Types returns the sorted set of distinct activity types in trips
func Types(trips []*Trip) []string {
	seen := make(map[string]bool)
	types := make([]string, 0)
	for _, t := range trips {
		if seen[t.Type] {
			continue
		}
		seen[t.Type] = true
		types = append(types, t.Type)
	}
	sort.Strings(types)
	return types
}
