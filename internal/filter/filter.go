// Package filter narrows a trip list down by activity type, availability,
// free text, membership and date range.
//
// The same criteria back the CLI's list flags and the service's query
// parameters:
//
//	f := filter.NewFilter()
//	f.Types = []string{"Hiking"}
//	f.AvailableOnly = true
//
//	open := f.Apply(trips)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

// Filter represents trip filtering criteria. The zero value matches every trip.
type Filter struct {
	// Activity types, compared case-insensitively. A trip matches any of them.
	Types []string `json:"types,omitempty"`

	// Only trips with at least one spot left
	AvailableOnly bool `json:"available_only,omitempty"`

	// Case-insensitive substring of the name or description
	Query string `json:"query,omitempty"`

	// nil matches both; otherwise the trip's MembersOnly flag must equal it
	MembersOnly *bool `json:"members_only,omitempty"`

	// Start date range, inclusive
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
func NewFilter() *Filter {
	return &Filter{Types: []string{}}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return len(f.Types) == 0 &&
		!f.AvailableOnly &&
		strings.TrimSpace(f.Query) == "" &&
		f.MembersOnly == nil &&
		f.DateFrom == nil &&
		f.DateTo == nil
}

// Matches checks if a trip matches all active filter criteria.
//
// Trips whose start date can't be resolved to a calendar day are not
// excluded by the date range.
func (f *Filter) Matches(t *trip.Trip) bool {
	if f.IsEmpty() {
		return true
	}

	if len(f.Types) > 0 {
		matched := false
		for _, typ := range f.Types {
			if strings.EqualFold(strings.TrimSpace(typ), t.Type) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.AvailableOnly && t.IsFull() {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}

	if f.MembersOnly != nil && t.MembersOnly != *f.MembersOnly {
		return false
	}

	if f.DateFrom != nil || f.DateTo != nil {
		start := t.StartDate()
		if !start.IsZero() {
			if f.DateFrom != nil && start.Before(*f.DateFrom) {
				return false
			}
			if f.DateTo != nil && start.After(*f.DateTo) {
				return false
			}
		}
	}

	return true
}

// Apply returns the matching trips in their original order. The result is
// never nil.
func (f *Filter) Apply(trips []*trip.Trip) []*trip.Trip {
	filtered := make([]*trip.Trip, 0, len(trips))
	for _, t := range trips {
		if f.Matches(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Format: "Types: Hiking, Skiing | Available only | From: Feb 1, 2026"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if len(f.Types) > 0 {
		parts = append(parts, fmt.Sprintf("Types: %s", strings.Join(f.Types, ", ")))
	}

	if f.AvailableOnly {
		parts = append(parts, "Available only")
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, fmt.Sprintf("Query: %q", q))
	}

	if f.MembersOnly != nil {
		if *f.MembersOnly {
			parts = append(parts, "Members only")
		} else {
			parts = append(parts, "Open to all")
		}
	}

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format("Jan 2, 2006")))
	}

	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format("Jan 2, 2006")))
	}

	return strings.Join(parts, " | ")
}
