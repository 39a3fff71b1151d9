package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortBySource SortOrder = "source"
	SortByDate   SortOrder = "date"
	SortByName   SortOrder = "name"
	SortByType   SortOrder = "type"
)

// ParseSortOrder validates a --sort value
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case "", SortBySource:
		return SortBySource, nil
	case SortByDate, SortByName, SortByType:
		return order, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be source, date, name or type)", s)
	}
}

// sortTrips sorts trips in place. Sorting is stable, so ties keep their
// listing order; SortBySource leaves the slice untouched.
func sortTrips(trips []*trip.Trip, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(trips, func(i, j int) bool {
			return compareByDate(trips[i], trips[j])
		})
	case SortByName:
		sort.SliceStable(trips, func(i, j int) bool {
			return strings.ToLower(trips[i].Name) < strings.ToLower(trips[j].Name)
		})
	case SortByType:
		sort.SliceStable(trips, func(i, j int) bool {
			ti, tj := strings.ToLower(trips[i].Type), strings.ToLower(trips[j].Type)
			if ti != tj {
				return ti < tj
			}
			// If types are equal, sort by date
			return compareByDate(trips[i], trips[j])
		})
	}
}

// compareByDate reports whether trip i starts before trip j.
// Trips without a resolvable date sort last.
func compareByDate(i, j *trip.Trip) bool {
	dateI := i.StartDate()
	dateJ := j.StartDate()

	if !dateI.IsZero() && !dateJ.IsZero() {
		return dateI.Before(dateJ)
	}

	// If only one date is valid, put the valid one first
	return !dateI.IsZero() && dateJ.IsZero()
}
