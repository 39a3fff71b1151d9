package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	FetchedAt time.Time    `json:"fetched_at"`
	Source    string       `json:"source"`
	Filter    string       `json:"filter"`
	Trips     []*trip.Trip `json:"trips"`
	Count     int          `json:"count"`
	Total     int          `json:"total"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	if result.Trips == nil {
		result.Trips = []*trip.Trip{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text, one trip per line:
//
//	Feb 6 → Feb 8    Alpine Traverse (Hiking, B2) - full, 1 waiting
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.Count == 0 {
		if result.Total > 0 {
			fmt.Fprintf(w, "No trips match (%s).\n", result.Filter)
		} else {
			fmt.Fprintln(w, "No trips found.")
		}
		return nil
	}

	for _, t := range result.Trips {
		fmt.Fprintf(w, "%-16s %s (%s) - %s\n", t.DateDisplay(), t.Name, kind(t), availability(t))
		if verbose {
			fmt.Fprintf(w, "     URL: %s\n", t.URL)
			fmt.Fprintf(w, "     Organizer: %s\n", t.Organizer)
			if tip := t.GradeTooltip(); tip != "" {
				fmt.Fprintf(w, "     Grade: %s\n", tip)
			}
			if t.MembersOnly {
				fmt.Fprintln(w, "     Members only")
			}
			if t.Screening {
				fmt.Fprintln(w, "     Screening required")
			}
			if t.Description != "" {
				fmt.Fprintf(w, "     %s\n", t.Description)
			}
		}
	}

	if result.Count == result.Total {
		fmt.Fprintf(w, "\nTotal: %d trips\n", result.Count)
	} else {
		fmt.Fprintf(w, "\nTotal: %d of %d trips (%s)\n", result.Count, result.Total, result.Filter)
	}
	return nil
}

func kind(t *trip.Trip) string {
	if t.Grade == "" {
		return t.Type
	}
	return t.Type + ", " + t.Grade
}

func availability(t *trip.Trip) string {
	spots := t.SpotsLeft()
	switch {
	case spots <= 0 && t.WaitingList > 0:
		return fmt.Sprintf("full, %d waiting", t.WaitingList)
	case spots <= 0:
		return "full"
	case spots == 1:
		return "1 spot left"
	default:
		return fmt.Sprintf("%d spots left", spots)
	}
}
