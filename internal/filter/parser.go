package filter

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

const monthNames = `(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)`

var (
	// "Mar 1-15"
	sameMonthRange = regexp.MustCompile(`(?i)^` + monthNames + `\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	// "Mar 1 - Apr 15"
	crossMonthRange = regexp.MustCompile(`(?i)^` + monthNames + `\s+(\d{1,2})\s*-\s*` + monthNames + `\s+(\d{1,2})$`)
	// "March"
	wholeMonth = regexp.MustCompile(`(?i)^` + monthNames + `$`)
)

// now is replaced in tests
var now = time.Now

// ParseDateRange parses a date range string into start and end times.
//
// Supported formats:
//   - "Mar 1-15" or "March 1-15" - Same month, different days
//   - "March 1 - April 15" - Different months
//   - "March" - Entire month
//
// Months earlier than the current one are taken to be next year's. A range
// whose end month precedes its start month ends in the following year.
// Start is at 00:00:00 UTC, end at 23:59:59 UTC.
func ParseDateRange(input string) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	if m := sameMonthRange.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		day1, err := parseDay(m[2])
		if err != nil {
			return nil, nil, err
		}
		day2, err := parseDay(m[3])
		if err != nil {
			return nil, nil, err
		}

		year := yearForMonth(month)
		from := time.Date(year, month, day1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, month, day2, 23, 59, 59, 0, time.UTC)
		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}
		return &from, &to, nil
	}

	if m := crossMonthRange.FindStringSubmatch(input); m != nil {
		month1, month2 := parseMonth(m[1]), parseMonth(m[3])
		day1, err := parseDay(m[2])
		if err != nil {
			return nil, nil, err
		}
		day2, err := parseDay(m[4])
		if err != nil {
			return nil, nil, err
		}

		year1 := yearForMonth(month1)
		year2 := year1
		if month2 < month1 {
			year2++
		}

		from := time.Date(year1, month1, day1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year2, month2, day2, 23, 59, 59, 0, time.UTC)
		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}
		return &from, &to, nil
	}

	if m := wholeMonth.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		year := yearForMonth(month)
		from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		// Day 0 of the next month is the last day of this one
		to := time.Date(year, month+1, 0, 23, 59, 59, 0, time.UTC)
		return &from, &to, nil
	}

	return nil, nil, fmt.Errorf("invalid date range %q: use 'Feb 1-15', 'Feb 1 - Mar 3' or 'March'", input)
}

// FromValues builds a filter from URL query parameters:
//
//	type=Hiking&type=Skiing  activity types; "all" is ignored
//	available=1              only trips with spots left
//	q=chief                  name/description search
//	members=true|false       members-only trips, or open trips
//	dates=Feb 1-15           start date range
func FromValues(v url.Values) (*Filter, error) {
	f := NewFilter()

	for _, raw := range v["type"] {
		for _, typ := range strings.Split(raw, ",") {
			typ = strings.TrimSpace(typ)
			if typ == "" || strings.EqualFold(typ, "all") {
				continue
			}
			f.Types = append(f.Types, typ)
		}
	}

	if s := v.Get("available"); s != "" {
		on, err := parseFlag(s)
		if err != nil {
			return nil, fmt.Errorf("available: %w", err)
		}
		f.AvailableOnly = on
	}

	f.Query = strings.TrimSpace(v.Get("q"))

	if s := v.Get("members"); s != "" {
		on, err := parseFlag(s)
		if err != nil {
			return nil, fmt.Errorf("members: %w", err)
		}
		f.MembersOnly = &on
	}

	if s := strings.TrimSpace(v.Get("dates")); s != "" {
		from, to, err := ParseDateRange(s)
		if err != nil {
			return nil, err
		}
		f.DateFrom, f.DateTo = from, to
	}

	return f, nil
}

// parseFlag accepts the usual boolean spellings plus the "on" browsers send
// for checked checkboxes
func parseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return b, nil
}

func parseDay(s string) (int, error) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid day: %s", s)
	}
	return day, nil
}

// parseMonth converts a month name to time.Month, 0 if it isn't one
func parseMonth(name string) time.Month {
	abbrev, ok := trip.MonthAbbrev(name)
	if !ok {
		return 0
	}
	t, err := time.Parse("Jan", abbrev)
	if err != nil {
		return 0
	}
	return t.Month()
}

// yearForMonth returns this year, or next year if month has already passed
func yearForMonth(month time.Month) int {
	current := now()
	year := current.Year()
	if month < current.Month() {
		year++
	}
	return year
}
