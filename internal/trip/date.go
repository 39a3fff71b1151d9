package trip

import (
	"strconv"
	"strings"
	"time"
)

var monthAbbrevs = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var weekdays = map[string]bool{
	"mon": true, "monday": true,
	"tue": true, "tues": true, "tuesday": true,
	"wed": true, "weds": true, "wednesday": true,
	"thu": true, "thur": true, "thurs": true, "thursday": true,
	"fri": true, "friday": true,
	"sat": true, "saturday": true,
	"sun": true, "sunday": true,
}

// MonthAbbrev returns the three-letter month abbreviation ("Feb") for a month
// word such as "feb", "Feb.", "February" or "Sept". ok is false if word is not
// a month.
func MonthAbbrev(word string) (abbrev string, ok bool) {
	w := strings.ToLower(strings.TrimRight(strings.TrimSpace(word), ".,"))
	if len(w) < 3 {
		return "", false
	}
	for i, m := range monthAbbrevs {
		full := strings.ToLower(time.Month(i + 1).String())
		lm := strings.ToLower(m)
		if w == lm || w == full || (w == "sept" && lm == "sep") {
			return m, true
		}
	}
	return "", false
}

// IsWeekday reports whether word is a weekday name or abbreviation ("Fri", "Tues.")
func IsWeekday(word string) bool {
	return weekdays[strings.ToLower(strings.TrimRight(strings.TrimSpace(word), ".,"))]
}

// HasMonth reports whether a date token already starts with a month
func HasMonth(token string) bool {
	fields := strings.Fields(token)
	if len(fields) == 0 {
		return false
	}
	_, ok := MonthAbbrev(fields[0])
	return ok
}

// WithMonth qualifies a date token with month.
//
// Tokens that already start with a month are returned unchanged. Otherwise a
// leading weekday is dropped and month is prepended: WithMonth("Fri 2", "Jan")
// returns "Jan 2". An empty month leaves the token as it is.
func WithMonth(token, month string) string {
	if month == "" || token == "" || HasMonth(token) {
		return token
	}
	fields := strings.Fields(token)
	if len(fields) > 0 && IsWeekday(fields[0]) {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return token
	}
	return month + " " + strings.Join(fields, " ")
}

// DatePart splits a date token into its label and day, e.g. "Fri 2" into
// ("Fri", "2") and "Feb 14" into ("Feb", "14"). A lone token is treated as
// the day; an empty token yields day "?".
func DatePart(token string) (label, day string) {
	fields := strings.Fields(token)
	switch {
	case len(fields) >= 2:
		return fields[0], fields[1]
	case len(fields) == 1:
		return "", fields[0]
	default:
		return "", "?"
	}
}

// ParseDate resolves a month-qualified token such as "Feb 2" to a date in
// year. A year of 0 means the current year. Returns the zero time if the
// token has no month or no valid day.
func ParseDate(token string, year int) time.Time {
	fields := strings.Fields(token)
	if len(fields) < 2 {
		return time.Time{}
	}
	abbrev, ok := MonthAbbrev(fields[0])
	if !ok {
		return time.Time{}
	}
	day, err := strconv.Atoi(strings.TrimRight(fields[1], ".,"))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}
	}
	if year <= 0 {
		year = time.Now().Year()
	}

	month := monthNumber(abbrev)
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month {
		// Feb 30 and friends
		return time.Time{}
	}
	return t
}

// StartDate returns the calendar date the trip starts on, or the zero time
// if DateStart carries no month.
func (t *Trip) StartDate() time.Time {
	return ParseDate(t.DateStart, t.Year)
}

// EndDate returns the calendar date the trip ends on.
//
// Listing rows only carry the month of their section header, so a trip that
// crosses into the next month ends up with an end day before its start day.
// Such end dates are moved to the following month (or year, when the tokens
// name different months). Returns the zero time if the start date is unknown.
func (t *Trip) EndDate() time.Time {
	start := t.StartDate()
	if start.IsZero() {
		return time.Time{}
	}
	end := ParseDate(t.DateEnd, start.Year())
	if end.IsZero() {
		return start
	}
	if end.Before(start) {
		if end.Month() == start.Month() {
			end = end.AddDate(0, 1, 0)
		} else {
			end = end.AddDate(1, 0, 0)
		}
	}
	return end
}

func monthNumber(abbrev string) time.Month {
	for i, m := range monthAbbrevs {
		if m == abbrev {
			return time.Month(i + 1)
		}
	}
	return 0
}
