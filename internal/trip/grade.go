package trip

import "regexp"

var gradePattern = regexp.MustCompile(`^([A-D])(\d)`)

// Strenuousness describes the letter part of a club grade
var Strenuousness = map[string]string{
	"A": "<4h, easy",
	"B": "4-8h, moderate",
	"C": "8-12h, strenuous",
	"D": ">12h, extreme",
}

// Technical describes the digit part of a club grade
var Technical = map[string]string{
	"1": "Groomed trails",
	"2": "Off-trail, some hands",
	"3": "Scrambling, rope possible",
	"4": "Climbing, belaying",
	"5": "Technical, hardware",
	"6": "Aid climbing",
}

// Grade is a club difficulty code such as "B2" split into its parts
type Grade struct {
	Code          string
	Strenuousness string // Letter A-D
	Technical     string // Digit
}

// ParseGrade decomposes a grade code. ok is false when code does not start
// with a strenuousness letter followed by a technical digit.
func ParseGrade(code string) (g Grade, ok bool) {
	m := gradePattern.FindStringSubmatch(code)
	if m == nil {
		return Grade{}, false
	}
	return Grade{Code: code, Strenuousness: m[1], Technical: m[2]}, true
}

// Tooltip describes the grade, e.g. "4-8h, moderate · Off-trail, some hands".
// Unknown digits leave their half empty.
func (g Grade) Tooltip() string {
	return Strenuousness[g.Strenuousness] + " · " + Technical[g.Technical]
}

// GradeTooltip returns the description of the trip's grade, or "" if the
// trip has no parsable grade.
func (t *Trip) GradeTooltip() string {
	g, ok := ParseGrade(t.Grade)
	if !ok {
		return ""
	}
	return g.Tooltip()
}
