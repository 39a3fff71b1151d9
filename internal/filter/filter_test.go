package filter

import (
	"testing"
	"time"

	"github.com/pfrederiksen/bcmc-trips/internal/trip"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func boolPtr(b bool) *bool {
	return &b
}

func TestFilter_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{
			name:   "empty filter",
			filter: NewFilter(),
			want:   true,
		},
		{
			name:   "zero value",
			filter: &Filter{},
			want:   true,
		},
		{
			name:   "blank query",
			filter: &Filter{Query: "   "},
			want:   true,
		},
		{
			name:   "filter with type",
			filter: &Filter{Types: []string{"Hiking"}},
			want:   false,
		},
		{
			name:   "filter with available only",
			filter: &Filter{AvailableOnly: true},
			want:   false,
		},
		{
			name:   "filter with members false",
			filter: &Filter{MembersOnly: boolPtr(false)},
			want:   false,
		},
		{
			name:   "filter with date from",
			filter: &Filter{DateFrom: timePtr(time.Now())},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEmpty(); got != tt.want {
				t.Errorf("Filter.IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	feb1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	feb15 := time.Date(2026, 2, 15, 23, 59, 59, 0, time.UTC)

	hike := &trip.Trip{
		DateStart:       "Feb 14",
		DateEnd:         "Feb 14",
		Year:            2026,
		Name:            "Stawamus Chief Scramble",
		Type:            "Hiking",
		Description:     "Steep granite, bring gloves.",
		MaxParticipants: 6,
		Registered:      3,
	}
	hut := &trip.Trip{
		DateStart:       "Jan 30",
		DateEnd:         "Feb 1",
		Year:            2026,
		Name:            "Elfin Lakes Hut Trip",
		Type:            "Ski Touring",
		MaxParticipants: 8,
		Registered:      8,
		MembersOnly:     true,
	}
	undated := &trip.Trip{
		DateStart: "Sat 7",
		DateEnd:   "Sat 7",
		Name:      "Mystery Walk",
		Type:      "Hiking",
	}

	tests := []struct {
		name   string
		filter *Filter
		trip   *trip.Trip
		want   bool
	}{
		{
			name:   "empty filter matches all",
			filter: NewFilter(),
			trip:   hut,
			want:   true,
		},
		{
			name:   "type matches case-insensitively",
			filter: &Filter{Types: []string{"hiking"}},
			trip:   hike,
			want:   true,
		},
		{
			name:   "any of several types",
			filter: &Filter{Types: []string{"Skiing", "Ski Touring"}},
			trip:   hut,
			want:   true,
		},
		{
			name:   "type doesn't match",
			filter: &Filter{Types: []string{"Skiing"}},
			trip:   hike,
			want:   false,
		},
		{
			name:   "available only drops full trip",
			filter: &Filter{AvailableOnly: true},
			trip:   hut,
			want:   false,
		},
		{
			name:   "available only keeps open trip",
			filter: &Filter{AvailableOnly: true},
			trip:   hike,
			want:   true,
		},
		{
			name:   "query matches name",
			filter: &Filter{Query: "CHIEF"},
			trip:   hike,
			want:   true,
		},
		{
			name:   "query matches description",
			filter: &Filter{Query: "granite"},
			trip:   hike,
			want:   true,
		},
		{
			name:   "query doesn't match",
			filter: &Filter{Query: "kayak"},
			trip:   hike,
			want:   false,
		},
		{
			name:   "members only",
			filter: &Filter{MembersOnly: boolPtr(true)},
			trip:   hike,
			want:   false,
		},
		{
			name:   "open to all",
			filter: &Filter{MembersOnly: boolPtr(false)},
			trip:   hike,
			want:   true,
		},
		{
			name:   "date within range",
			filter: &Filter{DateFrom: &feb1, DateTo: &feb15},
			trip:   hike,
			want:   true,
		},
		{
			name:   "starts before range",
			filter: &Filter{DateFrom: &feb1, DateTo: &feb15},
			trip:   hut,
			want:   false,
		},
		{
			name:   "unresolvable date passes range",
			filter: &Filter{DateFrom: &feb1, DateTo: &feb15},
			trip:   undated,
			want:   true,
		},
		{
			name:   "all criteria must hold",
			filter: &Filter{Types: []string{"Hiking"}, Query: "elfin"},
			trip:   hike,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.trip); got != tt.want {
				t.Errorf("Filter.Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	trips := []*trip.Trip{
		{Name: "A", Type: "Hiking", MaxParticipants: 4, Registered: 1},
		{Name: "B", Type: "Skiing", MaxParticipants: 4, Registered: 4},
		{Name: "C", Type: "Hiking", MaxParticipants: 4, Registered: 4},
		{Name: "D", Type: "Hiking", MaxParticipants: 4, Registered: 0},
	}

	tests := []struct {
		name   string
		filter *Filter
		want   []string
	}{
		{
			name:   "empty filter keeps everything",
			filter: NewFilter(),
			want:   []string{"A", "B", "C", "D"},
		},
		{
			name:   "order is preserved",
			filter: &Filter{Types: []string{"Hiking"}, AvailableOnly: true},
			want:   []string{"A", "D"},
		},
		{
			name:   "nothing matches",
			filter: &Filter{Types: []string{"Kayaking"}},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(trips)
			if got == nil {
				t.Fatal("Apply() returned nil")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Apply() returned %d trips, want %d", len(got), len(tt.want))
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("Apply()[%d] = %q, want %q", i, got[i].Name, name)
				}
			}
		})
	}
}

func TestFilter_String(t *testing.T) {
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter *Filter
		want   string
	}{
		{
			name:   "empty",
			filter: NewFilter(),
			want:   "No active filters",
		},
		{
			name:   "types and availability",
			filter: &Filter{Types: []string{"Hiking", "Skiing"}, AvailableOnly: true},
			want:   "Types: Hiking, Skiing | Available only",
		},
		{
			name:   "query members and date",
			filter: &Filter{Query: "hut", MembersOnly: boolPtr(false), DateFrom: &from},
			want:   `Query: "hut" | Open to all | From: Feb 1, 2026`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.String(); got != tt.want {
				t.Errorf("Filter.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
