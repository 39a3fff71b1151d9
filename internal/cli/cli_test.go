package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/bcmc-trips/internal/trip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../../testdata/fixtures/trips.html"

// run executes the root command with args and returns what it wrote to stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"TWITTER_API_KEY", "TWITTER_API_SECRET", "TWITTER_ACCESS_TOKEN", "TWITTER_ACCESS_SECRET", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID"} {
		t.Setenv(key, "")
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func fixturePath(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(fixture)
	require.NoError(t, err)
	return path
}

func TestList_text(t *testing.T) {
	out, err := run(t, "list", "--input", fixturePath(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Elfin Lakes Hut Trip (Backcountry Skiing, B2) - full, 2 waiting")
	assert.Contains(t, out, "Snowshoe Basics (Instructional Program) - 6 spots left")
	assert.Contains(t, out, "Stawamus Chief Scramble (Hiking")
	assert.Contains(t, out, "Total: 3 trips")
	assert.NotContains(t, out, "TBA")
}

func TestList_verbose(t *testing.T) {
	out, err := run(t, "list", "--input", fixturePath(t), "--verbose")
	require.NoError(t, err)

	assert.Contains(t, out, "URL: https://bcmc.ca/m/events/view/101")
	assert.Contains(t, out, "Organizer: ")
}

func TestList_json(t *testing.T) {
	out, err := run(t, "list", "--input", fixturePath(t), "--format", "json", "--type", "hiking")
	require.NoError(t, err)

	var result OutputResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, fixturePath(t), result.Source)
	require.Len(t, result.Trips, 1)
	assert.Equal(t, "Stawamus Chief Scramble", result.Trips[0].Name)
	assert.Equal(t, "Types: hiking", result.Filter)
}

func TestList_noMatches(t *testing.T) {
	out, err := run(t, "list", "--input", fixturePath(t), "--query", "glacier")
	require.NoError(t, err)
	assert.Contains(t, out, "No trips match")
}

func TestList_sortByType(t *testing.T) {
	out, err := run(t, "list", "--input", fixturePath(t), "--format", "json", "--sort", "type")
	require.NoError(t, err)

	var result OutputResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Trips, 3)

	names := []string{result.Trips[0].Name, result.Trips[1].Name, result.Trips[2].Name}
	assert.Equal(t, []string{"Elfin Lakes Hut Trip", "Stawamus Chief Scramble", "Snowshoe Basics"}, names)
}

func TestList_invalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"format", []string{"--format", "xml"}, "invalid format: xml"},
		{"sort", []string{"--sort", "price"}, "invalid sort order: price"},
		{"dates", []string{"--dates", "someday"}, "someday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"list", "--input", fixturePath(t)}, tt.args...)
			_, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestList_missingInput(t *testing.T) {
	_, err := run(t, "list", "--input", filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading input")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "list", "--input", fixturePath(t), "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRender_toFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "trips.html")

	out, err := run(t, "render", "--input", fixturePath(t), "-o", output)
	require.NoError(t, err)
	assert.Empty(t, out)

	page, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<!DOCTYPE html>")
	assert.Contains(t, string(page), "Snowshoe Basics")
	assert.Contains(t, string(page), `<span id="visible-count">3</span>`)
}

func TestICS_stdout(t *testing.T) {
	out, err := run(t, "ics", "--input", fixturePath(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.Equal(t, 3, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "SUMMARY:Elfin Lakes Hut Trip")
}

func TestNotify_dryRun(t *testing.T) {
	out, err := run(t, "notify", "--input", fixturePath(t), "--dry-run", "--available")
	require.NoError(t, err)

	assert.Contains(t, out, "--- Post 1/2 ---")
	assert.Contains(t, out, "Snowshoe Basics")
	assert.Contains(t, out, "Stawamus Chief Scramble")
	assert.NotContains(t, out, "Elfin Lakes Hut Trip")
}

func TestNotify_max(t *testing.T) {
	out, err := run(t, "notify", "--input", fixturePath(t), "--dry-run", "--max", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "--- Post 1/1 ---")
	assert.NotContains(t, out, "Post 2/")
}

func TestNotify_nothingToPost(t *testing.T) {
	out, err := run(t, "notify", "--input", fixturePath(t), "--dry-run", "--type", "Rock Climbing")
	require.NoError(t, err)
	assert.Equal(t, "No trips to post.\n", out)
}

func TestNotify_missingCredentials(t *testing.T) {
	_, err := run(t, "notify", "--input", fixturePath(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--dry-run")
}

func TestNotify_telegramDryRun(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name:    "per trip",
			args:    []string{"--available"},
			want:    []string{"--- Post 1/2 ---", "<b>Snowshoe Basics</b>", "<b>Stawamus Chief Scramble</b>"},
			notWant: []string{"#BCMC"},
		},
		{
			name:    "digest",
			args:    []string{"--digest"},
			want:    []string{"--- Post 1/1 ---", "<b>BCMC Trips</b> • 3 trips", "<b>Hiking</b> (1)"},
			notWant: []string{"Post 2/", "#BCMC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"notify", "--input", fixturePath(t), "--channel", "telegram", "--dry-run"}, tt.args...)
			out, err := run(t, args...)
			require.NoError(t, err)

			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestNotify_channelErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown channel", []string{"--channel", "fax"}, "invalid channel: fax"},
		{"digest on twitter", []string{"--digest", "--dry-run"}, "--digest requires --channel telegram"},
		{"telegram credentials", []string{"--channel", "telegram"}, "TELEGRAM_BOT_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"notify", "--input", fixturePath(t)}, tt.args...)
			_, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSortTrips(t *testing.T) {
	newTrips := func() []*trip.Trip {
		return []*trip.Trip{
			{Name: "undated", Type: "Hiking"},
			{Name: "Mar trip", Type: "hiking", DateStart: "Mar 3", DateEnd: "Mar 3", Year: 2026},
			{Name: "alpine", Type: "Backcountry Skiing", DateStart: "Feb 2", DateEnd: "Feb 2", Year: 2026},
		}
	}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortBySource, []string{"undated", "Mar trip", "alpine"}},
		{SortByDate, []string{"alpine", "Mar trip", "undated"}},
		{SortByName, []string{"alpine", "Mar trip", "undated"}},
		{SortByType, []string{"alpine", "Mar trip", "undated"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			trips := newTrips()
			sortTrips(trips, tt.order)

			got := make([]string, len(trips))
			for i, tr := range trips {
				got[i] = tr.Name
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    SortOrder
		wantErr bool
	}{
		{"", SortBySource, false},
		{"Date", SortByDate, false},
		{" name ", SortByName, false},
		{"type", SortByType, false},
		{"price", "", true},
	}

	for _, tt := range tests {
		got, err := ParseSortOrder(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSortOrder(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSortOrder(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAvailability(t *testing.T) {
	tests := []struct {
		max, registered, waiting int
		want                     string
	}{
		{10, 4, 0, "6 spots left"},
		{10, 9, 0, "1 spot left"},
		{8, 8, 0, "full"},
		{8, 8, 2, "full, 2 waiting"},
		{0, 0, 0, "full"},
	}

	for _, tt := range tests {
		tr := &trip.Trip{MaxParticipants: tt.max, Registered: tt.registered, WaitingList: tt.waiting}
		if got := availability(tr); got != tt.want {
			t.Errorf("availability(%d/%d, %d waiting) = %q, want %q", tt.registered, tt.max, tt.waiting, got, tt.want)
		}
	}
}
