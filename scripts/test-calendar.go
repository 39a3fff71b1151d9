package main

import (
	"fmt"
	"os"

	"github.com/pfrederiksen/bcmc-trips/internal/calendar"
	"github.com/pfrederiksen/bcmc-trips/internal/scraper"
)

// Generates a calendar from a saved listing page so it can be tried in a
// calendar app. Usage: go run ./scripts [page.html]
func main() {
	input := "testdata/fixtures/trips.html"
	if len(os.Args) > 1 {
		input = os.Args[1]
	}

	page, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading page: %v\n", err)
		os.Exit(1)
	}

	trips := scraper.Extract(string(page))
	icsContent := calendar.GenerateICS(trips)

	// Write to file (owner read/write only)
	filename := "test-bcmc-trips.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s (%d trips)\n\n", filename, len(trips))
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
