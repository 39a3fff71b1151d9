// Package scraper provides HTTP fetching and HTML parsing for the BCMC event listing.
//
// The scraper package fetches the club's public events page and extracts one trip
// record per listing row: dates, name and link, activity type, grade, description,
// participant counts and organizer. Listing rows often show only a weekday and day
// ("Fri 2"); the month is taken from the month/year section header above the row.
// Extraction is tolerant: malformed markup yields fewer or sparser records, never
// an error.
package scraper
