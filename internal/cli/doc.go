// Package cli implements the command-line interface for bcmc-trips.
//
// The cli package provides the Cobra-based CLI: serving the HTTP report,
// listing trips as text or JSON with filtering and sorting, writing the HTML
// report or calendar to a file, and posting trips to Twitter or Telegram.
// Every command reads its defaults from the environment through the config
// package.
package cli
