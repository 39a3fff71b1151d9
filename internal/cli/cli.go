package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pfrederiksen/bcmc-trips/internal/config"
	"github.com/pfrederiksen/bcmc-trips/internal/logger"
	"github.com/pfrederiksen/bcmc-trips/internal/scraper"
	"github.com/pfrederiksen/bcmc-trips/internal/trip"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// app carries the state shared by every subcommand
type app struct {
	cfg config.Config

	flagURL      string
	flagBaseURL  string
	flagLogLevel string
	flagInput    string
	flagVerbose  bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "bcmc-trips",
		Short: "Browse upcoming BCMC trips",
		Long: `A tool for the British Columbia Mountaineering Club's trip listing.
Fetches the public events page, extracts the trips and serves or prints them
as an HTML report, JSON, iCalendar or Atom.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.flagURL, "url", "", "Listing page URL (default $BCMC_URL or "+config.DefaultEventsURL+")")
	flags.StringVar(&a.flagBaseURL, "base-url", "", "Origin for relative links (default $BCMC_BASE_URL or "+config.DefaultBaseURL+")")
	flags.StringVar(&a.flagLogLevel, "log-level", "", "Log level: debug, info, warn or error (default $LOG_LEVEL or info)")
	flags.StringVar(&a.flagInput, "input", "", "Read a saved listing page instead of fetching it")
	flags.BoolVar(&a.flagVerbose, "verbose", false, "Enable verbose output")

	cmd.AddCommand(
		newServeCmd(a),
		newListCmd(a),
		newRenderCmd(a),
		newICSCmd(a),
		newNotifyCmd(a),
	)

	return cmd
}

// setup loads configuration, applies flag overrides and configures logging
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if a.flagURL != "" {
		cfg.EventsURL = a.flagURL
	}
	if a.flagBaseURL != "" {
		cfg.BaseURL = a.flagBaseURL
	}
	if a.flagLogLevel != "" {
		cfg.LogLevel = a.flagLogLevel
	}
	if a.flagVerbose {
		cfg.LogLevel = "debug"
	}

	level, ok := logger.ParseLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn or error)", cfg.LogLevel)
	}
	// stdout is reserved for command output
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	a.cfg = cfg
	return nil
}

func (a *app) scraper() *scraper.Scraper {
	return scraper.New(
		scraper.WithURL(a.cfg.EventsURL),
		scraper.WithBaseURL(a.cfg.BaseURL),
		scraper.WithTimeout(a.cfg.FetchTimeout),
		scraper.WithUserAgent(a.cfg.UserAgent),
		scraper.WithRateLimit(a.cfg.FetchRate, a.cfg.FetchBurst),
	)
}

// loadTrips extracts trips from --input when given, otherwise from the
// listing page
func (a *app) loadTrips(ctx context.Context) ([]*trip.Trip, error) {
	if a.flagInput != "" {
		data, err := os.ReadFile(a.flagInput)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		return scraper.NewExtractor(a.cfg.BaseURL).Extract(string(data)), nil
	}

	logger.Debug("Fetching listing page", logger.Fields{"url": a.cfg.EventsURL})
	trips, err := a.scraper().FetchTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching trips: %w", err)
	}
	return trips, nil
}

// openOutput returns stdout for "" or "-", otherwise creates path
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
