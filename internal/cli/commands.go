package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/bcmc-trips/internal/calendar"
	"github.com/pfrederiksen/bcmc-trips/internal/filter"
	"github.com/pfrederiksen/bcmc-trips/internal/logger"
	"github.com/pfrederiksen/bcmc-trips/internal/notifier"
	"github.com/pfrederiksen/bcmc-trips/internal/render"
	"github.com/spf13/cobra"
)

// filterFlags are the trip selection flags shared by list and notify
type filterFlags struct {
	types     []string
	available bool
	query     string
	dates     string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&ff.types, "type", nil, "Only these activity types (repeatable or comma-separated)")
	cmd.Flags().BoolVar(&ff.available, "available", false, "Only trips with spots left")
	cmd.Flags().StringVar(&ff.query, "query", "", "Only trips whose name or description contains this text")
	cmd.Flags().StringVar(&ff.dates, "dates", "", "Only trips starting in this range, e.g. 'Feb 1-15', 'Feb 1 - Mar 3' or 'March'")
}

func (ff *filterFlags) build() (*filter.Filter, error) {
	f := filter.NewFilter()
	for _, t := range ff.types {
		if t = strings.TrimSpace(t); t != "" {
			f.Types = append(f.Types, t)
		}
	}
	f.AvailableOnly = ff.available
	f.Query = ff.query
	if ff.dates != "" {
		from, to, err := filter.ParseDateRange(ff.dates)
		if err != nil {
			return nil, err
		}
		f.DateFrom, f.DateTo = from, to
	}
	return f, nil
}

func newListCmd(a *app) *cobra.Command {
	var (
		ff     filterFlags
		format string
		order  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print upcoming trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat := OutputFormat(strings.ToLower(format))
			if outFormat != FormatText && outFormat != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", format)
			}
			sortOrder, err := ParseSortOrder(order)
			if err != nil {
				return err
			}
			f, err := ff.build()
			if err != nil {
				return err
			}

			trips, err := a.loadTrips(cmd.Context())
			if err != nil {
				return err
			}

			matched := f.Apply(trips)
			sortTrips(matched, sortOrder)

			result := &OutputResult{
				FetchedAt: time.Now().UTC(),
				Source:    a.source(),
				Filter:    f.String(),
				Trips:     matched,
				Count:     len(matched),
				Total:     len(trips),
			}
			return WriteOutput(cmd.OutOrStdout(), result, outFormat, a.flagVerbose)
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&order, "sort", string(SortBySource), "Sort order: source, date, name or type")

	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the HTML trip report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trips, err := a.loadTrips(cmd.Context())
			if err != nil {
				return err
			}

			w, err := openOutput(cmd, output)
			if err != nil {
				return err
			}
			if err := render.Page(w, trips, render.Options{SourceURL: a.cfg.EventsURL}); err != nil {
				w.Close() //nolint:errcheck
				return err
			}
			if err := w.Close(); err != nil {
				return fmt.Errorf("closing output: %w", err)
			}

			logger.Info("Rendered report", logger.Fields{"trips": len(trips), "output": outputName(output)})
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

func newICSCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Write the trips as an iCalendar file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trips, err := a.loadTrips(cmd.Context())
			if err != nil {
				return err
			}

			w, err := openOutput(cmd, output)
			if err != nil {
				return err
			}
			if _, err := w.Write([]byte(calendar.GenerateICS(trips))); err != nil {
				w.Close() //nolint:errcheck
				return fmt.Errorf("writing calendar: %w", err)
			}
			if err := w.Close(); err != nil {
				return fmt.Errorf("closing output: %w", err)
			}

			logger.Info("Wrote calendar", logger.Fields{"trips": len(trips), "output": outputName(output)})
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

func newNotifyCmd(a *app) *cobra.Command {
	var (
		ff      filterFlags
		channel string
		dryRun  bool
		digest  bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Post upcoming trips to Twitter or Telegram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--max must not be negative")
			}
			f, err := ff.build()
			if err != nil {
				return err
			}

			n, err := a.notifier(cmd, channel, dryRun, digest)
			if err != nil {
				return err
			}

			trips, err := a.loadTrips(cmd.Context())
			if err != nil {
				return err
			}

			selected := f.Apply(trips)
			if limit > 0 && len(selected) > limit {
				selected = selected[:limit]
			}
			if len(selected) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No trips to post.")
				return nil
			}

			if err := n.Notify(selected); err != nil {
				return fmt.Errorf("posting trips: %w", err)
			}
			logger.Info("Posted trips", logger.Fields{"count": len(selected), "channel": channel, "dry_run": dryRun})
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&channel, "channel", "twitter", "Where to post: twitter or telegram")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the posts instead of publishing them")
	cmd.Flags().BoolVar(&digest, "digest", false, "Send one Telegram digest message instead of one per trip")
	cmd.Flags().IntVar(&limit, "max", 5, "Post at most this many trips (0 for no limit)")

	return cmd
}

// notifier picks the notifier for the requested channel. Credentials are
// checked before anything is fetched.
func (a *app) notifier(cmd *cobra.Command, channel string, dryRun, digest bool) (notifier.Notifier, error) {
	channel = strings.ToLower(channel)
	if channel != "twitter" && channel != "telegram" {
		return nil, fmt.Errorf("invalid channel: %s (must be 'twitter' or 'telegram')", channel)
	}
	if digest && channel != "telegram" {
		return nil, fmt.Errorf("--digest requires --channel telegram")
	}
	if dryRun {
		if channel == "telegram" {
			return notifier.NewTelegramDryRunNotifier(cmd.OutOrStdout(), digest), nil
		}
		return notifier.NewDryRunNotifier(cmd.OutOrStdout()), nil
	}

	if channel == "telegram" {
		n, err := notifier.NewTelegramNotifier(a.cfg.Telegram, digest)
		if err != nil {
			return nil, fmt.Errorf("%w (set TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID, or use --dry-run)", err)
		}
		return n, nil
	}

	n, err := notifier.NewTwitterNotifier(a.cfg.Twitter)
	if err != nil {
		return nil, fmt.Errorf("%w (set TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN and TWITTER_ACCESS_SECRET, or use --dry-run)", err)
	}
	return n, nil
}

// source names where trips were read from
func (a *app) source() string {
	if a.flagInput != "" {
		return a.flagInput
	}
	return a.cfg.EventsURL
}

func outputName(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}
