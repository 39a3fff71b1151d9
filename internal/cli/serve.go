package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pfrederiksen/bcmc-trips/internal/logger"
	"github.com/pfrederiksen/bcmc-trips/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the trip report over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				a.cfg.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default $PORT or 8080)")

	return cmd
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout
func (a *app) serve(ctx context.Context) error {
	handler := server.New(a.scraper(), server.Options{
		CacheMaxAge: a.cfg.CacheMaxAge,
		CORSOrigins: a.cfg.CORSOrigins,
		SourceURL:   a.cfg.EventsURL,
	})
	srv := server.NewHTTPServer(a.cfg.Addr(), handler, a.cfg.FetchTimeout)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server starting", logger.Fields{
			"addr":   srv.Addr,
			"source": a.cfg.EventsURL,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening on %s: %w", srv.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		logger.Info("Server stopped", nil)
		return nil
	})

	return g.Wait()
}
