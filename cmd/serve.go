package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/utahvbr/bizdirctl/internal/directory/httpapi"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the directory over HTTP",
	Long: `Starts an HTTP server exposing the configured directory as a JSON API, so
other bizdirctl clients can use it with the remote backend.

Endpoints:
  GET /api/v1/records                         filter query (q, category, county)
  GET /api/v1/records/{id}                    record detail
  GET /api/v1/object-info/{object}            object metadata
  GET /api/v1/picklist-values/{rt}/{field}    picklist values
  GET /healthz                                liveness
  GET /metrics                                Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := appConfig.Serve.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// runServe serves until ctx is cancelled, then drains open requests.
func runServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.New(dir).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("directory API listening", slog.String("addr", addr), slog.String("backend", appConfig.Backend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	slog.Info("shutting down directory API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
