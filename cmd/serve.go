package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/satheeshds/invoicer/handlers"
	"github.com/satheeshds/invoicer/logger"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the invoicing API under /api/v1 and the swagger UI under /swagger/.

The store is chosen by STORE_DRIVER (duckdb, postgres or memory) and its
migrations run on startup. Requests must carry the X-Owner-ID header.`,
	Example: `  # Serve on the configured PORT
  invoicer serve

  # Serve on another port
  invoicer serve --port 9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "", "Port to listen on (default: PORT or 8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	port, _ := cmd.Flags().GetString("port")
	if port == "" {
		port = appConfig.Port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, appConfig)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer b.Close()

	srv := &handlers.Server{
		Invoices: b.invoices,
		Settings: b.settings,
		Clients:  b.store,
		AuthUser: appConfig.AuthUser,
		AuthPass: appConfig.AuthPass,
	}
	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", httpServer.Addr).Str("store", appConfig.StoreDriver).Msg("server starting")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
