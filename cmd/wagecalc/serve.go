package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/warp/wage-engine/api"
	"github.com/warp/wage-engine/config"
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/earnings/store"
	"github.com/warp/wage-engine/store/sqlite"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the calculator HTTP API",
	Long: `Serves the calculator API under /api and Prometheus metrics under /metrics.

The workspace lives as long as the process: the sqlite driver keeps it in a
named in-memory database, the memory driver in a plain struct.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func openStore(initial earnings.Workspace) (earnings.WorkspaceStore, func() error, error) {
	if cfg.Store.Driver == config.StoreMemory {
		return store.NewMemory(initial), func() error { return nil }, nil
	}
	s, err := sqlite.New(cfg.Store.Name, initial)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	initial, err := cfg.InitialWorkspace()
	if err != nil {
		return err
	}

	ws, closeStore, err := openStore(initial)
	if err != nil {
		return err
	}
	defer closeStore()

	var metrics *api.Metrics
	if cfg.Metrics.Enabled {
		metrics = api.NewMetrics()
	}
	handler := api.NewHandler(ws, metrics, logger)
	router := api.NewRouter(handler, api.Options{AllowedOrigins: cfg.HTTP.AllowedOrigins})

	addr := cfg.HTTP.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", addr).
			Str("store", cfg.Store.Driver).
			Bool("metrics", metrics != nil).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
