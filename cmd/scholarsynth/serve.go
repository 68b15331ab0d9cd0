// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarsynth/internal/config"
	"github.com/pdiddy/scholarsynth/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and JSON API",
	Long: `Serve starts the HTTP server: a single-page web UI for generating and
downloading literature reviews, backed by a JSON API. Reviews are kept in
memory unless store.path configures a SQLite history database.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	deps, err := buildPipeline(cmd, &cfg)
	if err != nil {
		return err
	}
	defer deps.close()

	srv, err := server.New(deps.pipeline, deps.store, deps.pipeline.Client.Model())
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(cfg.Server.AllowedOrigins),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "scholarsynth listening on %s\n", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().String("model", "", "Groq model identifier")
	serveCmd.Flags().Int("max-papers", 0, "papers fetched per topic (default 5)")
	serveCmd.Flags().String("agents", "", "YAML file overriding agent definitions")

	rootCmd.AddCommand(serveCmd)
}
