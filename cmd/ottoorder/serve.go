package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottoorder/internal/catalog"
	"github.com/hammamikhairi/ottoorder/internal/conversation"
	"github.com/hammamikhairi/ottoorder/internal/engine"
	"github.com/hammamikhairi/ottoorder/internal/transport/httpapi"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat endpoint over HTTP",
		Long: `Serve POST /restaurant/{id}/chat and GET /health.

Catalogs are read from --catalog-dir on every request, one file per
restaurant named {id}.json, {id}.yaml or {id}.yml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("catalog-dir", "catalogs", "directory holding catalog documents")
	cmd.Flags().String("timezone", "America/Sao_Paulo", "time zone the opening hours are written in")

	return cmd
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	log, closer := newLogger(cfg)
	defer closer.Close()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	source := catalog.NewDirSource(cfg.Catalog.Dir, log)
	eng := engine.New(conversation.NewKeywordRecognizer(log), log, engine.WithLocation(loc))
	api := httpapi.NewHandler(source, eng, log, httpapi.WithMaxBodyBytes(cfg.Server.MaxBodyBytes))

	handler := httpapi.Chain(
		httpapi.RequestID,
		httpapi.Logging(log),
		httpapi.Recovery(log),
		httpapi.CORS(cfg.CORS),
	)(api.Routes())

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening on %s (catalogs in %s, zone %s)", cfg.Server.Addr, cfg.Catalog.Dir, loc)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listening on %s: %w", cfg.Server.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
