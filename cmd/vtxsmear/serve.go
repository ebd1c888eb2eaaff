package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/api"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/engine"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/sink"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP smearing service with config hot-reload",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "HTTP listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, p, err := setup()
	if err != nil {
		return err
	}
	cfg := rt.loader.Config()

	pub, err := sink.New(cfg.Output)
	if err != nil {
		return err
	}
	defer pub.Close()

	// ── Engine ────────────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := engine.New(ctx, p, pub, cfg.Engine)

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	// Engine, random and output settings are fixed at startup; the API handler
	// stages and swaps the module chain on every accepted reload.
	handler := api.New(eng, rt.loader, rt.build)
	stopWatch, err := rt.loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         serveAddr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", serveAddr, "streams", cfg.Engine.Streams, "output", pub.Kind())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errC:
		slog.Error("server error", "err", err)
		eng.Shutdown()
		return err
	}
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	eng.Shutdown()
	slog.Info("goodbye")
	return nil
}
