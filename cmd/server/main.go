package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/pdfcascade/internal/api"
	"github.com/dgallion1/pdfcascade/internal/config"
	"github.com/dgallion1/pdfcascade/internal/extract"
	"github.com/dgallion1/pdfcascade/internal/pdftotext"
	"github.com/dgallion1/pdfcascade/internal/pipeline"
)

func main() {
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.EnableExternalTool && !pdftotext.New(cfg.PdftotextBin).Available() {
		log.Warn("external tool not found, that step will always fail", "bin", cfg.PdftotextBin)
	}

	stats := extract.NewStats(time.Hour)
	ex := pipeline.NewExtractor(cfg, stats, log)

	pool := pipeline.NewPool(cfg, ex, log)
	pool.Start(ctx)

	srv := api.NewServer(ex, pool, stats, log, cfg)

	// Synchronous extraction may run every method back to back.
	writeTimeout := 2*cfg.StructuredTimeout + cfg.OCRTimeout + cfg.ExternalToolTimeout + 30*time.Second

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		pool.Stop()
	}()

	log.Info("starting pdfcascade",
		"port", cfg.Port,
		"methods", ex.Methods(),
		"min_chars", cfg.MinChars,
		"auth", cfg.APIKey != "",
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
