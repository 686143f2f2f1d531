package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/onboardify/storecrawl/api"
	"github.com/onboardify/storecrawl/cache"
	"github.com/onboardify/storecrawl/config"
	"github.com/onboardify/storecrawl/crawler"
	"github.com/onboardify/storecrawl/store"
)

func main() {
	// ── 1. Load configuration (.env first, then environment) ────────
	_ = godotenv.Load()
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("storecrawl starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"maxPages", cfg.Browser.MaxPages,
	)

	// ── 3. Initialise crawler (launches browser) ────────────────────
	cr, err := crawler.New(cfg.Browser, cfg.Crawler)
	if err != nil {
		slog.Error("failed to initialise crawler", "error", err)
		os.Exit(1)
	}
	defer cr.Close()

	// ── 4. Open the catalog database ────────────────────────────────
	st, err := store.Open(cfg.Catalog.Path)
	if err != nil {
		slog.Error("failed to open catalog database", "error", err, "path", cfg.Catalog.Path)
		os.Exit(1)
	}
	defer st.Close()

	// ── 4b. Initialise crawl result cache ───────────────────────────
	cc := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(cr, st, cc, cfg, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight crawls 10 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// cr.Close() runs via defer — drains page pool and kills Chrome.
	slog.Info("storecrawl stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
