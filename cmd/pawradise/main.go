// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command pawradise serves the Pawradise storefront and back-office web tier
// in front of the Pawradise REST API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/app"
	"github.com/HariHaran212/Pawradize-sub000/internal/cache"
	"github.com/HariHaran212/Pawradize-sub000/internal/cart"
	"github.com/HariHaran212/Pawradize-sub000/internal/config"
	"github.com/HariHaran212/Pawradize-sub000/internal/identity"
	"github.com/HariHaran212/Pawradize-sub000/internal/logging"
	"github.com/HariHaran212/Pawradize-sub000/internal/middleware"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
	"github.com/HariHaran212/Pawradize-sub000/internal/session"
	"github.com/HariHaran212/Pawradize-sub000/internal/store"
	"github.com/HariHaran212/Pawradize-sub000/internal/version"
	"github.com/HariHaran212/Pawradize-sub000/web"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Pawradise - pet adoption and pet supplies web tier\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAWRADISE_SESSION_SECRET  Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAWRADISE_API_URL         Backend REST API (default: http://localhost:8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAWRADISE_DB_PATH         Session database path (default: ./data/sessions.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAWRADISE_SERVER_PORT     Server port (default: 3000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAWRADISE_ENV             development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAWRADISE_REDIS_URL       Redis for the guide cache and carts (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("pawradise %s\n", version.Get())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	logger := slog.New(logging.NewMetricsHandler(textHandler))
	slog.SetDefault(logger)
	slog.Info("starting pawradise", "version", version.Get().String(), "env", cfg.Env)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing session database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if n, err := store.PurgeExpiredSessions(db, time.Now()); err != nil {
		slog.Warn("purging expired sessions", "error", err)
	} else if n > 0 {
		slog.Info("purged expired sessions", "count", n)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	tokens := session.NewTokenStore(sessionManager)

	var rdb *redis.Client
	if cfg.UseRedis() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		rdb, err = cache.ConnectRedis(ctx, cache.DefaultRedisOptions(cfg.RedisURL))
		cancel()
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = rdb.Close() }()
		slog.Info("redis connected")
	}

	guideCache := cache.New(cache.Config{
		Redis:      rdb,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.GuideCacheTTL,
		MaxEntries: 1000,
	})
	defer func() { _ = guideCache.Close() }()

	var cartRepo cart.Repository = cart.NewSessionRepository(sessionManager)
	if rdb != nil {
		cartRepo = cart.NewRedisRepository(rdb, sessionManager, cfg.CartTTL)
	}
	carts := cart.NewService(cartRepo, logger)

	apiCfg := api.DefaultConfig(cfg.APIURL)
	apiCfg.Timeout = cfg.APITimeout
	apiCfg.MaxRetries = cfg.APIMaxRetries
	client := api.New(apiCfg, tokens.Token, logger)

	resolver := identity.NewResolver(tokens, client, logger)
	client.SetUnauthorizedHandler(resolver.Invalidate)

	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templates,
		SessionManager: sessionManager,
		CartCount:      carts.Count,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Close()

	router, err := app.NewRouter(app.Deps{
		DB:              db,
		Redis:           rdb,
		Sessions:        sessionManager,
		Client:          client,
		Resolver:        resolver,
		Renderer:        renderer,
		Carts:           carts,
		GuideCache:      guideCache,
		LoginProtection: loginProtection,
		CSRF:            middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()),
		Security:        middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment()),
		MetricsCIDRs:    cfg.MetricsAllowedCIDRs,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("building router: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "api", cfg.APIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
