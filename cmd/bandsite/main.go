// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/olegiv/bandsite/internal/cache"
	"github.com/olegiv/bandsite/internal/config"
	"github.com/olegiv/bandsite/internal/handler/api"
	"github.com/olegiv/bandsite/internal/logging"
	"github.com/olegiv/bandsite/internal/mail"
	"github.com/olegiv/bandsite/internal/middleware"
	"github.com/olegiv/bandsite/internal/scheduler"
	"github.com/olegiv/bandsite/internal/service"
	"github.com/olegiv/bandsite/internal/session"
	"github.com/olegiv/bandsite/internal/store"
	"github.com/olegiv/bandsite/internal/version"
)

// fileRemovalBatch is how many queued removals one scheduler run retries.
const fileRemovalBatch = 100

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	createAdmin := flag.Bool("create-admin", false, "Create an admin account and exit")
	adminEmail := flag.String("email", "", "Admin email for -create-admin")
	adminName := flag.String("name", "Administrator", "Admin display name for -create-admin")
	adminPassword := flag.String("password", "", "Admin password for -create-admin (min 8 characters)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "bandsite - band website backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BANDSITE_SESSION_SECRET    Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BANDSITE_DB_PATH           SQLite database path (default: ./data/bandsite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BANDSITE_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BANDSITE_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BANDSITE_UPLOADS_DIR       Photo storage directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BANDSITE_SETUP_KEY         Enables POST /api/setup when set\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BANDSITE_REDIS_URL         Redis URL for shared caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BANDSITE_RESEND_API_KEY    Resend key for welcome emails (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("bandsite %s\n", version.Current())
		os.Exit(0)
	}

	var err error
	if *createAdmin {
		err = runCreateAdmin(*adminEmail, *adminName, *adminPassword)
	} else {
		err = run()
	}
	if err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openDatabase(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", path)
	db, err := store.NewDB(path)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")
	return db, nil
}

// runCreateAdmin adds an admin account from the command line.
func runCreateAdmin(email, name, password string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openDatabase(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	id, err := service.NewAuthenticator(db).CreateAdmin(context.Background(), email, name, password)
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	_, _ = fmt.Printf("created admin %d <%s>\n", id.ID, id.Email)
	return nil
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLevel(cfg.LogLevel)
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(textHandler))
	slog.Info("starting bandsite", "version", version.Current().String(), "env", cfg.Env)

	db, err := openDatabase(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	// Warnings and errors also go to the log_entries table.
	logger := slog.New(logging.NewLogEntryHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}
	if cfg.DemoContent {
		if err := store.SeedDemo(ctx, db, time.Now()); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	viewCache := cache.New(ctx, cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTLDuration(),
	})
	defer func() { _ = viewCache.Close() }()

	var mailer mail.Sender = mail.LogSender{}
	if cfg.MailEnabled() {
		mailer = mail.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom)
		slog.Info("mail delivery enabled", "provider", "resend", "from", cfg.MailFrom)
	}

	sessionManager, stopSessions := session.New(db, cfg.IsDevelopment())
	defer stopSessions()

	authSvc := service.NewAuthenticator(db)
	remover := service.NewFileRemover(db)

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()
	subscribeLimiter := middleware.NewRateLimiter("subscribe", 0.2, 5)

	sched := scheduler.New(logger)
	if err := sched.Add(scheduler.FileRemovalJob(remover, fileRemovalBatch)); err != nil {
		return fmt.Errorf("scheduling file removals: %w", err)
	}
	if cfg.LogRetentionDays > 0 {
		if err := sched.Add(scheduler.LogRetentionJob(db, cfg.LogRetentionDays, time.Now)); err != nil {
			return fmt.Errorf("scheduling log retention: %w", err)
		}
	}
	sched.Start()
	defer sched.Stop()
	for _, job := range sched.List() {
		slog.Info("scheduled job", "job", job.Name, "schedule", job.Schedule, "next_run", job.NextRun)
	}

	// Drain removals left over from a previous run without waiting for the first tick.
	go func() {
		if err := sched.TriggerNow(scheduler.FileRemovalJobName); err != nil {
			slog.Warn("initial file removal run failed", "error", err)
		}
	}()

	apiHandler := api.NewHandler(api.Deps{
		Auth:             authSvc,
		Events:           service.NewEventService(db, viewCache),
		Videos:           service.NewVideoService(db, viewCache),
		Photos:           service.NewPhotoService(db, viewCache, cfg.UploadsDir, cfg.MaxUploadBytes(), remover),
		Subscribers:      service.NewSubscriberService(db, mailer, cfg.SiteName, cfg.BaseURL),
		Views:            service.NewViews(db, viewCache, cfg.CacheTTLDuration()),
		Sessions:         sessionManager,
		LoginProtection:  loginProtection,
		Cache:            viewCache,
		SetupKey:         cfg.SetupKey,
		MaxUploadBytes:   cfg.MaxUploadBytes(),
		UploadsDir:       cfg.UploadsDir,
		SiteURL:          cfg.BaseURL,
		DisallowCrawlers: cfg.DisallowCrawlers,
	})
	healthHandler := api.NewHealthHandler(apiHandler, db)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		slog.Info("CORS enabled", "origins", cfg.CORSOrigins)
	}

	// Bearer tokens are turned into the session cookie before the session loads.
	r.Use(session.BearerToken(sessionManager))
	r.Use(sessionManager.LoadAndSave)

	// Cookie-authenticated browsers get cross-origin protection; bearer clients skip it.
	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.CORSOrigins)
	r.Use(middleware.SkipCSRFForBearer)
	r.Use(middleware.CSRF(csrfConfig))

	r.Mount("/api", apiHandler.Routes(api.Middlewares{
		RequireAdmin:   middleware.RequireAdmin(sessionManager, authSvc),
		LoginLimit:     loginProtection.Middleware(),
		SubscribeLimit: subscribeLimiter.Middleware(),
	}))

	uploads := http.StripPrefix(service.PublicUploadsPrefix, http.FileServer(http.Dir(cfg.UploadsDir)))
	r.With(middleware.StaticCache(604800)).Get(service.PublicUploadsPrefix+"/*", uploads.ServeHTTP)

	r.Get("/robots.txt", apiHandler.Robots)
	r.Get("/sitemap.xml", apiHandler.Sitemap)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // photo uploads
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "base_url", cfg.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
