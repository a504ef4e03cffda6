package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"file_bridge_app_go/config"
	"file_bridge_app_go/db"
	"file_bridge_app_go/handlers"
	"file_bridge_app_go/middleware"
	"file_bridge_app_go/models"
	"file_bridge_app_go/services"
	"file_bridge_app_go/services/content"
	"file_bridge_app_go/services/counter"
	"file_bridge_app_go/services/i18n"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
	// every request body is a small form or JSON post
	maxRequestBody = "64K"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		Environment: cfg.Environment,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.ConsultationRequest{}, &models.AuditLog{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage := services.InitializeStorage(cfg)

	catalog, err := services.LoadContentCatalog(ctx, cfg, storage)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}
	store := content.NewStore(catalog)
	if cfg.DefaultVariant != "" {
		if err := store.ForceDefault(cfg.DefaultVariant); err != nil {
			log.Fatalf("Invalid DEFAULT_VARIANT: %v", err)
		}
	}
	log.Printf("[INFO] Serving content variants %v (default %q)", catalog.Keys(), store.Catalog().DefaultVariant)

	hub := services.NewStatsHub(cfg.StatsMaxSessions, cfg.StatsSessionTTL, counter.WithInterval(cfg.StatsTickInterval))

	middleware.InitAssetVersions("static")

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(maxRequestBody))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(middleware.CSPNonce(cfg.R2PublicURL))
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSRF(cfg))

	// Make config, content and stats sessions available to handlers
	e.Use(middleware.AppContext(cfg, store, hub))

	monitor := services.NewSecurityMonitor(services.EmailSecurityAlerts(cfg))
	handlers.RegisterRoutes(e, cfg, monitor)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting server on port %s (environment: %s)", cfg.ServerPort, cfg.Environment)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		// Ends open stats streams before the server waits for them
		hub.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Println("[INFO] Shutting down server")
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return hub.Run(gctx, sweepInterval)
	})

	g.Go(func() error {
		return monitor.Run(gctx, sweepInterval)
	})

	for _, rl := range middleware.RateLimiters() {
		g.Go(func() error {
			return rl.Run(gctx)
		})
	}

	if cfg.ContentWatch && cfg.ContentSource == config.ContentSourceFile {
		g.Go(func() error {
			return store.Watch(gctx, cfg.ContentPath)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("[INFO] Server stopped")
}
