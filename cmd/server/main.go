package main

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deck-thumbnail-service/internal/adapters/primary/http/handlers"
	"deck-thumbnail-service/internal/adapters/primary/http/middleware"
	"deck-thumbnail-service/internal/adapters/secondary/cache"
	"deck-thumbnail-service/internal/adapters/secondary/memory"
	"deck-thumbnail-service/internal/adapters/secondary/postgres"
	"deck-thumbnail-service/internal/adapters/secondary/render"
	"deck-thumbnail-service/internal/adapters/secondary/scryfall"
	"deck-thumbnail-service/internal/adapters/secondary/sqlite"
	"deck-thumbnail-service/internal/config"
	ports "deck-thumbnail-service/internal/core/ports/output"
	"deck-thumbnail-service/internal/core/services"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// ledger is the selected usage ledger backend.
type ledger struct {
	deckNames ports.DeckNameRepository
	artUsage  ports.ArtUsageRepository
	pinger    ports.Pinger
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	ctx := context.Background()

	l, err := openLedger(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("open usage ledger: %v", err)
	}
	defer l.close()
	log.WithField("driver", cfg.Database.Driver).Info("usage ledger ready")

	imageCache, closeCache := openImageCache(ctx, cfg)
	defer closeCache()

	fonts, err := render.NewFonts(cfg.Render.FontPath)
	if err != nil {
		log.Fatalf("load fonts: %v", err)
	}

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters
	cardClient := scryfall.NewClient(&cfg.Scryfall)
	renderer := render.NewRenderer(fonts)
	sessionStore := memory.NewSessionStore(cfg.Server.SessionTTL)

	// Core Services (Application Layer)
	ledgerSvc := services.NewUsageLedgerService(l.deckNames, l.artUsage)
	cardSvc := services.NewCardService(cardClient, ledgerSvc)
	imageSvc := services.NewImageProxyService(cardClient, imageCache, services.ImageProxyConfig{
		AllowedHosts: cfg.Image.AllowedHosts,
		MaxBytes:     cfg.Image.MaxBytes,
		Timeout:      cfg.Image.Timeout,
	})
	thumbnailSvc := services.NewThumbnailService(imageSvc, ledgerSvc, renderer, fonts, loadDefaultLogo(cfg.Render.LogoPath))
	editorSvc := services.NewEditorService(sessionStore, cardSvc, imageSvc, thumbnailSvc)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(ledgerSvc, cardSvc, imageSvc, thumbnailSvc, editorSvc, cfg.Server.MaxUploadBytes)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	// Health check with ledger ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := l.pinger.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func openLedger(ctx context.Context, cfg *config.DatabaseConfig) (*ledger, error) {
	if cfg.Driver == "sqlite" {
		db, err := sqlite.NewDatabase(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if cfg.SQLitePath != ":memory:" {
			sqlite.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)
		}
		return &ledger{
			deckNames: sqlite.NewDeckNameRepository(db),
			artUsage:  sqlite.NewArtUsageRepository(db),
			pinger:    sqlite.NewPinger(db),
			close:     func() { db.Close() },
		}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &ledger{
		deckNames: postgres.NewDeckNameRepository(pool),
		artUsage:  postgres.NewArtUsageRepository(pool),
		pinger:    postgres.NewPinger(pool),
		close:     pool.Close,
	}, nil
}

// openImageCache falls back to the in-process cache when Redis is
// unreachable.
func openImageCache(ctx context.Context, cfg *config.Config) (ports.ImageCache, func()) {
	switch cfg.Cache.Driver {
	case "none":
		log.Info("image cache disabled")
		return cache.NewNullCache(), func() {}
	case "redis":
		client, err := cache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, using in-memory image cache")
			return cache.NewMemoryCache(), func() {}
		}
		log.WithField("addr", cfg.Redis.Addr).Info("redis image cache connected")
		return cache.NewRedisCache(client, cfg.Redis.KeyPrefix), func() { client.Close() }
	default:
		return cache.NewMemoryCache(), func() {}
	}
}

// loadDefaultLogo returns nil when no logo is configured or it cannot be
// read; thumbnails then render without a logo.
func loadDefaultLogo(path string) image.Image {
	if path == "" {
		log.Info("no default logo configured")
		return nil
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("default logo unavailable")
		return nil
	}
	return img
}
