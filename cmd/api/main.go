package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/adapters/http"
	natsadapter "github.com/dmitar-strbac/convex-polygon-inspector/internal/adapters/nats"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/adapters/postgres"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/adapters/valkey"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/ports"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/usecases"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/canvas"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/config"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/logging"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/metrics"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("inspector-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database is optional: without it the classifier still serves inline
	// polygons and the polygon/audit routes answer 503.
	var (
		db       *postgres.DB
		polygons *usecases.PolygonService
		audit    *usecases.AuditService
	)
	db, err = postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		slog.Warn("database unavailable", "error", err)
	} else {
		defer db.Close()
		go reportPoolStats(ctx, db)
	}

	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr, "inspector:")
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	var events ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer pub.Close()
		events = pub
	}

	inspector := usecases.NewInspectorService(events)
	if db != nil {
		polygons = usecases.NewPolygonService(postgres.NewPolygonRepo(db), cacheSvc, inspector)
		audit = usecases.NewAuditService(postgres.NewClassificationRepo(db))
	}

	deps := &http.Dependencies{
		Inspector: inspector,
		Polygons:  polygons,
		Audit:     audit,
		DB:        db,
		Cache:     cache,
		Canvas:    canvas.RenderOptions{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height},
		RateLimit: cfg.Server.RateLimit,
	}
	if pub != nil {
		deps.NATS = pub.Conn()
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    4 * 1024 * 1024, // batch requests carry up to 10k points
		AppName:      "Convex Polygon Inspector",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

func reportPoolStats(ctx context.Context, db *postgres.DB) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			metrics.UpdateDBPoolMetrics(db.Stat())
		case <-ctx.Done():
			return
		}
	}
}
