package main

import (
	"context"
	"log"
	"log/slog"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/dmitar-strbac/convex-polygon-inspector/internal/adapters/nats"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/adapters/postgres"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/adapters/valkey"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/ports"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/usecases"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/config"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/logging"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/workflows"
)

func main() {
	cfg, err := config.Load("inspector-worker")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	var cacheSvc ports.CacheService
	if cache, err := valkey.New(cfg.Valkey.Addr, "inspector:"); err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	var events ports.EventPublisher
	if pub, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, batch reports will only be logged", "error", err)
	} else {
		defer pub.Close()
		events = pub
	}

	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    slog.Default(),
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	// Batch points are not published one by one; the inspector gets no publisher.
	inspector := usecases.NewInspectorService(nil)

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflows.BatchClassifyWorkflow)
	w.RegisterActivity(&workflows.BatchActivities{
		Polygons:  usecases.NewPolygonService(postgres.NewPolygonRepo(db), cacheSvc, inspector),
		Inspector: inspector,
		Events:    events,
	})

	slog.Info("batch worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
