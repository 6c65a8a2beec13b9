package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	natsadapter "github.com/dmitar-strbac/convex-polygon-inspector/internal/adapters/nats"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/adapters/postgres"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/ports"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/usecases"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/config"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/logging"
)

// auditor consumes classification events from JetStream and stores them in
// the classification log.
func main() {
	cfg, err := config.Load("inspector-auditor")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	audit := usecases.NewAuditService(postgres.NewClassificationRepo(db))

	if err := recordClassifications(ctx, sub, audit); err != nil {
		log.Fatalf("subscribe classifications: %v", err)
	}

	err = sub.SubscribeBatchReports(ctx, func(ctx context.Context, report *domain.BatchReport) error {
		slog.Info("batch report",
			"polygon_id", report.PolygonID,
			"points", len(report.Results),
			"inside", report.Inside, "on_edge", report.OnEdge, "outside", report.Outside)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe batch reports: %v", err)
	}

	slog.Info("auditor started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("auditor stopping", "signal", sig.String())
}

// recordClassifications stores every classification event in the audit log.
// A failed insert is returned so the message is redelivered.
func recordClassifications(ctx context.Context, events ports.EventSubscriber, audit *usecases.AuditService) error {
	return events.SubscribeClassifications(ctx, func(ctx context.Context, event *domain.ClassificationEvent) error {
		if err := audit.Record(ctx, event); err != nil {
			slog.Error("record classification failed", "status", event.Status, "error", err)
			return err
		}
		return nil
	})
}
