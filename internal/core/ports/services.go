package ports

import (
	"context"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishClassification(ctx context.Context, event *domain.ClassificationEvent) error
	PublishBatchReport(ctx context.Context, report *domain.BatchReport) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribeClassifications(ctx context.Context, handler func(ctx context.Context, event *domain.ClassificationEvent) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
