package usecases

import (
	"context"
	"fmt"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/ports"
)

// AuditService keeps the classification log.
type AuditService struct {
	logs ports.ClassificationLogRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(logs ports.ClassificationLogRepository) *AuditService {
	return &AuditService{logs: logs}
}

// Record stores one classification event.
func (s *AuditService) Record(ctx context.Context, event *domain.ClassificationEvent) error {
	if !event.Status.Valid() {
		return fmt.Errorf("record event: unknown status %q", event.Status)
	}
	return s.logs.Insert(ctx, event)
}

// Recent returns the newest events first.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]domain.ClassificationEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.logs.Recent(ctx, limit)
}

// Summary counts logged events per status. Missing statuses report zero.
func (s *AuditService) Summary(ctx context.Context) (map[domain.Status]int, error) {
	counts, err := s.logs.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := map[domain.Status]int{
		domain.StatusInside:  0,
		domain.StatusOnEdge:  0,
		domain.StatusOutside: 0,
	}
	for k, v := range counts {
		out[k] = v
	}
	return out, nil
}
