package usecases_test

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
)

// --- Mock PolygonRepository ---

type mockPolygonRepo struct {
	createFn  func(ctx context.Context, poly *domain.SavedPolygon) error
	getByIDFn func(ctx context.Context, id string) (*domain.SavedPolygon, error)
	listFn    func(ctx context.Context, offset, limit int) ([]domain.SavedPolygon, int, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockPolygonRepo) Create(ctx context.Context, poly *domain.SavedPolygon) error {
	if m.createFn != nil {
		return m.createFn(ctx, poly)
	}
	poly.ID = "generated-id"
	return nil
}

func (m *mockPolygonRepo) GetByID(ctx context.Context, id string) (*domain.SavedPolygon, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrPolygonNotFound
}

func (m *mockPolygonRepo) List(ctx context.Context, offset, limit int) ([]domain.SavedPolygon, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, offset, limit)
	}
	return nil, 0, nil
}

func (m *mockPolygonRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock ClassificationLogRepository ---

type mockLogRepo struct {
	inserted []domain.ClassificationEvent
	recentFn func(ctx context.Context, limit int) ([]domain.ClassificationEvent, error)
	countFn  func(ctx context.Context) (map[domain.Status]int, error)
}

func (m *mockLogRepo) Insert(ctx context.Context, event *domain.ClassificationEvent) error {
	m.inserted = append(m.inserted, *event)
	return nil
}

func (m *mockLogRepo) Recent(ctx context.Context, limit int) ([]domain.ClassificationEvent, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockLogRepo) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return map[domain.Status]int{}, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	mu      sync.Mutex
	events  []domain.ClassificationEvent
	reports []domain.BatchReport
	err     error
}

func (m *mockPublisher) PublishClassification(ctx context.Context, event *domain.ClassificationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *mockPublisher) PublishBatchReport(ctx context.Context, report *domain.BatchReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, *report)
	return nil
}

// --- In-memory CacheService ---

var errCacheMiss = errors.New("cache miss")

type memCache struct {
	data map[string][]byte
	gets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.gets++
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, errCacheMiss
}

func (c *memCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}
