package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
)

// ClassificationRepo implements ports.ClassificationLogRepository with pgx.
type ClassificationRepo struct {
	db *DB
}

// NewClassificationRepo creates a new ClassificationRepo.
func NewClassificationRepo(db *DB) *ClassificationRepo {
	return &ClassificationRepo{db: db}
}

// Insert appends one event to the log.
func (r *ClassificationRepo) Insert(ctx context.Context, e *domain.ClassificationEvent) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO classification_log (time, polygon_id, vertex_count, x, y, status, message, source)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, e.Time, e.PolygonID, e.VertexCount, e.Point.X, e.Point.Y,
		string(e.Status), e.Message, e.Source).Scan(&e.ID)
}

// InsertBatch appends many events using pgx.Batch.
func (r *ClassificationRepo) InsertBatch(ctx context.Context, events []domain.ClassificationEvent) error {
	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(`
			INSERT INTO classification_log (time, polygon_id, vertex_count, x, y, status, message, source)
			VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8)
		`, e.Time, e.PolygonID, e.VertexCount, e.Point.X, e.Point.Y,
			string(e.Status), e.Message, e.Source)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range events {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// Recent returns the newest events first.
func (r *ClassificationRepo) Recent(ctx context.Context, limit int) ([]domain.ClassificationEvent, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, time, COALESCE(polygon_id::text, ''), vertex_count, x, y, status, message, source
		FROM classification_log
		ORDER BY time DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.ClassificationEvent
	for rows.Next() {
		var (
			e      domain.ClassificationEvent
			status string
		)
		if err := rows.Scan(
			&e.ID, &e.Time, &e.PolygonID, &e.VertexCount,
			&e.Point.X, &e.Point.Y, &status, &e.Message, &e.Source,
		); err != nil {
			return nil, err
		}
		e.Status = domain.Status(status)
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountByStatus aggregates the log per classification status.
func (r *ClassificationRepo) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT status, count(*) FROM classification_log GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Status]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[domain.Status(status)] = n
	}
	return counts, rows.Err()
}
