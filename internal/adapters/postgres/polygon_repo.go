package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
)

// PolygonRepo implements ports.PolygonRepository with pgx.
// Vertices are stored as a JSONB array of {x, y} objects in input order.
type PolygonRepo struct {
	db *DB
}

// NewPolygonRepo creates a new PolygonRepo.
func NewPolygonRepo(db *DB) *PolygonRepo {
	return &PolygonRepo{db: db}
}

// Create inserts poly and fills in its generated ID and timestamp.
func (r *PolygonRepo) Create(ctx context.Context, poly *domain.SavedPolygon) error {
	vertices, err := json.Marshal(poly.Vertices)
	if err != nil {
		return fmt.Errorf("encode vertices: %w", err)
	}
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO polygons (name, vertices, vertex_count)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, poly.Name, vertices, len(poly.Vertices)).Scan(&poly.ID, &poly.CreatedAt)
}

// GetByID returns a polygon by UUID.
func (r *PolygonRepo) GetByID(ctx context.Context, id string) (*domain.SavedPolygon, error) {
	var (
		p   domain.SavedPolygon
		raw []byte
	)
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, vertices, created_at
		FROM polygons WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &raw, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
		return nil, domain.ErrPolygonNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &p.Vertices); err != nil {
		return nil, fmt.Errorf("decode vertices: %w", err)
	}
	return &p, nil
}

// List returns polygons newest first, with the total row count.
func (r *PolygonRepo) List(ctx context.Context, offset, limit int) ([]domain.SavedPolygon, int, error) {
	var total int
	if err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM polygons`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, vertices, created_at
		FROM polygons
		ORDER BY created_at DESC, id
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	polygons := make([]domain.SavedPolygon, 0, limit)
	for rows.Next() {
		var (
			p   domain.SavedPolygon
			raw []byte
		)
		if err := rows.Scan(&p.ID, &p.Name, &raw, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(raw, &p.Vertices); err != nil {
			return nil, 0, fmt.Errorf("decode vertices of %s: %w", p.ID, err)
		}
		polygons = append(polygons, p)
	}
	return polygons, total, rows.Err()
}

// Delete removes a polygon by UUID.
func (r *PolygonRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM polygons WHERE id = $1`, id)
	if isInvalidUUID(err) {
		return domain.ErrPolygonNotFound
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPolygonNotFound
	}
	return nil
}

// isInvalidUUID reports a malformed id, which can never match a row.
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
