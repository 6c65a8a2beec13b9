package domain

import (
	"time"
)

// SavedPolygon is a named vertex list kept for later queries.
type SavedPolygon struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Vertices  Polygon   `json:"vertices"`
	CreatedAt time.Time `json:"created_at"`
}

// ClassificationEvent records a single classification for the audit log.
type ClassificationEvent struct {
	ID          string    `json:"id,omitempty"`
	Time        time.Time `json:"time"`
	PolygonID   string    `json:"polygon_id,omitempty"`
	VertexCount int       `json:"vertex_count"`
	Point       Point     `json:"point"`
	Status      Status    `json:"status"`
	Message     string    `json:"message"`
	Source      string    `json:"source"` // http, graphql, ws, batch
}

// BatchRequest asks for many points to be located against a saved polygon.
type BatchRequest struct {
	PolygonID string  `json:"polygon_id"`
	Points    []Point `json:"points"`
}

// BatchReport summarises a batch run.
type BatchReport struct {
	PolygonID string           `json:"polygon_id"`
	Results   []Classification `json:"results"`
	Inside    int              `json:"inside"`
	OnEdge    int              `json:"on_edge"`
	Outside   int              `json:"outside"`
}

// Tally increments the counter matching c.
func (r *BatchReport) Tally(c Classification) {
	switch c.Status {
	case StatusInside:
		r.Inside++
	case StatusOnEdge:
		r.OnEdge++
	default:
		r.Outside++
	}
}
