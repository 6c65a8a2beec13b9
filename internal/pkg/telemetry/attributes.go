package telemetry

import "go.opentelemetry.io/otel/attribute"

// Span names.
const (
	SpanClassify      = "geometry.classify"
	SpanClassifyBatch = "geometry.classify_batch"
	SpanParse         = "geometry.parse_vertices"
	SpanRender        = "canvas.render"
)

// Attribute keys.
var (
	AttrVertexCount = attribute.Key("polygon.vertex_count")
	AttrPointCount  = attribute.Key("batch.point_count")
	AttrStatus      = attribute.Key("classification.status")
	AttrPolygonID   = attribute.Key("polygon.id")
	AttrSource      = attribute.Key("classification.source")
)
