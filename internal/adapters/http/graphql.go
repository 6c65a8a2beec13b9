package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/usecases"
)

var errPolygonStoreMissing = errors.New("polygon store not configured")

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	pointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Point",
		Fields: graphql.Fields{
			"x": &graphql.Field{Type: graphql.Float},
			"y": &graphql.Field{Type: graphql.Float},
		},
	})

	pointInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PointInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"x": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"y": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	classificationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Classification",
		Fields: graphql.Fields{
			"status":  &graphql.Field{Type: graphql.String},
			"label":   &graphql.Field{Type: graphql.String},
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	polygonType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Polygon",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"name":         &graphql.Field{Type: graphql.String},
			"vertices":     &graphql.Field{Type: graphql.NewList(pointType)},
			"vertex_count": &graphql.Field{Type: graphql.Int},
			"created_at":   &graphql.Field{Type: graphql.String},
		},
	})

	polygonPageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PolygonPage",
		Fields: graphql.Fields{
			"items": &graphql.Field{Type: graphql.NewList(polygonType)},
			"total": &graphql.Field{Type: graphql.Int},
		},
	})

	summaryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuditSummary",
		Fields: graphql.Fields{
			"inside":  &graphql.Field{Type: graphql.Int},
			"on_edge": &graphql.Field{Type: graphql.Int},
			"outside": &graphql.Field{Type: graphql.Int},
		},
	})

	vertexArgs := graphql.FieldConfigArgument{
		"vertices":     &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(pointInput))},
		"verticesText": &graphql.ArgumentConfig{Type: graphql.String},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"classify": &graphql.Field{
				Type:        classificationType,
				Description: "Locate a point against an inline polygon",
				Args: withArgs(vertexArgs, graphql.FieldConfigArgument{
					"x": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"y": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					vertices, err := vertexArg(p, deps)
					if err != nil {
						return nil, err
					}
					point := domain.Point{X: p.Args["x"].(float64), Y: p.Args["y"].(float64)}
					q := usecases.Query{Source: usecases.SourceGraphQL}
					return classificationMap(deps.Inspector.ClassifyFor(p.Context, q, vertices, point)), nil
				},
			},
			"polygon": &graphql.Field{
				Type:        polygonType,
				Description: "Get a saved polygon by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if deps.Polygons == nil {
						return nil, errPolygonStoreMissing
					}
					poly, err := deps.Polygons.GetByID(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, err
					}
					return polygonMap(poly), nil
				},
			},
			"polygons": &graphql.Field{
				Type:        polygonPageType,
				Description: "List saved polygons, newest first",
				Args: graphql.FieldConfigArgument{
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if deps.Polygons == nil {
						return nil, errPolygonStoreMissing
					}
					polys, total, err := deps.Polygons.List(p.Context, p.Args["offset"].(int), p.Args["limit"].(int))
					if err != nil {
						return nil, err
					}
					items := make([]map[string]interface{}, 0, len(polys))
					for i := range polys {
						items = append(items, polygonMap(&polys[i]))
					}
					return map[string]interface{}{"items": items, "total": total}, nil
				},
			},
			"classifyPolygon": &graphql.Field{
				Type:        classificationType,
				Description: "Locate a point against a saved polygon",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"x":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"y":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if deps.Polygons == nil {
						return nil, errPolygonStoreMissing
					}
					point := domain.Point{X: p.Args["x"].(float64), Y: p.Args["y"].(float64)}
					q := usecases.Query{Source: usecases.SourceGraphQL}
					c, err := deps.Polygons.Classify(p.Context, q, p.Args["id"].(string), point)
					if err != nil {
						return nil, err
					}
					return classificationMap(c), nil
				},
			},
			"auditSummary": &graphql.Field{
				Type:        summaryType,
				Description: "Logged classifications per status",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if deps.Audit == nil {
						return nil, errors.New("audit log not configured")
					}
					counts, err := deps.Audit.Summary(p.Context)
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{
						"inside":  counts[domain.StatusInside],
						"on_edge": counts[domain.StatusOnEdge],
						"outside": counts[domain.StatusOutside],
					}, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"savePolygon": &graphql.Field{
				Type:        polygonType,
				Description: "Save a named polygon",
				Args: withArgs(vertexArgs, graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if deps.Polygons == nil {
						return nil, errPolygonStoreMissing
					}
					vertices, err := vertexArg(p, deps)
					if err != nil {
						return nil, err
					}
					poly, err := deps.Polygons.Save(p.Context, p.Args["name"].(string), vertices)
					if err != nil {
						return nil, err
					}
					return polygonMap(poly), nil
				},
			},
			"deletePolygon": &graphql.Field{
				Type:        graphql.Boolean,
				Description: "Delete a saved polygon",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if deps.Polygons == nil {
						return nil, errPolygonStoreMissing
					}
					if err := deps.Polygons.Delete(p.Context, p.Args["id"].(string)); err != nil {
						return false, err
					}
					return true, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func withArgs(sets ...graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	out := graphql.FieldConfigArgument{}
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

// vertexArg reads the polygon from verticesText or vertices, text first.
func vertexArg(p graphql.ResolveParams, deps *Dependencies) (domain.Polygon, error) {
	if text, ok := p.Args["verticesText"].(string); ok && text != "" {
		return deps.Inspector.ParseVertices(p.Context, text)
	}
	raw, _ := p.Args["vertices"].([]interface{})
	vertices := make(domain.Polygon, 0, len(raw))
	for i, r := range raw {
		m, ok := r.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("vertex %d: expected {x, y}", i)
		}
		x, okX := m["x"].(float64)
		y, okY := m["y"].(float64)
		if !okX || !okY {
			return nil, fmt.Errorf("vertex %d: expected numeric x and y", i)
		}
		vertices = append(vertices, domain.Point{X: x, Y: y})
	}
	return vertices, nil
}

func classificationMap(c domain.Classification) map[string]interface{} {
	return map[string]interface{}{
		"status":  string(c.Status),
		"label":   c.Status.Label(),
		"message": c.Message,
	}
}

func polygonMap(p *domain.SavedPolygon) map[string]interface{} {
	vertices := make([]map[string]interface{}, len(p.Vertices))
	for i, v := range p.Vertices {
		vertices[i] = map[string]interface{}{"x": v.X, "y": v.Y}
	}
	return map[string]interface{}{
		"id":           p.ID,
		"name":         p.Name,
		"vertices":     vertices,
		"vertex_count": len(p.Vertices),
		"created_at":   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Query == "" {
			return errBadRequest(c, "query is required")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
