package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	handler "github.com/dmitar-strbac/convex-polygon-inspector/internal/adapters/http"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/usecases"
)

// ---- Mock repositories ----

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
	poly.ID = "new-id"
	poly.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
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

type mockLogRepo struct {
	recentFn func(ctx context.Context, limit int) ([]domain.ClassificationEvent, error)
	countFn  func(ctx context.Context) (map[domain.Status]int, error)
}

func (m *mockLogRepo) Insert(ctx context.Context, e *domain.ClassificationEvent) error { return nil }
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
	return nil, nil
}

// ---- Test helpers ----

var unitSquare = domain.Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

func squareRepo() *mockPolygonRepo {
	return &mockPolygonRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.SavedPolygon, error) {
			if id != "sq" {
				return nil, domain.ErrPolygonNotFound
			}
			return &domain.SavedPolygon{ID: "sq", Name: "square", Vertices: unitSquare}, nil
		},
	}
}

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	inspector := usecases.NewInspectorService(nil)
	d := &handler.Dependencies{
		Inspector: inspector,
		Polygons:  usecases.NewPolygonService(squareRepo(), nil, inspector),
		RateLimit: 10000,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *fiberResponse {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return do(t, app, req)
}

func get(t *testing.T, app *fiber.App, path string) *fiberResponse {
	t.Helper()
	return do(t, app, httptest.NewRequest("GET", path, nil))
}

type fiberResponse struct {
	Status int
	Header func(string) string
	Body   []byte
}

func do(t *testing.T, app *fiber.App, req *http.Request) *fiberResponse {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return &fiberResponse{Status: resp.StatusCode, Header: resp.Header.Get, Body: b}
}

func decode(t *testing.T, r *fiberResponse, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decode %q: %v", r.Body, err)
	}
}

type classificationBody struct {
	Status      string       `json:"status"`
	Label       string       `json:"label"`
	Message     string       `json:"message"`
	Point       domain.Point `json:"point"`
	VertexCount int          `json:"vertex_count"`
	PolygonID   string       `json:"polygon_id"`
}

type apiErrorBody struct {
	Status int    `json:"status"`
	Code   string `json:"code"`
	Line   int    `json:"line"`
	Text   string `json:"text"`
}

// ---- Classify ----

func TestClassify_Statuses(t *testing.T) {
	app := setupApp(makeDeps())

	tests := []struct {
		name  string
		point domain.Point
		want  string
		label string
	}{
		{"inside", domain.Point{X: 0.5, Y: 0.5}, "INSIDE", "INSIDE"},
		{"edge", domain.Point{X: 1, Y: 0.5}, "ON_EDGE", "ON EDGE"},
		{"outside", domain.Point{X: 2, Y: 2}, "OUTSIDE", "OUTSIDE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/v1/classify", map[string]interface{}{
				"vertices": unitSquare,
				"point":    tt.point,
			})
			if resp.Status != 200 {
				t.Fatalf("expected 200, got %d: %s", resp.Status, resp.Body)
			}
			var got classificationBody
			decode(t, resp, &got)
			if got.Status != tt.want || got.Label != tt.label {
				t.Errorf("expected %s/%s, got %s/%s", tt.want, tt.label, got.Status, got.Label)
			}
			if got.VertexCount != 4 {
				t.Errorf("expected vertex_count 4, got %d", got.VertexCount)
			}
		})
	}
}

func TestClassify_VerticesText(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/v1/classify", map[string]interface{}{
		"vertices_text": "0 0\n6 0\n8 3\n6 6\n0 6\n-2 3",
		"point":         map[string]float64{"x": 2.5, "y": 2.5},
	})
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.Status, resp.Body)
	}
	var got classificationBody
	decode(t, resp, &got)
	if got.Status != "INSIDE" || got.VertexCount != 6 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestClassify_InvalidVerticesText(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/v1/classify", map[string]interface{}{
		"vertices_text": "0 0\n4 0\nfour 4",
		"point":         map[string]float64{"x": 1, "y": 1},
	})
	if resp.Status != 400 {
		t.Fatalf("expected 400, got %d", resp.Status)
	}
	var apiErr apiErrorBody
	decode(t, resp, &apiErr)
	if apiErr.Code != "invalid_vertices" {
		t.Errorf("expected invalid_vertices, got %s", apiErr.Code)
	}
	if apiErr.Line != 3 || apiErr.Text != "four 4" {
		t.Errorf("expected line 3 %q, got %d %q", "four 4", apiErr.Line, apiErr.Text)
	}
}

func TestClassify_TooFewVertices(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/v1/classify", map[string]interface{}{
		"vertices": unitSquare[:2],
		"point":    map[string]float64{"x": 0, "y": 0},
	})
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	var got classificationBody
	decode(t, resp, &got)
	if got.Status != "OUTSIDE" || got.Message != domain.MsgTooFewVertices {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestClassify_MissingPoint(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/v1/classify", map[string]interface{}{"vertices": unitSquare})
	if resp.Status != 400 {
		t.Fatalf("expected 400, got %d", resp.Status)
	}
	var apiErr apiErrorBody
	decode(t, resp, &apiErr)
	if apiErr.Code != "bad_request" {
		t.Errorf("expected bad_request, got %s", apiErr.Code)
	}
}

func TestClassifyBatch(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/v1/classify/batch", map[string]interface{}{
		"vertices": unitSquare,
		"points":   []domain.Point{{X: 0.5, Y: 0.5}, {X: 0, Y: 0}, {X: 3, Y: 3}, {X: 0.1, Y: 0.9}},
	})
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.Status, resp.Body)
	}
	var got handler.BatchResponse
	decode(t, resp, &got)
	if len(got.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(got.Results))
	}
	if got.Results[1].Status != domain.StatusOnEdge {
		t.Errorf("expected vertex to be ON_EDGE, got %s", got.Results[1].Status)
	}
	if got.Inside != 2 || got.OnEdge != 1 || got.Outside != 1 {
		t.Errorf("unexpected tally: %+v", got)
	}
}

func TestClassifyBatch_Empty(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/v1/classify/batch", map[string]interface{}{"vertices": unitSquare})
	if resp.Status != 400 {
		t.Fatalf("expected 400, got %d", resp.Status)
	}
}

// ---- Deprecated check ----

func TestCheck_DeprecatedHeaders(t *testing.T) {
	app := setupApp(makeDeps())

	resp := get(t, app, "/v1/check?vertices=0+0;4+0;4+4;0+4&x=2&y=2")
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.Status, resp.Body)
	}
	if resp.Header("Deprecation") != "true" {
		t.Error("expected Deprecation header")
	}
	if !strings.Contains(resp.Header("Link"), "/v1/classify") {
		t.Errorf("expected successor link, got %q", resp.Header("Link"))
	}
	var got classificationBody
	decode(t, resp, &got)
	if got.Status != "INSIDE" {
		t.Errorf("expected INSIDE, got %s", got.Status)
	}
}

func TestCheck_BadCoordinate(t *testing.T) {
	app := setupApp(makeDeps())

	resp := get(t, app, "/v1/check?vertices=0+0;4+0;4+4&x=abc&y=2")
	if resp.Status != 400 {
		t.Fatalf("expected 400, got %d", resp.Status)
	}
}

// ---- Canvas ----

func TestCanvasClick(t *testing.T) {
	app := setupApp(makeDeps())

	// 700x420 with 20px padding fits 100 world units into 380px: scale 3.8,
	// so pixel (210, 210) is world (50, 50).
	resp := postJSON(t, app, "/v1/canvas/click", map[string]interface{}{
		"vertices": domain.Polygon{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}},
		"point":    map[string]float64{"x": 50, "y": 50},
		"x":        210,
		"y":        210,
		"width":    700,
		"height":   420,
	})
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.Status, resp.Body)
	}
	var got classificationBody
	decode(t, resp, &got)
	if got.Status != "INSIDE" {
		t.Errorf("expected INSIDE, got %+v", got)
	}
	if !got.Point.ApproxEqual(domain.Point{X: 50, Y: 50}, 1e-3) {
		t.Errorf("expected click near (50, 50), got %+v", got.Point)
	}
}

func TestCanvasClick_BadSize(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/v1/canvas/click", map[string]interface{}{
		"vertices": unitSquare,
		"x":        1, "y": 1,
	})
	if resp.Status != 400 {
		t.Fatalf("expected 400, got %d", resp.Status)
	}
}

func TestRender_PNG(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/v1/render", map[string]interface{}{
		"vertices": unitSquare,
		"point":    map[string]float64{"x": 0.5, "y": 0.5},
		"width":    200,
		"height":   120,
	})
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.Status, resp.Body)
	}
	if ct := resp.Header("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png, got %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(resp.Body))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 120 {
		t.Errorf("expected 200x120, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRender_TooLarge(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/v1/render", map[string]interface{}{
		"vertices": unitSquare,
		"width":    10000,
	})
	if resp.Status != 400 {
		t.Fatalf("expected 400, got %d", resp.Status)
	}
}

// ---- Saved polygons ----

func TestCreatePolygon(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/v1/polygons", map[string]interface{}{
		"name":          "triangle",
		"vertices_text": "0 0\n4 0\n0 4",
	})
	if resp.Status != 201 {
		t.Fatalf("expected 201, got %d: %s", resp.Status, resp.Body)
	}
	if resp.Header("Location") != "/v1/polygons/new-id" {
		t.Errorf("unexpected Location %q", resp.Header("Location"))
	}
	var got domain.SavedPolygon
	decode(t, resp, &got)
	if got.Name != "triangle" || len(got.Vertices) != 3 {
		t.Errorf("unexpected polygon: %+v", got)
	}
}

func TestCreatePolygon_Validation(t *testing.T) {
	app := setupApp(makeDeps())

	tests := []struct {
		name string
		body map[string]interface{}
		code string
	}{
		{"no name", map[string]interface{}{"vertices": unitSquare}, "bad_request"},
		{"two vertices", map[string]interface{}{"name": "x", "vertices": unitSquare[:2]}, "bad_request"},
		{"bad text", map[string]interface{}{"name": "x", "vertices_text": "1 2 3"}, "invalid_vertices"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/v1/polygons", tt.body)
			if resp.Status != 400 {
				t.Fatalf("expected 400, got %d", resp.Status)
			}
			var apiErr apiErrorBody
			decode(t, resp, &apiErr)
			if apiErr.Code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, apiErr.Code)
			}
		})
	}
}

func TestGetPolygon(t *testing.T) {
	app := setupApp(makeDeps())

	resp := get(t, app, "/v1/polygons/sq")
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	var got domain.SavedPolygon
	decode(t, resp, &got)
	if got.Name != "square" || len(got.Vertices) != 4 {
		t.Errorf("unexpected polygon: %+v", got)
	}

	if resp := get(t, app, "/v1/polygons/missing"); resp.Status != 404 {
		t.Errorf("expected 404, got %d", resp.Status)
	}
}

func TestListPolygons_Pagination(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		repo := &mockPolygonRepo{
			listFn: func(ctx context.Context, offset, limit int) ([]domain.SavedPolygon, int, error) {
				out := make([]domain.SavedPolygon, 0, limit)
				for i := offset; i < offset+limit && i < 5; i++ {
					out = append(out, domain.SavedPolygon{ID: fmt.Sprintf("p%d", i), Vertices: unitSquare})
				}
				return out, 5, nil
			},
		}
		d.Polygons = usecases.NewPolygonService(repo, nil, d.Inspector)
	})
	app := setupApp(deps)

	resp := get(t, app, "/v1/polygons?offset=2&limit=2")
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	var result struct {
		Data       []domain.SavedPolygon `json:"data"`
		Pagination handler.Pagination    `json:"pagination"`
	}
	decode(t, resp, &result)
	if result.Pagination.Total != 5 || result.Pagination.Offset != 2 || len(result.Data) != 2 {
		t.Errorf("unexpected page: %+v (%d items)", result.Pagination, len(result.Data))
	}
	link := resp.Header("Link")
	for _, rel := range []string{`rel="first"`, `rel="prev"`, `rel="next"`, `rel="last"`} {
		if !strings.Contains(link, rel) {
			t.Errorf("expected %s in Link header %q", rel, link)
		}
	}
}

func TestDeletePolygon(t *testing.T) {
	var deleted string
	deps := makeDeps(func(d *handler.Dependencies) {
		repo := &mockPolygonRepo{
			deleteFn: func(ctx context.Context, id string) error {
				if id == "missing" {
					return domain.ErrPolygonNotFound
				}
				deleted = id
				return nil
			},
		}
		d.Polygons = usecases.NewPolygonService(repo, nil, d.Inspector)
	})
	app := setupApp(deps)

	resp := do(t, app, httptest.NewRequest("DELETE", "/v1/polygons/abc", nil))
	if resp.Status != 204 {
		t.Fatalf("expected 204, got %d", resp.Status)
	}
	if deleted != "abc" {
		t.Errorf("expected abc deleted, got %q", deleted)
	}

	resp = do(t, app, httptest.NewRequest("DELETE", "/v1/polygons/missing", nil))
	if resp.Status != 404 {
		t.Errorf("expected 404, got %d", resp.Status)
	}
}

func TestClassifyPolygon(t *testing.T) {
	app := setupApp(makeDeps())

	resp := get(t, app, "/v1/polygons/sq/classify?x=1&y=1")
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.Status, resp.Body)
	}
	var got classificationBody
	decode(t, resp, &got)
	if got.Status != "ON_EDGE" || got.PolygonID != "sq" {
		t.Errorf("unexpected result: %+v", got)
	}

	if resp := get(t, app, "/v1/polygons/sq/classify?x=1"); resp.Status != 400 {
		t.Errorf("expected 400 without y, got %d", resp.Status)
	}
	if resp := get(t, app, "/v1/polygons/nope/classify?x=1&y=1"); resp.Status != 404 {
		t.Errorf("expected 404, got %d", resp.Status)
	}
}

func TestRenderPolygon_ETag(t *testing.T) {
	app := setupApp(makeDeps())

	first := get(t, app, "/v1/polygons/sq/render?x=0.5&y=0.5&width=100&height=60")
	if first.Status != 200 {
		t.Fatalf("expected 200, got %d: %s", first.Status, first.Body)
	}
	etag := first.Header("ETag")
	if etag == "" {
		t.Fatal("expected ETag header")
	}

	req := httptest.NewRequest("GET", "/v1/polygons/sq/render?x=0.5&y=0.5&width=100&height=60", nil)
	req.Header.Set("If-None-Match", etag)
	if second := do(t, app, req); second.Status != 304 {
		t.Errorf("expected 304, got %d", second.Status)
	}
}

func TestETag_OnlyOnGet(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/v1/classify", map[string]interface{}{
		"vertices_text": "0 0\n1 0\n1 1\n0 1",
		"point":         map[string]float64{"x": 0.5, "y": 0.5},
	})
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.Status, resp.Body)
	}
	if etag := resp.Header("ETag"); etag != "" {
		t.Errorf("POST response should not be tagged, got %q", etag)
	}
}

func TestDocs_SwaggerPage(t *testing.T) {
	app := setupApp(makeDeps())

	resp := get(t, app, "/docs")
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	if !strings.Contains(resp.Header("Content-Type"), "text/html") {
		t.Errorf("unexpected content type %q", resp.Header("Content-Type"))
	}
	if !strings.Contains(string(resp.Body), "/docs/openapi.yaml") {
		t.Error("page should point at the OpenAPI document")
	}
}

func TestPolygons_Unconfigured(t *testing.T) {
	app := setupApp(makeDeps(func(d *handler.Dependencies) { d.Polygons = nil }))

	if resp := get(t, app, "/v1/polygons"); resp.Status != 503 {
		t.Errorf("expected 503, got %d", resp.Status)
	}
}

// ---- Audit ----

func TestAudit(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Audit = usecases.NewAuditService(&mockLogRepo{
			recentFn: func(ctx context.Context, limit int) ([]domain.ClassificationEvent, error) {
				return []domain.ClassificationEvent{{ID: "e1", Status: domain.StatusInside, Source: "http"}}, nil
			},
			countFn: func(ctx context.Context) (map[domain.Status]int, error) {
				return map[domain.Status]int{domain.StatusInside: 1}, nil
			},
		})
	})
	app := setupApp(deps)

	resp := get(t, app, "/v1/audit")
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	var got struct {
		Events  []domain.ClassificationEvent `json:"events"`
		Summary map[string]int               `json:"summary"`
	}
	decode(t, resp, &got)
	if len(got.Events) != 1 || got.Summary["INSIDE"] != 1 || got.Summary["OUTSIDE"] != 0 {
		t.Errorf("unexpected audit: %+v", got)
	}
	if _, ok := got.Summary["ON_EDGE"]; !ok {
		t.Error("expected ON_EDGE in summary")
	}
}

func TestAudit_Unconfigured(t *testing.T) {
	app := setupApp(makeDeps())
	if resp := get(t, app, "/v1/audit"); resp.Status != 503 {
		t.Errorf("expected 503, got %d", resp.Status)
	}
}

// ---- GraphQL ----

func TestGraphQL_Classify(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/graphql", map[string]interface{}{
		"query": `{ classify(verticesText: "0 0\n4 0\n4 4\n0 4", x: 4, y: 2) { status label message } }`,
	})
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	var got struct {
		Data struct {
			Classify struct {
				Status string `json:"status"`
				Label  string `json:"label"`
			} `json:"classify"`
		} `json:"data"`
		Errors []interface{} `json:"errors"`
	}
	decode(t, resp, &got)
	if len(got.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", got.Errors)
	}
	if got.Data.Classify.Status != "ON_EDGE" || got.Data.Classify.Label != "ON EDGE" {
		t.Errorf("unexpected result: %+v", got.Data.Classify)
	}
}

func TestGraphQL_ClassifyVertexList(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/graphql", map[string]interface{}{
		"query": `query($v: [PointInput!]) { classify(vertices: $v, x: 0.5, y: 0.5) { status } }`,
		"variables": map[string]interface{}{
			"v": []map[string]float64{{"x": 0, "y": 0}, {"x": 1, "y": 0}, {"x": 1, "y": 1}},
		},
	})
	var got struct {
		Data struct {
			Classify struct {
				Status string `json:"status"`
			} `json:"classify"`
		} `json:"data"`
	}
	decode(t, resp, &got)
	if got.Data.Classify.Status != "ON_EDGE" {
		t.Errorf("expected ON_EDGE on the triangle hypotenuse, got %q", got.Data.Classify.Status)
	}
}

func TestGraphQL_Polygon(t *testing.T) {
	app := setupApp(makeDeps())

	resp := postJSON(t, app, "/graphql", map[string]interface{}{
		"query": `{ polygon(id: "sq") { id name vertex_count vertices { x y } } }`,
	})
	var got struct {
		Data struct {
			Polygon struct {
				ID          string `json:"id"`
				VertexCount int    `json:"vertex_count"`
			} `json:"polygon"`
		} `json:"data"`
	}
	decode(t, resp, &got)
	if got.Data.Polygon.ID != "sq" || got.Data.Polygon.VertexCount != 4 {
		t.Errorf("unexpected polygon: %+v", got.Data.Polygon)
	}
}

func TestGraphQL_MissingQuery(t *testing.T) {
	app := setupApp(makeDeps())
	if resp := postJSON(t, app, "/graphql", map[string]interface{}{}); resp.Status != 400 {
		t.Errorf("expected 400, got %d", resp.Status)
	}
}

// ---- Health ----

func TestHealth(t *testing.T) {
	app := setupApp(makeDeps())

	resp := get(t, app, "/v1/health")
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	if resp.Header("X-Request-Id") == "" {
		t.Error("expected a request id header")
	}
}

func TestReady_NoDatabase(t *testing.T) {
	app := setupApp(makeDeps())

	resp := get(t, app, "/v1/ready")
	if resp.Status != 503 {
		t.Fatalf("expected 503, got %d", resp.Status)
	}
	var got struct {
		Checks map[string]string `json:"checks"`
	}
	decode(t, resp, &got)
	if got.Checks["database"] != "not configured" {
		t.Errorf("unexpected checks: %v", got.Checks)
	}
}

func TestWebSocket_RequiresUpgrade(t *testing.T) {
	app := setupApp(makeDeps())
	if resp := get(t, app, "/ws"); resp.Status != 426 {
		t.Errorf("expected 426, got %d", resp.Status)
	}
}
