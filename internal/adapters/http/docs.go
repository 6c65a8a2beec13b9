package http

import (
	"fmt"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
)

const (
	docsTitle    = "Convex Polygon Inspector API"
	openAPIRoute = "/docs/openapi.yaml"
	swaggerDist  = "https://cdn.jsdelivr.net/npm/swagger-ui-dist@5"
)

// OpenAPIPath is where the OpenAPI document is read from, relative to the
// working directory.
var OpenAPIPath = "api/openapi.yaml"

var swaggerPage = fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>%[1]s</title>
  <link rel="stylesheet" href="%[2]s/swagger-ui.css">
</head>
<body style="margin:0">
  <div id="swagger-ui"></div>
  <script src="%[2]s/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: '%[3]s', dom_id: '#swagger-ui', deepLinking: true});
  </script>
</body>
</html>`, docsTitle, swaggerDist, openAPIRoute)

// openAPIDoc caches the document after the first successful read.
type openAPIDoc struct {
	mu   sync.Mutex
	data []byte
}

func (d *openAPIDoc) load() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.data != nil {
		return d.data, nil
	}
	data, err := os.ReadFile(OpenAPIPath)
	if err != nil {
		return nil, err
	}
	d.data = data
	return data, nil
}

// SetupDocs serves Swagger UI at /docs and the OpenAPI document beside it.
func SetupDocs(app *fiber.App) {
	doc := &openAPIDoc{}

	app.Get("/docs", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.SendString(swaggerPage)
	})
	app.Get(openAPIRoute, func(c *fiber.Ctx) error {
		data, err := doc.load()
		if err != nil {
			return errNotFound(c, "openapi document not found")
		}
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(data)
	})
}
