package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PaginatedResponse wraps list results with pagination metadata.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination contains offset-based pagination info.
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

// Links returns the RFC 8288 relations for this page: first, prev (if any),
// next (if any) and last.
func (p Pagination) Links(base string) []string {
	link := func(offset int, rel string) string {
		return fmt.Sprintf(`<%s?offset=%d&limit=%d>; rel="%s"`, base, offset, p.Limit, rel)
	}

	links := []string{link(0, "first")}
	if p.Offset > 0 {
		links = append(links, link(max(p.Offset-p.Limit, 0), "prev"))
	}
	if p.Offset+p.Limit < p.Total {
		links = append(links, link(p.Offset+p.Limit, "next"))
	}
	return append(links, link(max(p.Total-p.Limit, 0), "last"))
}

// SetLinkHeaders adds the Link header for a paginated response.
func SetLinkHeaders(c *fiber.Ctx, p Pagination) {
	c.Set(fiber.HeaderLink, strings.Join(p.Links(c.Path()), ", "))
}
