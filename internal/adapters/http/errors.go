package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/vertexparse"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, invalid_vertices, not_found, internal_error, ...
	Message   string `json:"message"` // Human-readable message
	Line      int    `json:"line,omitempty"`
	Text      string `json:"text,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	return sendError(c, APIError{Status: status, Code: code, Message: message})
}

func sendError(c *fiber.Ctx, e APIError) error {
	e.RequestID, _ = c.Locals("requestid").(string)
	return c.Status(e.Status).JSON(e)
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, 404, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}

// errUnavailable returns a 503 error for a backing service that is not wired.
func errUnavailable(c *fiber.Ctx, msg string) error {
	return newError(c, 503, "unavailable", msg)
}

// errInvalidVertices returns a 400 error pointing at the offending line.
func errInvalidVertices(c *fiber.Ctx, pe *vertexparse.ParseError) error {
	return sendError(c, APIError{
		Status:  400,
		Code:    "invalid_vertices",
		Message: pe.Error(),
		Line:    pe.Line,
		Text:    pe.Text,
	})
}

// errFromService maps service errors onto API errors.
func errFromService(c *fiber.Ctx, err error) error {
	var pe *vertexparse.ParseError
	switch {
	case errors.As(err, &pe):
		return errInvalidVertices(c, pe)
	case errors.Is(err, domain.ErrPolygonNotFound):
		return errNotFound(c, "polygon not found")
	case errors.Is(err, domain.ErrTooFewVertices),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrNonFinite):
		return errBadRequest(c, err.Error())
	default:
		LoggerFromCtx(c.UserContext()).Error("request failed", "path", c.Path(), "error", err)
		return errInternal(c, "internal error")
	}
}
