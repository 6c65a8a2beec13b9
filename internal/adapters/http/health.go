package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Version is reported by the health endpoint; set at link time.
var Version = "dev"

// HealthHandler reports liveness, uptime and build version.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).String(),
			"version": Version,
		})
	}
}

// dependencyCheck is one readiness check. check is nil when the dependency
// is not configured.
type dependencyCheck struct {
	name     string
	required bool
	check    func(ctx context.Context) error
}

var errDisconnected = errors.New("disconnected")

func readinessChecks(deps *Dependencies) []dependencyCheck {
	db := dependencyCheck{name: "database", required: true}
	if deps.DB != nil {
		db.check = deps.DB.Ping
	}
	events := dependencyCheck{name: "nats"}
	if conn := deps.NATS; conn != nil {
		events.check = func(context.Context) error {
			if !conn.IsConnected() {
				return errDisconnected
			}
			return nil
		}
	}
	cache := dependencyCheck{name: "cache"}
	if deps.Cache != nil {
		cache.check = deps.Cache.Ping
	}
	return []dependencyCheck{db, events, cache}
}

// runChecks returns a per-dependency report. ready is false only when a
// required dependency is missing or failing.
func runChecks(ctx context.Context, checks []dependencyCheck) (report map[string]string, ready bool) {
	report = make(map[string]string, len(checks))
	ready = true
	for _, dc := range checks {
		var state string
		switch {
		case dc.check == nil:
			state = "not configured"
		default:
			if err := dc.check(ctx); err != nil {
				state = "error: " + err.Error()
			} else {
				state = "ok"
			}
		}
		report[dc.name] = state
		if state != "ok" && dc.required {
			ready = false
		}
	}
	return report, ready
}

// ReadyHandler reports every dependency. Only the database gates readiness;
// NATS and the cache are informational.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		report, ready := runChecks(ctx, readinessChecks(deps))
		if !ready {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready", "checks": report})
		}
		return c.JSON(fiber.Map{"status": "ready", "checks": report})
	}
}
