package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/elektrokombinacija/nexus-checker/internal/pkg/metrics"
)

// SetupRoutes registers middleware and every route on app.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-API-Version", "1")
		return c.Next()
	})

	app.Get("/v1/health", HealthHandler(deps, time.Now()))

	v1 := app.Group("/v1")
	v1.Get("/states", ListStatesHandler(deps))
	v1.Get("/states/:id", GetStateHandler(deps))
	v1.Get("/rules/:id", GetRuleHandler(deps))
	v1.Get("/resolve", ResolveHandler(deps))
	v1.Get("/map.png", SnapshotHandler(deps))

	v1.Post("/sessions", CreateSessionHandler(deps))
	s := v1.Group("/sessions/:session", SessionMiddleware())
	s.Get("/answers", ListAnswersHandler(deps))
	s.Get("/answers/:id", GetAnswersHandler(deps))
	s.Put("/answers/:id", PutAnswersHandler(deps))
	s.Delete("/answers/:id", DeleteAnswersHandler(deps))
	s.Get("/summary", SummaryHandler(deps))
}

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies, startedAt time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).String(),
			"version": deps.Version,
			"states":  len(deps.Hit.Shapes()),
		})
	}
}
