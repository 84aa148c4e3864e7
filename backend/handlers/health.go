package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck handles GET /health.
func HealthCheck(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := app.DB.Ping(c.Context()); err != nil {
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"version": app.Version,
			"commit":  app.Commit,
		})
	}
}
