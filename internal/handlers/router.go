package handlers

import (
	"healthtracker/internal/app"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Router(router fiber.Router, app *app.App) (err error) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Health Tracker API")
	})
	router.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := router.Group("/api", app.Middleware.TraceID())
	HealthHandler(api, app.Config)
	NewUserHandler(*app, api).Register()
	NewTrackerHandler(*app, api).Register()

	return nil
}
