package http

import (
	"embed"
	"io/fs"
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

//go:embed web
var webFS embed.FS

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Health check
	app.Get("/health", handler.HealthCheck)

	// Dashboard page
	app.Get("/", servePage("web/index.html"))
	app.Get("/analytics", servePage("web/index.html"))
	app.Get("/heatmap", servePage("web/heatmap.html"))

	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}
	app.Use("/static", filesystem.New(filesystem.Config{
		Root: nethttp.FS(static),
	}))

	// Heatmap data for the hotspot chart
	app.Get("/api/heatmap", handler.GetHeatmap)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/areas", handler.GetAreas)
		api.Get("/areas/:area/snapshot", handler.GetSnapshot)
		api.Get("/areas/:area/hourly", handler.GetHourly)
		api.Get("/areas/:area/vehicles", handler.GetVehicles)
		api.Get("/areas/:area/weekly", handler.GetWeekly)
		api.Get("/areas/:area/report", handler.GetReport)

		// Dashboard state
		api.Get("/dashboard/selection", handler.GetSelection)
		api.Post("/dashboard/selection", handler.SelectArea)
	}
}

func servePage(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := webFS.ReadFile(name)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Page not found")
		}
		c.Type("html", "utf-8")
		return c.Send(page)
	}
}
