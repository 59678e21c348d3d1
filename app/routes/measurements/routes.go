package measurements

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the measurement ingest and aggregation routes
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	app.Post("/api/measurements", CreateMeasurementHandler(db))
	app.Get("/api/organizations/:orgId/measurements", GetMeasurementsHandler(db))
	app.Get("/api/organizations/:orgId/emissions/total", GetTotalEmissionsHandler(db))
}
