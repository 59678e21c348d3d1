package recalculations

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the baseline recalculation routes
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	app.Get("/api/organizations/:orgId/recalculations", GetRecalculationsHandler(db))
	app.Post("/api/organizations/:orgId/recalculate", RecalculateOrganizationHandler(db))
	app.Post("/api/recalculate", RecalculateAllHandler(db))
}
