package targets

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the target command and query routes
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	app.Get("/api/organizations/:orgId/targets", GetTargetsByOrganizationHandler(db))
	app.Post("/api/organizations/:orgId/targets", CreateTargetHandler(db))
	app.Get("/api/targets/:id", GetTargetHandler(db))
	app.Put("/api/targets/:id", UpdateTargetHandler(db))
	app.Delete("/api/targets/:id", RetireTargetHandler(db))
	app.Get("/api/targets/:id/trajectory", GetTrajectoryHandler(db))
}
