package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the dashboard page routes
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	app.Get("/dashboard", GetDashboardHandler(db))
}
