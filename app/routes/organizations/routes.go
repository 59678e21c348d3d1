package organizations

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the organization configuration routes
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	app.Get("/api/organizations", GetAllOrganizationsHandler(db))
	app.Get("/api/organizations/:id", GetOrganizationHandler(db))
	app.Post("/api/organizations", CreateOrganizationHandler(db))
	app.Put("/api/organizations/:id", UpdateOrganizationHandler(db))
	app.Delete("/api/organizations/:id", DeleteOrganizationHandler(db))
}
