package progress

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the progress evaluation routes
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	app.Post("/api/targets/:id/progress", EvaluateProgressHandler(db))
	app.Get("/api/targets/:id/progress", GetProgressHandler(db))
	app.Put("/api/progress/:id", CorrectProgressHandler(db))
}
