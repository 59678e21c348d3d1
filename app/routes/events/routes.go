package events

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the emitted-event routes
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	app.Get("/api/events", GetEventsHandler(db))
}
