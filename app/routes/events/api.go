package events

import (
	"database/sql"

	"carbonpath/app/database"

	"github.com/gofiber/fiber/v2"
)

// GetEventsHandler lists emitted engine events, newest first, for downstream
// notification systems to poll
func GetEventsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		list, err := database.GetEvents(db, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve events"})
		}
		return c.JSON(list)
	}
}
