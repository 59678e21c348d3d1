package recalculations

import (
	"database/sql"
	"time"

	"carbonpath/app/database"
	"carbonpath/app/services"

	"github.com/gofiber/fiber/v2"
)

func actorFrom(c *fiber.Ctx) string {
	if actor := c.Get("X-Actor"); actor != "" {
		return actor
	}
	return services.SystemActor
}

// GetRecalculationsHandler returns an organization's baseline recalculation
// history
func GetRecalculationsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recalcs, err := database.GetRecalculations(db, c.Params("orgId"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve recalculations"})
		}
		return c.JSON(recalcs)
	}
}

// RecalculateOrganizationHandler triggers an on-demand baseline roll-forward
// for one organization. Re-running for an already-processed year is a no-op
// success, not an error.
func RecalculateOrganizationHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		org, err := database.GetOrganizationByID(db, c.Params("orgId"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Organization not found"})
		}

		newYear := c.QueryInt("year", time.Now().Year()-1)
		recalc, didRun, err := services.RecalculateOrganization(db, org, newYear, actorFrom(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Recalculation failed: " + err.Error()})
		}
		if !didRun {
			return c.JSON(fiber.Map{
				"skipped": true,
				"reason":  "already recalculated for this year, or no eligible targets or data",
			})
		}
		return c.JSON(recalc)
	}
}

// RecalculateAllHandler runs the same sweep the scheduler runs
func RecalculateAllHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		services.RunRecalculationSweep(db, actorFrom(c))
		return c.JSON(fiber.Map{"started": true})
	}
}
