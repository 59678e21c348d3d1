package dashboard

import (
	"database/sql"

	"carbonpath/app/database"
	"carbonpath/app/models"

	"github.com/gofiber/fiber/v2"
)

type targetSummary struct {
	Organization *models.Organization
	Target       *models.Target
	Latest       *models.ProgressRecord
}

// GetDashboardHandler renders the overview page: organizations, their active
// targets and the latest evaluated status per target
func GetDashboardHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgs, err := database.GetAllOrganizations(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load organizations: "+err.Error())
		}

		var summaries []targetSummary
		for _, org := range orgs {
			targets, err := database.GetTargetsByOrganization(db, org.ID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to load targets: "+err.Error())
			}
			for _, target := range targets {
				if !target.IsActive {
					continue
				}
				summary := targetSummary{Organization: org, Target: target}
				if latest, err := database.GetLatestProgressRecords(db, target.ID, 1); err == nil && len(latest) > 0 {
					summary.Latest = latest[0]
				}
				summaries = append(summaries, summary)
			}
		}

		return c.Render("dashboard/index", fiber.Map{
			"Title":       "Dashboard",
			"CurrentPage": "dashboard",
			"Summaries":   summaries,
		})
	}
}
