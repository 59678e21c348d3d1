package organizations

import (
	"database/sql"

	"carbonpath/app/database"
	"carbonpath/app/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllOrganizationsHandler returns all organizations
func GetAllOrganizationsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgs, err := database.GetAllOrganizations(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve organizations"})
		}
		return c.JSON(orgs)
	}
}

// GetOrganizationHandler returns a specific organization by ID
func GetOrganizationHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		org, err := database.GetOrganizationByID(db, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Organization not found"})
		}
		return c.JSON(org)
	}
}

// CreateOrganizationHandler creates a new organization
func CreateOrganizationHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var org models.Organization
		if err := c.BodyParser(&org); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}
		if org.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Organization name is required"})
		}
		if org.PreferredFramework == "" {
			org.PreferredFramework = models.FrameworkNearTerm15C
		}

		if err := database.CreateOrganization(db, &org); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create organization: " + err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(org)
	}
}

// UpdateOrganizationHandler updates an organization's configuration
func UpdateOrganizationHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		existing, err := database.GetOrganizationByID(db, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Organization not found"})
		}

		org := *existing
		if err := c.BodyParser(&org); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}
		org.ID = existing.ID

		if err := database.UpdateOrganization(db, &org); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update organization: " + err.Error()})
		}
		return c.JSON(org)
	}
}

// DeleteOrganizationHandler soft-deletes an organization
func DeleteOrganizationHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.DeleteOrganization(db, c.Params("id")); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete organization"})
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
