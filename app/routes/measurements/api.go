package measurements

import (
	"database/sql"
	"time"

	"carbonpath/app/database"
	"carbonpath/app/models"
	"carbonpath/app/services"

	"github.com/gofiber/fiber/v2"
)

type createMeasurementRequest struct {
	OrganizationID string               `json:"organization_id"`
	Category       string               `json:"category"`
	Scope          models.EmissionScope `json:"scope"`
	PeriodStart    string               `json:"period_start"`
	PeriodEnd      string               `json:"period_end"`
	CO2eTonnes     float64              `json:"co2e_tonnes"`
	DataSource     string               `json:"data_source"`
}

// CreateMeasurementHandler ingests one dated, categorized emission measurement
func CreateMeasurementHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createMeasurementRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}
		if req.OrganizationID == "" || req.Category == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "organization_id and category are required"})
		}
		if req.CO2eTonnes < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "co2e_tonnes must be non-negative"})
		}

		periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "period_start must be YYYY-MM-DD"})
		}
		periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "period_end must be YYYY-MM-DD"})
		}
		if !periodEnd.After(periodStart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "period_end must be after period_start"})
		}
		if req.Scope == "" {
			req.Scope = models.Scope1
		}

		m := &models.EmissionMeasurement{
			OrganizationID: req.OrganizationID,
			Category:       req.Category,
			Scope:          req.Scope,
			PeriodStart:    periodStart,
			PeriodEnd:      periodEnd,
			CO2eTonnes:     req.CO2eTonnes,
			DataSource:     req.DataSource,
		}
		if err := database.CreateMeasurement(db, m); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create measurement: " + err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// GetMeasurementsHandler lists an organization's recent measurements
func GetMeasurementsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		list, err := database.GetMeasurements(db, c.Params("orgId"), limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve measurements"})
		}
		return c.JSON(list)
	}
}

// GetTotalEmissionsHandler exposes the aggregator: total co2e for a year,
// optionally filtered by category and scope. "all" respects the
// organization's scope-inclusion flags. No data returns 0.
func GetTotalEmissionsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		org, err := database.GetOrganizationByID(db, c.Params("orgId"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Organization not found"})
		}

		year := c.QueryInt("year", time.Now().Year()-1)
		category := c.Query("category")
		scope := models.EmissionScope(c.Query("scope", string(models.AllScopes)))

		start, end := services.YearBounds(year)
		total, err := database.SumEmissions(db, org.ID, category, services.EffectiveScopes(org, scope), start, end)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to aggregate emissions"})
		}
		return c.JSON(fiber.Map{
			"organization_id": c.Params("orgId"),
			"year":            year,
			"category":        category,
			"scope":           scope,
			"total_co2e":      total,
		})
	}
}
