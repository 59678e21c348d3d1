package progress

import (
	"database/sql"
	"errors"
	"time"

	"carbonpath/app/database"
	"carbonpath/app/models"
	"carbonpath/app/services"

	"github.com/gofiber/fiber/v2"
)

type evaluateRequest struct {
	Year             int      `json:"year"`
	Month            *int     `json:"month"`
	Quarter          *int     `json:"quarter"`
	CategoryTargetID *string  `json:"category_target_id"`
	ActualEmissions  *float64 `json:"actual_emissions"`
	ReportingDate    string   `json:"reporting_date"`
}

type correctionRequest struct {
	ActualEmissions float64 `json:"actual_emissions"`
}

func evaluateErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrValidation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to evaluate progress: " + err.Error()})
}

// EvaluateProgressHandler evaluates one reporting period for a target and
// stores the resulting record. Passing category_target_id evaluates that
// category's slice instead of the whole target. Actual emissions default to
// the aggregator's total for the period; an explicit value in the request
// overrides it for manually reported periods.
func EvaluateProgressHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target, err := database.GetTargetByID(db, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Target not found"})
		}
		org, err := database.GetOrganizationByID(db, target.OrganizationID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load organization"})
		}

		var req evaluateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}
		if req.Year == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "year is required"})
		}

		reportingDate := time.Now()
		if req.ReportingDate != "" {
			reportingDate, err = time.Parse("2006-01-02", req.ReportingDate)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reporting_date must be YYYY-MM-DD"})
			}
		}

		period := services.Period{Year: req.Year, Month: req.Month, Quarter: req.Quarter}
		if err := period.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		start, end := period.Bounds()
		coveredDays, err := database.CoveredDays(db, target.OrganizationID, start, end)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute data coverage"})
		}
		quality := services.CoverageScore(coveredDays, period.Days())

		src := &services.SQLEmissionsSource{DB: db}
		var record *models.ProgressRecord
		if req.CategoryTargetID != nil {
			ct, err := database.GetCategoryTargetByID(db, target.ID, *req.CategoryTargetID)
			if err != nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category target not found"})
			}
			record, err = services.EvaluateCategoryProgress(src, org, target, ct, period, reportingDate, quality)
			if err != nil {
				return evaluateErrorResponse(c, err)
			}
		} else {
			record, err = services.EvaluateProgress(src, org, target, period, reportingDate, quality)
			if err != nil {
				return evaluateErrorResponse(c, err)
			}
		}
		if req.ActualEmissions != nil {
			services.CorrectActual(record, *req.ActualEmissions)
		}

		if err := database.UpsertProgressRecord(db, record); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store progress record: " + err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(record)
	}
}

// GetProgressHandler lists a target's progress records for a year range,
// optionally filtered to one reporting granularity
func GetProgressHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target, err := database.GetTargetByID(db, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Target not found"})
		}

		fromYear := c.QueryInt("from_year", target.BaselineYear)
		toYear := c.QueryInt("to_year", time.Now().Year())

		granularity := models.Granularity(c.Query("granularity"))
		switch granularity {
		case "", models.GranularityMonthly, models.GranularityQuarterly, models.GranularityYearly:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "granularity must be monthly, quarterly or yearly"})
		}

		records, err := database.GetProgressRecords(db, target.ID, fromYear, toYear, granularity)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve progress records"})
		}
		return c.JSON(records)
	}
}

// CorrectProgressHandler replaces an erroneous actual-emissions input on an
// existing record, re-deriving gap and status. The only permitted mutation.
func CorrectProgressHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, err := database.GetProgressRecordByID(db, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Progress record not found"})
		}

		var req correctionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}
		if req.ActualEmissions < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "actual_emissions must be non-negative"})
		}

		services.CorrectActual(record, req.ActualEmissions)
		if err := database.CorrectProgressRecord(db, record); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to correct progress record"})
		}
		return c.JSON(record)
	}
}
