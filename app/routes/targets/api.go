package targets

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carbonpath/app/database"
	"carbonpath/app/models"
	"carbonpath/app/services"

	"github.com/gofiber/fiber/v2"
)

type targetRequest struct {
	TargetType       models.TargetType    `json:"target_type"`
	ScopeCoverage    models.EmissionScope `json:"scope_coverage"`
	BaselineYear     *int                 `json:"baseline_year"`
	TargetYear       int                  `json:"target_year"`
	ReductionPercent *float64             `json:"reduction_percent"`
	Status           models.TargetStatus  `json:"status"`
	EffortFactors    map[string]float64   `json:"effort_factors"`
}

func actorFrom(c *fiber.Ctx) string {
	if actor := c.Get("X-Actor"); actor != "" {
		return actor
	}
	return services.SystemActor
}

func engineErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNoBaselineData):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInconsistentAllocation):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// CreateTargetHandler creates a target: validates the commitment, resolves
// the baseline, applies the framework default reduction when none is given,
// runs the initial allocation and returns the full result.
func CreateTargetHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		org, err := database.GetOrganizationByID(db, c.Params("orgId"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Organization not found"})
		}

		var req targetRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}
		if req.TargetType == "" {
			req.TargetType = models.NearTermTarget
		}
		if req.ScopeCoverage == "" {
			req.ScopeCoverage = models.AllScopes
		}
		if req.Status == "" {
			req.Status = models.TargetDraft
		}

		reduction := services.DefaultReductionPercent(org.PreferredFramework)
		if req.ReductionPercent != nil {
			reduction = *req.ReductionPercent
		}

		src := &services.SQLEmissionsSource{DB: db}
		scopes := services.EffectiveScopes(org, req.ScopeCoverage)
		var baselineYear int
		var baselineEmissions float64
		if req.BaselineYear != nil {
			baselineYear = *req.BaselineYear
			baselineEmissions, err = services.YearTotal(src, org.ID, scopes, baselineYear)
		} else {
			baselineYear, baselineEmissions, err = services.ResolveBaseline(src, org, req.ScopeCoverage, time.Now())
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve baseline: " + err.Error()})
		}
		if baselineEmissions == 0 {
			return engineErrorResponse(c, fmt.Errorf("%w: year %d has no emission data; defer target creation until data is reported",
				services.ErrNoBaselineData, baselineYear))
		}

		target := &models.Target{
			OrganizationID:    org.ID,
			TargetType:        req.TargetType,
			ScopeCoverage:     req.ScopeCoverage,
			BaselineYear:      baselineYear,
			BaselineEmissions: baselineEmissions,
			TargetYear:        req.TargetYear,
			ReductionPercent:  reduction,
			Status:            req.Status,
			CreatedBy:         actorFrom(c),
		}
		target.RecomputeDerived()

		if err := services.ValidateTarget(target); err != nil {
			return engineErrorResponse(c, err)
		}

		start, end := services.YearBounds(baselineYear)
		categoryBaselines, err := src.CategoryTotals(org.ID, scopes, start, end)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load category baselines: " + err.Error()})
		}

		// Allocate before persisting anything so an inconsistent allocation
		// leaves no half-created target behind.
		set, err := services.AllocateCategories(target, categoryBaselines, req.EffortFactors)
		if err != nil {
			return engineErrorResponse(c, err)
		}

		if err := database.CreateTarget(db, target); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create target: " + err.Error()})
		}
		if err := database.ReplaceCategoryTargets(db, target.ID, target.BaselineYear, set); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to persist allocation: " + err.Error()})
		}
		target.CategoryTargets = set

		services.EmitEvent(db, org.ID, target.ID, models.EventTargetCreated, map[string]interface{}{
			"baseline_year":     target.BaselineYear,
			"target_year":       target.TargetYear,
			"reduction_percent": target.ReductionPercent,
		})

		return c.Status(fiber.StatusCreated).JSON(target)
	}
}

// GetTargetHandler returns a target with its category targets and latest
// progress records
func GetTargetHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target, err := database.GetTargetByID(db, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Target not found"})
		}

		set, err := database.GetCategoryTargets(db, target.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load category targets"})
		}
		target.CategoryTargets = set

		latest, err := database.GetLatestProgressRecords(db, target.ID, 12)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load progress records"})
		}
		for _, record := range latest {
			target.ProgressRecords = append(target.ProgressRecords, *record)
		}

		return c.JSON(target)
	}
}

// GetTargetsByOrganizationHandler lists an organization's targets, active first
func GetTargetsByOrganizationHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		targets, err := database.GetTargetsByOrganization(db, c.Params("orgId"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve targets"})
		}
		return c.JSON(targets)
	}
}

// UpdateTargetHandler edits a target. Re-allocation runs only when the
// reduction percentage, scope coverage, or effort factors change.
func UpdateTargetHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target, err := database.GetTargetByID(db, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Target not found"})
		}

		var req targetRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}

		needsReallocation := false
		if req.ReductionPercent != nil && *req.ReductionPercent != target.ReductionPercent {
			target.ReductionPercent = *req.ReductionPercent
			needsReallocation = true
		}
		if req.ScopeCoverage != "" && req.ScopeCoverage != target.ScopeCoverage {
			target.ScopeCoverage = req.ScopeCoverage
			needsReallocation = true
		}
		if len(req.EffortFactors) > 0 {
			needsReallocation = true
		}
		if req.TargetType != "" {
			target.TargetType = req.TargetType
		}
		if req.TargetYear != 0 {
			target.TargetYear = req.TargetYear
		}
		if req.Status != "" {
			target.Status = req.Status
		}
		target.RecomputeDerived()

		if err := services.ValidateTarget(target); err != nil {
			return engineErrorResponse(c, err)
		}

		if needsReallocation {
			org, err := database.GetOrganizationByID(db, target.OrganizationID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load organization: " + err.Error()})
			}

			src := &services.SQLEmissionsSource{DB: db}
			start, end := services.YearBounds(target.BaselineYear)
			categoryBaselines, err := src.CategoryTotals(target.OrganizationID, services.EffectiveScopes(org, target.ScopeCoverage), start, end)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load category baselines: " + err.Error()})
			}

			effortFactors, err := database.GetEffortFactors(db, target.ID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load effort factors: " + err.Error()})
			}
			for category, factor := range req.EffortFactors {
				effortFactors[category] = factor
			}

			set, err := services.AllocateCategories(target, categoryBaselines, effortFactors)
			if err != nil {
				return engineErrorResponse(c, err)
			}
			if err := database.UpdateTarget(db, target); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update target: " + err.Error()})
			}
			if err := database.ReplaceCategoryTargets(db, target.ID, target.BaselineYear, set); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to persist allocation: " + err.Error()})
			}
			target.CategoryTargets = set
		} else {
			if err := database.UpdateTarget(db, target); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update target: " + err.Error()})
			}
		}

		return c.JSON(target)
	}
}

// RetireTargetHandler deactivates a target without deleting it, so its
// historical trajectory stays queryable
func RetireTargetHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target, err := database.GetTargetByID(db, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Target not found"})
		}

		target.Retire()
		if err := database.UpdateTarget(db, target); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retire target"})
		}

		services.EmitEvent(db, target.OrganizationID, target.ID, models.EventTargetRetired, map[string]interface{}{
			"target_year": target.TargetYear,
		})
		return c.JSON(target)
	}
}

// GetTrajectoryHandler returns the required-emissions series for a target
// over a year range (pure computation, no writes)
func GetTrajectoryHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target, err := database.GetTargetByID(db, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Target not found"})
		}

		fromYear := c.QueryInt("from", target.BaselineYear)
		toYear := c.QueryInt("to", target.TargetYear)
		if toYear < fromYear {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to must not be before from"})
		}

		return c.JSON(fiber.Map{
			"target_id":  target.ID,
			"trajectory": services.TargetTrajectory(target, fromYear, toYear),
		})
	}
}
