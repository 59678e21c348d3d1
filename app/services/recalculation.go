package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"carbonpath/app/database"
	"carbonpath/app/models"

	"github.com/google/uuid"
)

// SystemActor is recorded on audit rows for scheduler-driven recalculations.
const SystemActor = "system"

// ShouldRollForward decides whether an organization's baseline moves to the
// candidate year: the candidate must be newer than the current baseline, have
// data, and not have been processed before.
func ShouldRollForward(currentBaselineYear, candidateYear int, hasData, alreadyRecorded bool) bool {
	return candidateYear > currentBaselineYear && hasData && !alreadyRecorded
}

// RunRecalculationSweep checks every organization with an active target for a
// baseline roll-forward to last year. One organization failing never stops
// the sweep.
func RunRecalculationSweep(db *sql.DB, actor string) {
	orgs, err := database.GetOrganizationsWithActiveTargets(db)
	if err != nil {
		log.Printf("Recalculation sweep aborted, cannot list organizations: %v", err)
		return
	}

	candidateYear := time.Now().Year() - 1
	processed, skipped := 0, 0
	for _, org := range orgs {
		recalc, didRun, err := RecalculateOrganization(db, org, candidateYear, actor)
		if err != nil {
			log.Printf("Recalculation failed for organization %s (%s): %v", org.Name, org.ID, err)
			continue
		}
		if !didRun {
			skipped++
			continue
		}
		processed++
		log.Printf("Recalculated organization %s: baseline %d -> %d, %d targets, %d categories",
			org.Name, recalc.OldBaselineYear, recalc.NewBaselineYear,
			recalc.TargetsUpdated, recalc.CategoriesUpdated)
	}
	log.Printf("Recalculation sweep completed: %d organizations recalculated, %d skipped", processed, skipped)
}

// RecalculateOrganization rolls an organization's active targets forward to
// the candidate baseline year. Returns (record, true, nil) when a
// recalculation ran, (nil, false, nil) when nothing needed doing — already
// recorded for that year, no eligible target, or no data — and an error only
// on a genuine failure. Re-invocation for the same (organization, year) is a
// no-op success, and prior state is never mutated on failure.
func RecalculateOrganization(db *sql.DB, org *models.Organization, newYear int, actor string) (*models.BaselineRecalculation, bool, error) {
	exists, err := database.RecalculationExists(db, org.ID, newYear)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, false, nil
	}

	src := &SQLEmissionsSource{DB: db}
	newBaseline, err := ResolveBaselineForYear(src, org, models.AllScopes, newYear)
	if err != nil {
		return nil, false, err
	}
	if newBaseline == 0 {
		// A zero baseline would corrupt every derived figure downstream.
		log.Printf("Skipping recalculation for organization %s: no data for %d", org.ID, newYear)
		return nil, false, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	// Row locks serialize concurrent recalculation attempts for this
	// organization; different organizations never contend.
	targets, err := database.GetActiveTargetsForUpdate(tx, org.ID)
	if err != nil {
		return nil, false, err
	}

	oldBaselineYear := 0
	targetsUpdated := 0
	categoriesUpdated := 0
	for _, target := range targets {
		scope := target.ScopeCoverage
		baseline, err := ResolveBaselineForYear(src, org, scope, newYear)
		if err != nil {
			return nil, false, err
		}
		if !ShouldRollForward(target.BaselineYear, newYear, baseline > 0, exists) {
			if target.BaselineYear < newYear && baseline == 0 {
				log.Printf("Skipping target %s in recalculation: no %s data for %d", target.ID, scope, newYear)
			}
			continue
		}
		if oldBaselineYear == 0 || target.BaselineYear > oldBaselineYear {
			oldBaselineYear = target.BaselineYear
		}

		target.BaselineYear = newYear
		target.BaselineEmissions = baseline
		target.RecomputeDerived()
		if err := database.UpdateTargetBaselineTx(tx, target); err != nil {
			return nil, false, err
		}

		start, end := YearBounds(newYear)
		categoryBaselines, err := src.CategoryTotals(org.ID, EffectiveScopes(org, scope), start, end)
		if err != nil {
			return nil, false, err
		}
		effortFactors, err := database.GetEffortFactors(db, target.ID)
		if err != nil {
			return nil, false, err
		}

		set, err := AllocateCategories(target, categoryBaselines, effortFactors)
		if err != nil {
			return nil, false, fmt.Errorf("allocation for target %s: %w", target.ID, err)
		}
		if err := database.ReplaceCategoryTargetsTx(tx, target.ID, newYear, set); err != nil {
			return nil, false, err
		}

		targetsUpdated++
		categoriesUpdated += len(set)

		if err := emitEventTx(tx, org.ID, target.ID, models.EventTargetRecalculated, map[string]interface{}{
			"new_baseline_year":  newYear,
			"baseline_emissions": baseline,
			"target_emissions":   target.TargetEmissions,
		}); err != nil {
			return nil, false, err
		}
		if err := emitEventTx(tx, org.ID, target.ID, models.EventAllocationReplaced, map[string]interface{}{
			"baseline_year": newYear,
			"categories":    len(set),
		}); err != nil {
			return nil, false, err
		}
	}

	if targetsUpdated == 0 {
		return nil, false, nil
	}

	recalc := &models.BaselineRecalculation{
		ID:                uuid.NewString(),
		OrganizationID:    org.ID,
		OldBaselineYear:   oldBaselineYear,
		NewBaselineYear:   newYear,
		Reason:            fmt.Sprintf("Complete data available for %d", newYear),
		TargetsUpdated:    targetsUpdated,
		CategoriesUpdated: categoriesUpdated,
		RecalculatedBy:    actor,
	}
	inserted, err := database.CreateRecalculationTx(tx, recalc)
	if err != nil {
		return nil, false, err
	}
	if !inserted {
		// A concurrent run beat us to the audit row; drop our work.
		return nil, false, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return recalc, true, nil
}

func emitEventTx(tx *sql.Tx, orgID, targetID string, eventType models.EngineEventType, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return database.CreateEventTx(tx, &models.EngineEvent{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		TargetID:       &targetID,
		Type:           eventType,
		Payload:        string(body),
	})
}

// EmitEvent records an engine event outside any transaction, for lifecycle
// notifications the handlers fire after their own write committed. A failed
// event write is logged, never surfaced to the request that triggered it.
func EmitEvent(db *sql.DB, orgID, targetID string, eventType models.EngineEventType, payload map[string]interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to encode %s event payload: %v", eventType, err)
		return
	}
	if err := database.CreateEvent(db, &models.EngineEvent{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		TargetID:       &targetID,
		Type:           eventType,
		Payload:        string(body),
	}); err != nil {
		log.Printf("Failed to record %s event for target %s: %v", eventType, targetID, err)
	}
}
