package database

import (
	"database/sql"

	"carbonpath/app/models"
)

// ReplaceCategoryTargets swaps the full category set for a target's baseline
// year in one transaction: delete then insert, never a partial update, so a
// half-written allocation is never observable.
func ReplaceCategoryTargets(db *sql.DB, targetID string, baselineYear int, set []models.CategoryTarget) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := replaceCategoryTargetsTx(tx, targetID, baselineYear, set); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ReplaceCategoryTargetsTx is the transaction-scoped variant used by the
// recalculation orchestrator, which owns a wider transaction.
func ReplaceCategoryTargetsTx(tx *sql.Tx, targetID string, baselineYear int, set []models.CategoryTarget) error {
	return replaceCategoryTargetsTx(tx, targetID, baselineYear, set)
}

func replaceCategoryTargetsTx(tx *sql.Tx, targetID string, baselineYear int, set []models.CategoryTarget) error {
	if _, err := tx.Exec(
		`DELETE FROM category_targets WHERE target_id = $1 AND baseline_year = $2`,
		targetID, baselineYear,
	); err != nil {
		return err
	}

	query := `
		INSERT INTO category_targets (target_id, category, scope, baseline_year, baseline_emissions,
			emission_percent, effort_factor, baseline_target_percent, adjusted_target_percent,
			target_emissions, feasibility, manual_override)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	for i := range set {
		ct := &set[i]
		ct.TargetID = targetID
		ct.BaselineYear = baselineYear
		if err := tx.QueryRow(
			query,
			ct.TargetID, ct.Category, ct.Scope, ct.BaselineYear, ct.BaselineEmissions,
			ct.EmissionPercent, ct.EffortFactor, ct.BaselineTargetPercent, ct.AdjustedTargetPercent,
			ct.TargetEmissions, ct.Feasibility, ct.ManualOverride,
		).Scan(&ct.ID, &ct.CreatedAt, &ct.UpdatedAt); err != nil {
			return err
		}
	}
	return nil
}

func GetCategoryTargets(db *sql.DB, targetID string) ([]models.CategoryTarget, error) {
	query := `
		SELECT id, target_id, category, scope, baseline_year, baseline_emissions,
			emission_percent, effort_factor, baseline_target_percent, adjusted_target_percent,
			target_emissions, feasibility, manual_override, created_at, updated_at
		FROM category_targets
		WHERE target_id = $1
		ORDER BY emission_percent DESC, category
	`
	rows, err := db.Query(query, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var set []models.CategoryTarget
	for rows.Next() {
		var ct models.CategoryTarget
		if err := rows.Scan(
			&ct.ID, &ct.TargetID, &ct.Category, &ct.Scope, &ct.BaselineYear, &ct.BaselineEmissions,
			&ct.EmissionPercent, &ct.EffortFactor, &ct.BaselineTargetPercent, &ct.AdjustedTargetPercent,
			&ct.TargetEmissions, &ct.Feasibility, &ct.ManualOverride, &ct.CreatedAt, &ct.UpdatedAt,
		); err != nil {
			return nil, err
		}
		set = append(set, ct)
	}
	return set, rows.Err()
}

// GetCategoryTargetByID loads one category target, scoped to its parent so a
// category from another target can never be evaluated against it.
func GetCategoryTargetByID(db *sql.DB, targetID, categoryTargetID string) (*models.CategoryTarget, error) {
	ct := &models.CategoryTarget{}
	query := `
		SELECT id, target_id, category, scope, baseline_year, baseline_emissions,
			emission_percent, effort_factor, baseline_target_percent, adjusted_target_percent,
			target_emissions, feasibility, manual_override, created_at, updated_at
		FROM category_targets
		WHERE id = $1 AND target_id = $2
	`
	if err := db.QueryRow(query, categoryTargetID, targetID).Scan(
		&ct.ID, &ct.TargetID, &ct.Category, &ct.Scope, &ct.BaselineYear, &ct.BaselineEmissions,
		&ct.EmissionPercent, &ct.EffortFactor, &ct.BaselineTargetPercent, &ct.AdjustedTargetPercent,
		&ct.TargetEmissions, &ct.Feasibility, &ct.ManualOverride, &ct.CreatedAt, &ct.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return ct, nil
}

// GetEffortFactors returns the current effort factors per category for a
// target, so a recalculation can carry them into the new allocation.
func GetEffortFactors(db *sql.DB, targetID string) (map[string]float64, error) {
	query := `SELECT category, effort_factor FROM category_targets WHERE target_id = $1`
	rows, err := db.Query(query, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	factors := make(map[string]float64)
	for rows.Next() {
		var category string
		var factor float64
		if err := rows.Scan(&category, &factor); err != nil {
			return nil, err
		}
		factors[category] = factor
	}
	return factors, rows.Err()
}
