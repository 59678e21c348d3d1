package database

import (
	"database/sql"

	"carbonpath/app/models"
)

// RecalculationExists reports whether a baseline roll-forward to newYear has
// already been recorded for the organization. The orchestrator checks this
// before acting; together with the unique constraint it makes recalculation
// idempotent.
func RecalculationExists(db *sql.DB, orgID string, newYear int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM baseline_recalculations
		WHERE organization_id = $1 AND new_baseline_year = $2
	)`
	if err := db.QueryRow(query, orgID, newYear).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateRecalculationTx records the audit row inside the recalculation
// transaction. A concurrent writer that lost the race hits the unique
// constraint and inserts nothing; the caller treats inserted=false as a no-op.
func CreateRecalculationTx(tx *sql.Tx, r *models.BaselineRecalculation) (bool, error) {
	query := `
		INSERT INTO baseline_recalculations (id, organization_id, old_baseline_year, new_baseline_year,
			reason, targets_updated, categories_updated, recalculated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (organization_id, new_baseline_year) DO NOTHING
	`
	res, err := tx.Exec(
		query,
		r.ID, r.OrganizationID, r.OldBaselineYear, r.NewBaselineYear,
		r.Reason, r.TargetsUpdated, r.CategoriesUpdated, r.RecalculatedBy,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func GetRecalculations(db *sql.DB, orgID string) ([]*models.BaselineRecalculation, error) {
	query := `
		SELECT id, organization_id, old_baseline_year, new_baseline_year, COALESCE(reason, ''),
			targets_updated, categories_updated, COALESCE(recalculated_by, ''), created_at
		FROM baseline_recalculations
		WHERE organization_id = $1
		ORDER BY new_baseline_year DESC
	`
	rows, err := db.Query(query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recalcs []*models.BaselineRecalculation
	for rows.Next() {
		r := &models.BaselineRecalculation{}
		if err := rows.Scan(
			&r.ID, &r.OrganizationID, &r.OldBaselineYear, &r.NewBaselineYear, &r.Reason,
			&r.TargetsUpdated, &r.CategoriesUpdated, &r.RecalculatedBy, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		recalcs = append(recalcs, r)
	}
	return recalcs, rows.Err()
}
