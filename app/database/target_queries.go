package database

import (
	"database/sql"

	"carbonpath/app/models"
)

const targetColumns = `id, organization_id, target_type, scope_coverage, baseline_year, baseline_emissions,
	target_year, reduction_percent, target_emissions, status, is_active, COALESCE(created_by, ''), created_at, updated_at`

func scanTarget(row interface{ Scan(...interface{}) error }, t *models.Target) error {
	return row.Scan(
		&t.ID, &t.OrganizationID, &t.TargetType, &t.ScopeCoverage,
		&t.BaselineYear, &t.BaselineEmissions, &t.TargetYear,
		&t.ReductionPercent, &t.TargetEmissions, &t.Status,
		&t.IsActive, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
}

func CreateTarget(db *sql.DB, t *models.Target) error {
	query := `
		INSERT INTO targets (organization_id, target_type, scope_coverage, baseline_year, baseline_emissions,
			target_year, reduction_percent, target_emissions, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, is_active, created_at, updated_at
	`
	return db.QueryRow(
		query,
		t.OrganizationID, t.TargetType, t.ScopeCoverage, t.BaselineYear, t.BaselineEmissions,
		t.TargetYear, t.ReductionPercent, t.TargetEmissions, t.Status, t.CreatedBy,
	).Scan(&t.ID, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
}

func GetTargetByID(db *sql.DB, targetID string) (*models.Target, error) {
	t := &models.Target{}
	query := `SELECT ` + targetColumns + ` FROM targets WHERE id = $1`
	if err := scanTarget(db.QueryRow(query, targetID), t); err != nil {
		return nil, err
	}
	return t, nil
}

func GetTargetsByOrganization(db *sql.DB, orgID string) ([]*models.Target, error) {
	query := `SELECT ` + targetColumns + ` FROM targets
			  WHERE organization_id = $1
			  ORDER BY is_active DESC, created_at DESC`

	rows, err := db.Query(query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []*models.Target
	for rows.Next() {
		t := &models.Target{}
		if err := scanTarget(rows, t); err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// GetActiveTargetsForUpdate loads an organization's active targets inside tx
// with a row lock, serializing concurrent recalculation attempts.
func GetActiveTargetsForUpdate(tx *sql.Tx, orgID string) ([]*models.Target, error) {
	query := `SELECT ` + targetColumns + ` FROM targets
			  WHERE organization_id = $1 AND is_active = true
			  ORDER BY created_at
			  FOR UPDATE`

	rows, err := tx.Query(query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []*models.Target
	for rows.Next() {
		t := &models.Target{}
		if err := scanTarget(rows, t); err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

func UpdateTarget(db *sql.DB, t *models.Target) error {
	query := `
		UPDATE targets
		SET target_type = $1, scope_coverage = $2, baseline_year = $3, baseline_emissions = $4,
			target_year = $5, reduction_percent = $6, target_emissions = $7, status = $8,
			is_active = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`
	return db.QueryRow(
		query,
		t.TargetType, t.ScopeCoverage, t.BaselineYear, t.BaselineEmissions,
		t.TargetYear, t.ReductionPercent, t.TargetEmissions, t.Status,
		t.IsActive, t.ID,
	).Scan(&t.UpdatedAt)
}

// UpdateTargetBaselineTx rewrites a target's baseline and derived fields
// inside the recalculation transaction.
func UpdateTargetBaselineTx(tx *sql.Tx, t *models.Target) error {
	query := `
		UPDATE targets
		SET baseline_year = $1, baseline_emissions = $2, target_emissions = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	return tx.QueryRow(query, t.BaselineYear, t.BaselineEmissions, t.TargetEmissions, t.ID).Scan(&t.UpdatedAt)
}
