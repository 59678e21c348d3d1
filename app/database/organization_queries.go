package database

import (
	"database/sql"
	"time"

	"carbonpath/app/models"
)

func CreateOrganization(db *sql.DB, org *models.Organization) error {
	query := `
		INSERT INTO organizations (name, preferred_framework, baseline_year, include_scope1, include_scope2, include_scope3)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, updated_at
	`
	return db.QueryRow(
		query,
		org.Name,
		org.PreferredFramework,
		org.BaselineYear,
		org.IncludeScope1,
		org.IncludeScope2,
		org.IncludeScope3,
	).Scan(&org.ID, &org.IsActive, &org.CreatedAt, &org.UpdatedAt)
}

func GetOrganizationByID(db *sql.DB, orgID string) (*models.Organization, error) {
	org := &models.Organization{}
	query := `SELECT id, name, preferred_framework, baseline_year, include_scope1, include_scope2, include_scope3,
			  is_active, created_at, updated_at
			  FROM organizations WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, orgID).Scan(
		&org.ID, &org.Name, &org.PreferredFramework, &org.BaselineYear,
		&org.IncludeScope1, &org.IncludeScope2, &org.IncludeScope3,
		&org.IsActive, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return org, nil
}

func GetAllOrganizations(db *sql.DB) ([]*models.Organization, error) {
	query := `SELECT id, name, preferred_framework, baseline_year, include_scope1, include_scope2, include_scope3,
			  is_active, created_at, updated_at
			  FROM organizations WHERE deleted_at IS NULL ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []*models.Organization
	for rows.Next() {
		org := &models.Organization{}
		if err := rows.Scan(
			&org.ID, &org.Name, &org.PreferredFramework, &org.BaselineYear,
			&org.IncludeScope1, &org.IncludeScope2, &org.IncludeScope3,
			&org.IsActive, &org.CreatedAt, &org.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

// GetOrganizationsWithActiveTargets returns the organizations the scheduler
// sweeps during a recalculation check.
func GetOrganizationsWithActiveTargets(db *sql.DB) ([]*models.Organization, error) {
	query := `
		SELECT DISTINCT o.id, o.name, o.preferred_framework, o.baseline_year,
			o.include_scope1, o.include_scope2, o.include_scope3,
			o.is_active, o.created_at, o.updated_at
		FROM organizations o
		JOIN targets t ON t.organization_id = o.id AND t.is_active = true
		WHERE o.deleted_at IS NULL AND o.is_active = true
		ORDER BY o.name
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []*models.Organization
	for rows.Next() {
		org := &models.Organization{}
		if err := rows.Scan(
			&org.ID, &org.Name, &org.PreferredFramework, &org.BaselineYear,
			&org.IncludeScope1, &org.IncludeScope2, &org.IncludeScope3,
			&org.IsActive, &org.CreatedAt, &org.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

func UpdateOrganization(db *sql.DB, org *models.Organization) error {
	query := `
		UPDATE organizations
		SET name = $1, preferred_framework = $2, baseline_year = $3,
			include_scope1 = $4, include_scope2 = $5, include_scope3 = $6,
			is_active = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`
	return db.QueryRow(
		query,
		org.Name, org.PreferredFramework, org.BaselineYear,
		org.IncludeScope1, org.IncludeScope2, org.IncludeScope3,
		org.IsActive, org.ID,
	).Scan(&org.UpdatedAt)
}

func DeleteOrganization(db *sql.DB, orgID string) error {
	query := `UPDATE organizations SET deleted_at = $1, is_active = false WHERE id = $2`
	_, err := db.Exec(query, time.Now(), orgID)
	return err
}
