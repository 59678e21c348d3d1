package database

import (
	"database/sql"
	"fmt"
	"time"

	"carbonpath/app/models"

	"github.com/lib/pq"
)

func scopeNames(scopes []models.EmissionScope) []string {
	names := make([]string, len(scopes))
	for i, s := range scopes {
		names[i] = string(s)
	}
	return names
}

func CreateMeasurement(db *sql.DB, m *models.EmissionMeasurement) error {
	query := `
		INSERT INTO emission_measurements (organization_id, category, scope, period_start, period_end, co2e_tonnes, data_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return db.QueryRow(
		query,
		m.OrganizationID, m.Category, m.Scope,
		m.PeriodStart, m.PeriodEnd, m.CO2eTonnes, m.DataSource,
	).Scan(&m.ID, &m.CreatedAt)
}

func GetMeasurements(db *sql.DB, orgID string, limit int) ([]*models.EmissionMeasurement, error) {
	query := `
		SELECT id, organization_id, category, scope, period_start, period_end, co2e_tonnes, COALESCE(data_source, ''), created_at
		FROM emission_measurements
		WHERE organization_id = $1
		ORDER BY period_start DESC
		LIMIT $2
	`
	rows, err := db.Query(query, orgID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var measurements []*models.EmissionMeasurement
	for rows.Next() {
		m := &models.EmissionMeasurement{}
		if err := rows.Scan(
			&m.ID, &m.OrganizationID, &m.Category, &m.Scope,
			&m.PeriodStart, &m.PeriodEnd, &m.CO2eTonnes, &m.DataSource, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}

// SumEmissions totals co2e tonnes for an organization over the half-open
// period [periodStart, periodEnd), optionally filtered by category and
// restricted to the given scopes. An empty scope list applies no scope
// filter. No matching data is a normal state and returns 0.
func SumEmissions(db *sql.DB, orgID, category string, scopes []models.EmissionScope, periodStart, periodEnd time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(co2e_tonnes), 0)
		FROM emission_measurements
		WHERE organization_id = $1
		  AND period_start >= $2
		  AND period_start < $3
	`
	args := []interface{}{orgID, periodStart, periodEnd}

	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if len(scopes) > 0 {
		args = append(args, pq.Array(scopeNames(scopes)))
		query += fmt.Sprintf(` AND scope = ANY($%d)`, len(args))
	}

	var total float64
	if err := db.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// CategoryTotals returns per-category emission totals for an organization over
// the half-open period, for allocation baselines.
func CategoryTotals(db *sql.DB, orgID string, scopes []models.EmissionScope, periodStart, periodEnd time.Time) (map[string]float64, error) {
	query := `
		SELECT category, COALESCE(SUM(co2e_tonnes), 0)
		FROM emission_measurements
		WHERE organization_id = $1
		  AND period_start >= $2
		  AND period_start < $3
	`
	args := []interface{}{orgID, periodStart, periodEnd}
	if len(scopes) > 0 {
		args = append(args, pq.Array(scopeNames(scopes)))
		query += fmt.Sprintf(` AND scope = ANY($%d)`, len(args))
	}
	query += ` GROUP BY category ORDER BY category`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, err
		}
		totals[category] = total
	}
	return totals, rows.Err()
}

// CoveredDays counts the distinct days within [periodStart, periodEnd) that
// fall inside at least one measurement window, for data-quality scoring.
func CoveredDays(db *sql.DB, orgID string, periodStart, periodEnd time.Time) (int, error) {
	query := `
		SELECT COUNT(DISTINCT d)
		FROM emission_measurements m,
			generate_series(GREATEST(m.period_start, $2::date), LEAST(m.period_end - 1, $3::date - 1), '1 day') d
		WHERE m.organization_id = $1
		  AND m.period_end > $2
		  AND m.period_start < $3
	`
	var days int
	if err := db.QueryRow(query, orgID, periodStart, periodEnd).Scan(&days); err != nil {
		return 0, err
	}
	return days, nil
}
