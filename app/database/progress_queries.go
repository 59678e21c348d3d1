package database

import (
	"database/sql"

	"carbonpath/app/models"
)

const progressColumns = `id, target_id, category_target_id, year, month, quarter, reporting_date,
	actual_emissions, required_emissions, gap, status, data_quality_score, created_at, updated_at`

func scanProgress(row interface{ Scan(...interface{}) error }, p *models.ProgressRecord) error {
	return row.Scan(
		&p.ID, &p.TargetID, &p.CategoryTargetID, &p.Year, &p.Month, &p.Quarter,
		&p.ReportingDate, &p.ActualEmissions, &p.RequiredEmissions, &p.Gap,
		&p.Status, &p.DataQualityScore, &p.CreatedAt, &p.UpdatedAt,
	)
}

// UpsertProgressRecord appends one evaluated period, or overwrites the
// existing row for the same (target, category, year, month/quarter) series
// slot. Monthly and quarterly series are independent and never merged, and
// each category target keeps its own series beside the target-level one.
func UpsertProgressRecord(db *sql.DB, p *models.ProgressRecord) error {
	// Conflict targets must spell out the partial-index expressions exactly,
	// zero UUID included, or the planner will not match them.
	const seriesKey = `target_id, COALESCE(category_target_id, '00000000-0000-0000-0000-000000000000'::uuid), year`
	var conflict string
	switch {
	case p.Month != nil:
		conflict = `(` + seriesKey + `, month) WHERE month IS NOT NULL`
	case p.Quarter != nil:
		conflict = `(` + seriesKey + `, quarter) WHERE quarter IS NOT NULL`
	default:
		conflict = `(` + seriesKey + `) WHERE month IS NULL AND quarter IS NULL`
	}

	query := `
		INSERT INTO progress_records (target_id, category_target_id, year, month, quarter, reporting_date,
			actual_emissions, required_emissions, gap, status, data_quality_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT ` + conflict + ` DO UPDATE
		SET reporting_date = EXCLUDED.reporting_date,
			actual_emissions = EXCLUDED.actual_emissions,
			required_emissions = EXCLUDED.required_emissions,
			gap = EXCLUDED.gap,
			status = EXCLUDED.status,
			data_quality_score = EXCLUDED.data_quality_score,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	return db.QueryRow(
		query,
		p.TargetID, p.CategoryTargetID, p.Year, p.Month, p.Quarter, p.ReportingDate,
		p.ActualEmissions, p.RequiredEmissions, p.Gap, p.Status, p.DataQualityScore,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func GetProgressRecordByID(db *sql.DB, id string) (*models.ProgressRecord, error) {
	p := &models.ProgressRecord{}
	query := `SELECT ` + progressColumns + ` FROM progress_records WHERE id = $1`
	if err := scanProgress(db.QueryRow(query, id), p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProgressRecords lists a target's records for a year range, optionally
// restricted to one reporting granularity.
func GetProgressRecords(db *sql.DB, targetID string, fromYear, toYear int, granularity models.Granularity) ([]*models.ProgressRecord, error) {
	query := `SELECT ` + progressColumns + ` FROM progress_records
			  WHERE target_id = $1 AND year >= $2 AND year <= $3`
	switch granularity {
	case models.GranularityMonthly:
		query += ` AND month IS NOT NULL`
	case models.GranularityQuarterly:
		query += ` AND quarter IS NOT NULL`
	case models.GranularityYearly:
		query += ` AND month IS NULL AND quarter IS NULL`
	}
	query += ` ORDER BY year, quarter NULLS FIRST, month NULLS FIRST`

	rows, err := db.Query(query, targetID, fromYear, toYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.ProgressRecord
	for rows.Next() {
		p := &models.ProgressRecord{}
		if err := scanProgress(rows, p); err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// GetLatestProgressRecords returns the most recently evaluated periods for a
// target, newest first.
func GetLatestProgressRecords(db *sql.DB, targetID string, limit int) ([]*models.ProgressRecord, error) {
	query := `SELECT ` + progressColumns + ` FROM progress_records
			  WHERE target_id = $1
			  ORDER BY reporting_date DESC
			  LIMIT $2`

	rows, err := db.Query(query, targetID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.ProgressRecord
	for rows.Next() {
		p := &models.ProgressRecord{}
		if err := scanProgress(rows, p); err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// CorrectProgressRecord replaces an erroneous actual-emissions input and the
// gap/status derived from it. The only permitted mutation of a record.
func CorrectProgressRecord(db *sql.DB, p *models.ProgressRecord) error {
	query := `
		UPDATE progress_records
		SET actual_emissions = $1, gap = $2, status = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	return db.QueryRow(query, p.ActualEmissions, p.Gap, p.Status, p.ID).Scan(&p.UpdatedAt)
}
