package database

import (
	"database/sql"

	"carbonpath/app/models"
)

// CreateEventTx records an emitted engine event inside the caller's
// transaction, so an event is only visible if the work it announces committed.
func CreateEventTx(tx *sql.Tx, event *models.EngineEvent) error {
	query := `
		INSERT INTO engine_events (id, organization_id, target_id, type, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return tx.QueryRow(
		query,
		event.ID, event.OrganizationID, event.TargetID, event.Type, event.Payload,
	).Scan(&event.CreatedAt)
}

// CreateEvent records an emitted engine event outside any transaction.
func CreateEvent(db *sql.DB, event *models.EngineEvent) error {
	query := `
		INSERT INTO engine_events (id, organization_id, target_id, type, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return db.QueryRow(
		query,
		event.ID, event.OrganizationID, event.TargetID, event.Type, event.Payload,
	).Scan(&event.CreatedAt)
}

// GetEvents retrieves emitted events newest first for downstream pollers.
func GetEvents(db *sql.DB, limit int) ([]models.EngineEvent, error) {
	query := `
		SELECT id, organization_id, target_id, type, payload, created_at
		FROM engine_events
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.EngineEvent
	for rows.Next() {
		var e models.EngineEvent
		if err := rows.Scan(
			&e.ID, &e.OrganizationID, &e.TargetID, &e.Type, &e.Payload, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
