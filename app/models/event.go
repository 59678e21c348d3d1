package models

import "time"

// EngineEvent is an emitted engine notification for downstream systems
// (e.g. "target_recalculated"). Consumers poll these; the engine never
// delivers notifications itself.
type EngineEvent struct {
	ID             string          `json:"id" gorm:"primaryKey;type:uuid"`
	OrganizationID string          `json:"organization_id" gorm:"not null;index;type:uuid"`
	TargetID       *string         `json:"target_id,omitempty" gorm:"index;type:uuid"`
	Type           EngineEventType `json:"type" gorm:"not null"`
	Payload        string          `json:"payload" gorm:"type:jsonb;default:'{}'"`
	CreatedAt      time.Time       `json:"created_at" gorm:"default:now()"`
}
