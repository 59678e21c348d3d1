package models

import "time"

// EmissionMeasurement is one dated, categorized emission record fed in by
// upstream data-entry systems. The period is half-open: [PeriodStart, PeriodEnd).
// The engine reads these; it never owns or validates their quality.
type EmissionMeasurement struct {
	ID             string        `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	OrganizationID string        `json:"organization_id" gorm:"not null;index;type:uuid"`
	Category       string        `json:"category" gorm:"not null;index"`
	Scope          EmissionScope `json:"scope" gorm:"not null"`
	PeriodStart    time.Time     `json:"period_start" gorm:"not null;type:date"`
	PeriodEnd      time.Time     `json:"period_end" gorm:"not null;type:date"`
	CO2eTonnes     float64       `json:"co2e_tonnes" gorm:"not null;type:numeric"`
	DataSource     string        `json:"data_source,omitempty"`
	CreatedAt      time.Time     `json:"created_at" gorm:"default:now()"`
}
