package models

import "time"

// ProgressRecord is one evaluated reporting period for a target, or for one
// of its category targets when CategoryTargetID is set: actual emissions
// against the required value on the linear trajectory. Monthly and quarterly
// records form independent series and are never merged, and category records
// keep their own series beside the target-level one. Gap and Status are
// derived; the only permitted mutation is a correction of ActualEmissions,
// which re-derives both.
type ProgressRecord struct {
	ID                string            `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	TargetID          string            `json:"target_id" gorm:"not null;index;type:uuid"`
	CategoryTargetID  *string           `json:"category_target_id,omitempty" gorm:"index;type:uuid"`
	Year              int               `json:"year" gorm:"not null"`
	Month             *int              `json:"month,omitempty"`
	Quarter           *int              `json:"quarter,omitempty"`
	ReportingDate     time.Time         `json:"reporting_date" gorm:"not null;type:date"`
	ActualEmissions   float64           `json:"actual_emissions" gorm:"not null;type:numeric"`
	RequiredEmissions float64           `json:"required_emissions" gorm:"not null;type:numeric"`
	Gap               float64           `json:"gap" gorm:"not null;type:numeric"`
	Status            PerformanceStatus `json:"status" gorm:"not null"`
	DataQualityScore  float64           `json:"data_quality_score" gorm:"type:numeric;default:0"`
	CreatedAt         time.Time         `json:"created_at" gorm:"default:now()"`
	UpdatedAt         time.Time         `json:"updated_at" gorm:"default:now()"`
}
