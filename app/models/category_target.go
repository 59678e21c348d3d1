package models

import "time"

// CategoryTarget is one category's slice of a target's reduction burden for a
// given baseline year. Unless ManualOverride is set, the adjusted percentage
// and target emissions are derived by the allocator and not writable on
// their own. The full set for a baseline year is always replaced as a unit.
type CategoryTarget struct {
	ID                    string          `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	TargetID              string          `json:"target_id" gorm:"not null;index;type:uuid"`
	Category              string          `json:"category" gorm:"not null"`
	Scope                 EmissionScope   `json:"scope" gorm:"not null;default:'all'"`
	BaselineYear          int             `json:"baseline_year" gorm:"not null"`
	BaselineEmissions     float64         `json:"baseline_emissions" gorm:"not null;type:numeric"`
	EmissionPercent       float64         `json:"emission_percent" gorm:"not null;type:numeric"`
	EffortFactor          float64         `json:"effort_factor" gorm:"not null;type:numeric;default:1.0"`
	BaselineTargetPercent float64         `json:"baseline_target_percent" gorm:"not null;type:numeric"`
	AdjustedTargetPercent float64         `json:"adjusted_target_percent" gorm:"not null;type:numeric"`
	TargetEmissions       float64         `json:"target_emissions" gorm:"not null;type:numeric"`
	Feasibility           FeasibilityTier `json:"feasibility" gorm:"not null;default:'medium'"`
	ManualOverride        bool            `json:"manual_override" gorm:"default:false"`
	CreatedAt             time.Time       `json:"created_at" gorm:"default:now()"`
	UpdatedAt             time.Time       `json:"updated_at" gorm:"default:now()"`
}
