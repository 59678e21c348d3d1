package models

import "time"

// Target represents an organization's declared emissions-reduction commitment:
// cut emissions by ReductionPercent between BaselineYear and TargetYear.
// TargetEmissions is always derived from the baseline and reduction inputs,
// never set independently.
type Target struct {
	ID                string        `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	OrganizationID    string        `json:"organization_id" gorm:"not null;index;type:uuid"`
	TargetType        TargetType    `json:"target_type" gorm:"not null"`
	ScopeCoverage     EmissionScope `json:"scope_coverage" gorm:"not null;default:'all'"`
	BaselineYear      int           `json:"baseline_year" gorm:"not null"`
	BaselineEmissions float64       `json:"baseline_emissions" gorm:"not null;type:numeric"`
	TargetYear        int           `json:"target_year" gorm:"not null"`
	ReductionPercent  float64       `json:"reduction_percent" gorm:"not null;type:numeric"`
	TargetEmissions   float64       `json:"target_emissions" gorm:"not null;type:numeric"`
	Status            TargetStatus  `json:"status" gorm:"not null;default:'draft'"`
	IsActive          bool          `json:"is_active" gorm:"default:true"`
	CreatedBy         string        `json:"created_by,omitempty"`
	CreatedAt         time.Time     `json:"created_at" gorm:"default:now()"`
	UpdatedAt         time.Time     `json:"updated_at" gorm:"default:now()"`

	// Relationships
	CategoryTargets []CategoryTarget `json:"category_targets,omitempty" gorm:"foreignKey:TargetID;references:ID"`
	ProgressRecords []ProgressRecord `json:"progress_records,omitempty" gorm:"foreignKey:TargetID;references:ID"`
}

// RecomputeDerived re-derives target emissions from the baseline and
// reduction inputs. Called on every write that touches either.
func (t *Target) RecomputeDerived() {
	t.TargetEmissions = t.BaselineEmissions * (1 - t.ReductionPercent/100)
}

// SpanYears returns the number of years between baseline and target year.
func (t *Target) SpanYears() int {
	return t.TargetYear - t.BaselineYear
}

// Retire deactivates the target without deleting it, preserving its
// historical trajectory.
func (t *Target) Retire() {
	t.IsActive = false
	t.Status = TargetExpired
}
