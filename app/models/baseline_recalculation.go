package models

import "time"

// BaselineRecalculation is the audit record of one baseline roll-forward.
// At most one row exists per (organization, new baseline year); the
// orchestrator checks this before acting, which is what makes the whole
// recalculation idempotent under retry.
type BaselineRecalculation struct {
	ID                string    `json:"id" gorm:"primaryKey;type:uuid"`
	OrganizationID    string    `json:"organization_id" gorm:"not null;index;type:uuid"`
	OldBaselineYear   int       `json:"old_baseline_year" gorm:"not null"`
	NewBaselineYear   int       `json:"new_baseline_year" gorm:"not null"`
	Reason            string    `json:"reason"`
	TargetsUpdated    int       `json:"targets_updated" gorm:"default:0"`
	CategoriesUpdated int       `json:"categories_updated" gorm:"default:0"`
	RecalculatedBy    string    `json:"recalculated_by"`
	CreatedAt         time.Time `json:"created_at" gorm:"default:now()"`
}
