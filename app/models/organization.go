package models

import "time"

// Organization owns targets and supplies the engine's configuration:
// preferred framework, an optional explicit baseline year, and which
// scopes count towards its totals.
type Organization struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name               string     `json:"name" gorm:"not null"`
	PreferredFramework Framework  `json:"preferred_framework" gorm:"default:'near-term-1.5c'"`
	BaselineYear       *int       `json:"baseline_year,omitempty"`
	IncludeScope1      bool       `json:"include_scope1" gorm:"default:true"`
	IncludeScope2      bool       `json:"include_scope2" gorm:"default:true"`
	IncludeScope3      bool       `json:"include_scope3" gorm:"default:false"`
	IsActive           bool       `json:"is_active" gorm:"default:true"`
	CreatedAt          time.Time  `json:"created_at" gorm:"default:now()"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"default:now()"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// IncludedScopes returns the scopes counted in this organization's totals.
func (o *Organization) IncludedScopes() []EmissionScope {
	var scopes []EmissionScope
	if o.IncludeScope1 {
		scopes = append(scopes, Scope1)
	}
	if o.IncludeScope2 {
		scopes = append(scopes, Scope2)
	}
	if o.IncludeScope3 {
		scopes = append(scopes, Scope3)
	}
	return scopes
}
