package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetRecomputeDerived(t *testing.T) {
	target := &Target{BaselineEmissions: 1000, ReductionPercent: 42}
	target.RecomputeDerived()
	assert.InDelta(t, 580, target.TargetEmissions, 1e-9)

	// Derived fields always follow their inputs.
	target.BaselineEmissions = 2000
	target.RecomputeDerived()
	assert.InDelta(t, 1160, target.TargetEmissions, 1e-9)
}

func TestTargetSpanYears(t *testing.T) {
	target := &Target{BaselineYear: 2022, TargetYear: 2030}
	assert.Equal(t, 8, target.SpanYears())
}

func TestTargetRetire(t *testing.T) {
	target := &Target{IsActive: true, Status: TargetCommitted}
	target.Retire()
	assert.False(t, target.IsActive)
	assert.Equal(t, TargetExpired, target.Status)
}

func TestOrganizationIncludedScopes(t *testing.T) {
	org := &Organization{IncludeScope1: true, IncludeScope2: true}
	assert.Equal(t, []EmissionScope{Scope1, Scope2}, org.IncludedScopes())

	org.IncludeScope3 = true
	assert.Len(t, org.IncludedScopes(), 3)
}
