package services

import (
	"testing"
	"time"

	"carbonpath/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmissionsSource serves canned totals keyed by the period's start year,
// or per category when one is requested, and records the scope filters it was
// queried with.
type fakeEmissionsSource struct {
	yearTotals         map[int]float64
	categoryYearTotals map[string]map[int]float64
	categoryTotals     map[string]float64
	queriedScopes      [][]models.EmissionScope
}

func (f *fakeEmissionsSource) TotalEmissions(orgID, category string, scopes []models.EmissionScope, periodStart, periodEnd time.Time) (float64, error) {
	f.queriedScopes = append(f.queriedScopes, scopes)
	if category != "" {
		return f.categoryYearTotals[category][periodStart.Year()], nil
	}
	return f.yearTotals[periodStart.Year()], nil
}

func (f *fakeEmissionsSource) CategoryTotals(orgID string, scopes []models.EmissionScope, periodStart, periodEnd time.Time) (map[string]float64, error) {
	f.queriedScopes = append(f.queriedScopes, scopes)
	return f.categoryTotals, nil
}

func TestClassifyPerformance(t *testing.T) {
	const required = 790.0

	cases := []struct {
		name   string
		actual float64
		want   models.PerformanceStatus
	}{
		{"well below required", required * 0.80, models.StatusExceeding},
		{"spec boundary 0.949", required * 0.949, models.StatusExceeding},
		{"exactly 95 percent", required * 0.95, models.StatusExceeding},
		{"just above 95 percent", required * 0.951, models.StatusOnTrack},
		{"exactly required", required, models.StatusOnTrack},
		{"just above required", required * 1.001, models.StatusAtRisk},
		{"exactly 105 percent", required * 1.05, models.StatusAtRisk},
		{"spec boundary 1.051", required * 1.051, models.StatusOffTrack},
		{"far above required", required * 1.50, models.StatusOffTrack},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyPerformance(tc.actual, required))
		})
	}
}

func TestPeriodAsOf(t *testing.T) {
	month := 6
	quarter := 2

	cases := []struct {
		name   string
		period Period
		want   float64
	}{
		{"yearly", Period{Year: 2026}, 2026},
		{"monthly", Period{Year: 2026, Month: &month}, 2026.5},
		{"quarterly", Period{Year: 2026, Quarter: &quarter}, 2026.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.period.AsOf(), 1e-9)
		})
	}
}

func TestPeriodBounds(t *testing.T) {
	month := 2
	quarter := 4

	start, end := Period{Year: 2026}.Bounds()
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)

	start, end = Period{Year: 2024, Month: &month}.Bounds()
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, 29, Period{Year: 2024, Month: &month}.Days(), "February 2024 is a leap month")

	start, end = Period{Year: 2026, Quarter: &quarter}.Bounds()
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriodValidate(t *testing.T) {
	month := 6
	quarter := 2
	badMonth := 13
	badQuarter := 5

	assert.NoError(t, Period{Year: 2026}.Validate())
	assert.NoError(t, Period{Year: 2026, Month: &month}.Validate())
	assert.NoError(t, Period{Year: 2026, Quarter: &quarter}.Validate())
	assert.ErrorIs(t, Period{Year: 2026, Month: &month, Quarter: &quarter}.Validate(), ErrValidation)
	assert.ErrorIs(t, Period{Year: 2026, Month: &badMonth}.Validate(), ErrValidation)
	assert.ErrorIs(t, Period{Year: 2026, Quarter: &badQuarter}.Validate(), ErrValidation)
}

func TestCoverageScore(t *testing.T) {
	assert.InDelta(t, 1.0, CoverageScore(365, 365), 1e-9)
	assert.InDelta(t, 0.5, CoverageScore(183, 366), 1e-9)
	assert.InDelta(t, 0.0, CoverageScore(0, 365), 1e-9)
	assert.InDelta(t, 0.0, CoverageScore(10, 0), 1e-9)
	assert.InDelta(t, 1.0, CoverageScore(400, 365), 1e-9, "coverage never exceeds 1")
}

func TestEvaluateProgressExampleScenario(t *testing.T) {
	// 2022 baseline of 1000 tCO2e, 42% by 2030. In 2026 the trajectory
	// requires 790; an actual of 800 is a gap of 10 and at-risk.
	target := &models.Target{
		ID:                "t-1",
		OrganizationID:    "org-1",
		BaselineYear:      2022,
		BaselineEmissions: 1000,
		ReductionPercent:  42,
		TargetYear:        2030,
		ScopeCoverage:     models.AllScopes,
	}
	src := &fakeEmissionsSource{yearTotals: map[int]float64{2026: 800}}
	org := &models.Organization{ID: "org-1", IncludeScope1: true, IncludeScope2: true}

	record, err := EvaluateProgress(src, org, target, Period{Year: 2026}, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), 0.9)
	require.NoError(t, err)

	assert.InDelta(t, 790, record.RequiredEmissions, 1e-9)
	assert.InDelta(t, 800, record.ActualEmissions, 1e-9)
	assert.InDelta(t, 10, record.Gap, 1e-9)
	assert.Equal(t, models.StatusAtRisk, record.Status)
	assert.InDelta(t, 0.9, record.DataQualityScore, 1e-9)
	assert.Equal(t, 2026, record.Year)
	assert.Nil(t, record.Month)
	assert.Nil(t, record.Quarter)
}

func TestEvaluateProgressNoDataIsNotAnError(t *testing.T) {
	target := &models.Target{
		ID:                "t-1",
		OrganizationID:    "org-1",
		BaselineYear:      2022,
		BaselineEmissions: 1000,
		ReductionPercent:  42,
		TargetYear:        2030,
	}
	src := &fakeEmissionsSource{yearTotals: map[int]float64{}}
	org := &models.Organization{ID: "org-1", IncludeScope1: true, IncludeScope2: true}

	record, err := EvaluateProgress(src, org, target, Period{Year: 2025}, time.Now(), 0)
	require.NoError(t, err)
	assert.Zero(t, record.ActualEmissions)
	assert.Equal(t, models.StatusExceeding, record.Status, "zero actual sits below any positive trajectory")
}

func TestEvaluateProgressRejectsInvalidPeriod(t *testing.T) {
	target := &models.Target{BaselineYear: 2022, TargetYear: 2030, ReductionPercent: 42}
	org := &models.Organization{ID: "org-1", IncludeScope1: true, IncludeScope2: true}
	month, quarter := 3, 1
	_, err := EvaluateProgress(&fakeEmissionsSource{}, org, target,
		Period{Year: 2025, Month: &month, Quarter: &quarter}, time.Now(), 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEvaluateProgressHonorsScopeInclusion(t *testing.T) {
	// Scope 3 is excluded for this organization, so an "all" coverage target
	// must only query scopes 1 and 2.
	target := &models.Target{
		ID:                "t-1",
		OrganizationID:    "org-1",
		BaselineYear:      2022,
		BaselineEmissions: 1000,
		ReductionPercent:  42,
		TargetYear:        2030,
		ScopeCoverage:     models.AllScopes,
	}
	org := &models.Organization{ID: "org-1", IncludeScope1: true, IncludeScope2: true, IncludeScope3: false}
	src := &fakeEmissionsSource{yearTotals: map[int]float64{2026: 800}}

	_, err := EvaluateProgress(src, org, target, Period{Year: 2026}, time.Now(), 1)
	require.NoError(t, err)
	require.Len(t, src.queriedScopes, 1)
	assert.Equal(t, []models.EmissionScope{models.Scope1, models.Scope2}, src.queriedScopes[0])

	// A specific coverage wins over the flags outright.
	target.ScopeCoverage = models.Scope3
	_, err = EvaluateProgress(src, org, target, Period{Year: 2026}, time.Now(), 1)
	require.NoError(t, err)
	assert.Equal(t, []models.EmissionScope{models.Scope3}, src.queriedScopes[1])
}

func TestEvaluateCategoryProgress(t *testing.T) {
	// Energy holds 600 of the 1000 t baseline with an adjusted 30% by 2030;
	// halfway through the span it must be at 510, and 520 actual is at-risk.
	target := &models.Target{
		ID:                "t-1",
		OrganizationID:    "org-1",
		BaselineYear:      2022,
		BaselineEmissions: 1000,
		ReductionPercent:  42,
		TargetYear:        2030,
		ScopeCoverage:     models.AllScopes,
	}
	ct := &models.CategoryTarget{
		ID:                    "ct-energy",
		TargetID:              "t-1",
		Category:              "Energy",
		Scope:                 models.AllScopes,
		BaselineYear:          2022,
		BaselineEmissions:     600,
		AdjustedTargetPercent: 30,
	}
	org := &models.Organization{ID: "org-1", IncludeScope1: true, IncludeScope2: true}
	src := &fakeEmissionsSource{
		yearTotals:         map[int]float64{2026: 800},
		categoryYearTotals: map[string]map[int]float64{"Energy": {2026: 520}},
	}

	record, err := EvaluateCategoryProgress(src, org, target, ct, Period{Year: 2026}, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), 1)
	require.NoError(t, err)

	require.NotNil(t, record.CategoryTargetID)
	assert.Equal(t, "ct-energy", *record.CategoryTargetID)
	assert.Equal(t, "t-1", record.TargetID)
	assert.InDelta(t, 510, record.RequiredEmissions, 1e-9)
	assert.InDelta(t, 520, record.ActualEmissions, 1e-9)
	assert.InDelta(t, 10, record.Gap, 1e-9)
	assert.Equal(t, models.StatusAtRisk, record.Status)
}

func TestEvaluateCategoryProgressRejectsInvalidPeriod(t *testing.T) {
	target := &models.Target{ID: "t-1", OrganizationID: "org-1", BaselineYear: 2022, TargetYear: 2030}
	ct := &models.CategoryTarget{ID: "ct-1", Category: "Energy", BaselineYear: 2022, BaselineEmissions: 600}
	org := &models.Organization{ID: "org-1", IncludeScope1: true}
	badMonth := 0
	_, err := EvaluateCategoryProgress(&fakeEmissionsSource{}, org, target, ct,
		Period{Year: 2025, Month: &badMonth}, time.Now(), 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCorrectActual(t *testing.T) {
	record := &models.ProgressRecord{
		ActualEmissions:   800,
		RequiredEmissions: 790,
		Gap:               10,
		Status:            models.StatusAtRisk,
	}

	CorrectActual(record, 700)
	assert.InDelta(t, 700, record.ActualEmissions, 1e-9)
	assert.InDelta(t, -90, record.Gap, 1e-9)
	assert.Equal(t, models.StatusExceeding, record.Status)
}
