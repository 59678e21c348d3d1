package services

import (
	"testing"
	"time"

	"carbonpath/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBaselineExplicitYearWins(t *testing.T) {
	year := 2019
	org := &models.Organization{ID: "org-1", BaselineYear: &year}
	src := &fakeEmissionsSource{yearTotals: map[int]float64{2019: 850, 2023: 1200}}

	got, emissions, err := ResolveBaseline(src, org, models.AllScopes, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2019, got)
	assert.InDelta(t, 850, emissions, 1e-9)
}

func TestResolveBaselineFallsBackToLatestCompleteYear(t *testing.T) {
	org := &models.Organization{ID: "org-1"}
	// Data exists for the current year and 2022; the current year must never
	// be picked, and 2024/2023 are empty.
	src := &fakeEmissionsSource{yearTotals: map[int]float64{2025: 999, 2022: 1100}}

	got, emissions, err := ResolveBaseline(src, org, models.AllScopes, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2022, got)
	assert.InDelta(t, 1100, emissions, 1e-9)
}

func TestResolveBaselinePrefersMostRecentCompleteYear(t *testing.T) {
	org := &models.Organization{ID: "org-1"}
	src := &fakeEmissionsSource{yearTotals: map[int]float64{2024: 900, 2022: 1100}}

	got, emissions, err := ResolveBaseline(src, org, models.AllScopes, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2024, got)
	assert.InDelta(t, 900, emissions, 1e-9)
}

func TestResolveBaselineDefaultsWhenNoData(t *testing.T) {
	org := &models.Organization{ID: "org-1"}
	src := &fakeEmissionsSource{yearTotals: map[int]float64{}}

	got, emissions, err := ResolveBaseline(src, org, models.AllScopes, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2024, got, "defaults to the year before the current one")
	assert.Zero(t, emissions)
}

func TestDefaultReductionPercent(t *testing.T) {
	cases := []struct {
		framework models.Framework
		want      float64
	}{
		{models.FrameworkNearTerm15C, 42},
		{models.FrameworkWellBelow2C, 25},
		{models.FrameworkEUFitFor55, 55},
		{models.FrameworkNetZero, 90},
		{models.Framework("unknown"), 42},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, DefaultReductionPercent(tc.framework), 1e-9, "framework %s", tc.framework)
	}
}

func TestShouldRollForward(t *testing.T) {
	cases := []struct {
		name            string
		currentBaseline int
		candidate       int
		hasData         bool
		alreadyRecorded bool
		want            bool
	}{
		{"newer year with data", 2022, 2024, true, false, true},
		{"candidate equals baseline", 2024, 2024, true, false, false},
		{"candidate older than baseline", 2024, 2023, true, false, false},
		{"no data", 2022, 2024, false, false, false},
		{"already recorded", 2022, 2024, true, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ShouldRollForward(tc.currentBaseline, tc.candidate, tc.hasData, tc.alreadyRecorded)
			assert.Equal(t, tc.want, got)
		})
	}
}
