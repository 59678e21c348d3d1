package services

import (
	"testing"

	"carbonpath/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredEmissionsEndpoints(t *testing.T) {
	cases := []struct {
		name         string
		baseline     float64
		baselineYear int
		reductionPct float64
		targetYear   int
	}{
		{"standard near-term", 1000, 2022, 42, 2030},
		{"small baseline", 12.5, 2020, 25, 2027},
		{"full reduction", 5000, 2023, 100, 2033},
		{"minimal reduction", 800, 2021, 0.5, 2031},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			atBaseline := RequiredEmissions(tc.baseline, tc.baselineYear, tc.reductionPct, tc.targetYear, tc.baselineYear)
			assert.InDelta(t, tc.baseline, atBaseline, 1e-9, "no reduction is required at the baseline year")

			atTarget := RequiredEmissions(tc.baseline, tc.baselineYear, tc.reductionPct, tc.targetYear, tc.targetYear)
			assert.InDelta(t, tc.baseline*(1-tc.reductionPct/100), atTarget, 1e-9,
				"the target year must land exactly on the target emissions")
		})
	}
}

func TestRequiredEmissionsExampleScenario(t *testing.T) {
	// baseline 1000 tCO2e in 2022, 42% by 2030: 4 of 8 years elapsed in 2026.
	required := RequiredEmissions(1000, 2022, 42, 2030, 2026)
	assert.InDelta(t, 790, required, 1e-9)
}

func TestRequiredEmissionsMonotonicity(t *testing.T) {
	previous := RequiredEmissions(1000, 2022, 42, 2030, 2022)
	for year := 2023; year <= 2030; year++ {
		current := RequiredEmissions(1000, 2022, 42, 2030, year)
		assert.LessOrEqual(t, current, previous, "trajectory must not increase between %d and %d", year-1, year)
		previous = current
	}
}

func TestRequiredEmissionsExtrapolatesPastTargetYear(t *testing.T) {
	// No clamping: after the deadline the path keeps falling, exposing the
	// degree of overshoot.
	atTarget := RequiredEmissions(1000, 2022, 42, 2030, 2030)
	after := RequiredEmissions(1000, 2022, 42, 2030, 2034)
	assert.Less(t, after, atTarget)
	assert.InDelta(t, 1000*(1-0.42*12.0/8.0), after, 1e-9)
}

func TestRequiredEmissionsAtFractionalYears(t *testing.T) {
	mid := RequiredEmissionsAt(1000, 2022, 42, 2030, 2026.5)
	assert.InDelta(t, 1000*(1-0.42*4.5/8), mid, 1e-9)
}

func TestTargetTrajectory(t *testing.T) {
	target := &models.Target{
		BaselineYear:      2022,
		BaselineEmissions: 1000,
		ReductionPercent:  42,
		TargetYear:        2030,
	}

	points := TargetTrajectory(target, 2022, 2030)
	require.Len(t, points, 9)
	assert.Equal(t, 2022, points[0].Year)
	assert.InDelta(t, 1000, points[0].Required, 1e-9)
	assert.InDelta(t, 580, points[8].Required, 1e-9)
}

func TestValidateTarget(t *testing.T) {
	valid := func() *models.Target {
		return &models.Target{
			TargetType:        models.NearTermTarget,
			BaselineYear:      2022,
			BaselineEmissions: 1000,
			TargetYear:        2030,
			ReductionPercent:  42,
		}
	}

	cases := []struct {
		name    string
		mutate  func(*models.Target)
		wantErr bool
	}{
		{"valid near-term", func(t *models.Target) {}, false},
		{"zero reduction", func(t *models.Target) { t.ReductionPercent = 0 }, true},
		{"negative reduction", func(t *models.Target) { t.ReductionPercent = -5 }, true},
		{"reduction above 100", func(t *models.Target) { t.ReductionPercent = 101 }, true},
		{"full reduction allowed", func(t *models.Target) { t.ReductionPercent = 100 }, false},
		{"target year equals baseline year", func(t *models.Target) { t.TargetYear = 2022 }, true},
		{"target year before baseline year", func(t *models.Target) { t.TargetYear = 2020 }, true},
		{"negative baseline emissions", func(t *models.Target) { t.BaselineEmissions = -1 }, true},
		{"near-term span too short", func(t *models.Target) { t.TargetYear = 2026 }, true},
		{"near-term span at lower bound", func(t *models.Target) { t.TargetYear = 2027 }, false},
		{"near-term span at upper bound", func(t *models.Target) { t.TargetYear = 2032 }, false},
		{"near-term span too long", func(t *models.Target) { t.TargetYear = 2033 }, true},
		{"net-zero span unconstrained", func(t *models.Target) {
			t.TargetType = models.NetZeroTarget
			t.TargetYear = 2050
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := valid()
			tc.mutate(target)
			err := ValidateTarget(target)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
