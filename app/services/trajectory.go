package services

import (
	"fmt"

	"carbonpath/app/models"
)

const (
	minNearTermSpan = 5
	maxNearTermSpan = 10
)

// RequiredEmissions returns the emissions a target demands at asOfYear on the
// linear decarbonization path from baseline to target year.
//
//	required = baseline × (1 − (r/100) × (asOf − baseYear) / (targetYear − baseYear))
//
// At the baseline year this is the baseline itself; at the target year it is
// the target emissions exactly. No clamping is applied past the target year:
// extrapolation deliberately shows how far past (or short of) the target the
// path runs after the deadline.
func RequiredEmissions(baselineEmissions float64, baselineYear int, reductionPct float64, targetYear int, asOfYear int) float64 {
	return RequiredEmissionsAt(baselineEmissions, baselineYear, reductionPct, targetYear, float64(asOfYear))
}

// RequiredEmissionsAt is the fractional-year form, used for within-year
// interpolation of monthly and quarterly reporting periods.
func RequiredEmissionsAt(baselineEmissions float64, baselineYear int, reductionPct float64, targetYear int, asOf float64) float64 {
	span := float64(targetYear - baselineYear)
	elapsed := asOf - float64(baselineYear)
	return baselineEmissions * (1 - (reductionPct/100)*elapsed/span)
}

// TargetTrajectory returns the required-emissions series for a target over
// [fromYear, toYear], one point per year.
func TargetTrajectory(t *models.Target, fromYear, toYear int) []TrajectoryPoint {
	var points []TrajectoryPoint
	for year := fromYear; year <= toYear; year++ {
		points = append(points, TrajectoryPoint{
			Year:     year,
			Required: RequiredEmissions(t.BaselineEmissions, t.BaselineYear, t.ReductionPercent, t.TargetYear, year),
		})
	}
	return points
}

// TrajectoryPoint is one year on a target's required-emissions path.
type TrajectoryPoint struct {
	Year     int     `json:"year"`
	Required float64 `json:"required_emissions"`
}

// ValidateTarget rejects a target whose parameters would make the trajectory
// undefined or violate the commitment rules. Called before any state change.
func ValidateTarget(t *models.Target) error {
	if t.ReductionPercent <= 0 || t.ReductionPercent > 100 {
		return fmt.Errorf("%w: reduction percent must be in (0,100], got %v", ErrValidation, t.ReductionPercent)
	}
	if t.TargetYear <= t.BaselineYear {
		return fmt.Errorf("%w: target year %d must be after baseline year %d", ErrValidation, t.TargetYear, t.BaselineYear)
	}
	if t.BaselineEmissions < 0 {
		return fmt.Errorf("%w: baseline emissions must be non-negative, got %v", ErrValidation, t.BaselineEmissions)
	}
	if t.TargetType == models.NearTermTarget {
		span := t.SpanYears()
		if span < minNearTermSpan || span > maxNearTermSpan {
			return fmt.Errorf("%w: near-term target span must be %d-%d years, got %d",
				ErrValidation, minNearTermSpan, maxNearTermSpan, span)
		}
	}
	return nil
}
