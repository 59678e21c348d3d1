package services

import (
	"fmt"
	"log"
	"math"
	"sort"

	"carbonpath/app/models"
)

const (
	minEffortFactor = 0.5
	maxEffortFactor = 2.0

	// Category emission percents must account for the whole organization
	// baseline within this tolerance, or the upstream category classification
	// is broken and the allocation refuses to persist.
	partitionTolerancePct = 0.5
)

// AllocateCategories distributes a target's reduction burden across emission
// categories. Each category starts from its proportional share of the
// organization baseline, is reweighted by its effort factor, and the whole
// set is then renormalized by a single scale factor so the weighted absolute
// reduction still equals the organization's declared target.
//
// The returned set is complete and deterministic: identical inputs produce an
// identical set, and the caller swaps it in atomically via
// database.ReplaceCategoryTargets.
func AllocateCategories(target *models.Target, categoryBaselines map[string]float64, effortFactors map[string]float64) ([]models.CategoryTarget, error) {
	if len(categoryBaselines) == 0 {
		return nil, fmt.Errorf("%w: no category baselines supplied", ErrValidation)
	}
	for category, factor := range effortFactors {
		if factor < minEffortFactor || factor > maxEffortFactor {
			return nil, fmt.Errorf("%w: effort factor for %q must be in [%.1f,%.1f], got %v",
				ErrValidation, category, minEffortFactor, maxEffortFactor, factor)
		}
	}
	if target.BaselineEmissions <= 0 {
		return nil, fmt.Errorf("%w: target has no baseline emissions to allocate", ErrValidation)
	}

	categories := make([]string, 0, len(categoryBaselines))
	for category := range categoryBaselines {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		bi, bj := categoryBaselines[categories[i]], categoryBaselines[categories[j]]
		if bi != bj {
			return bi > bj
		}
		return categories[i] < categories[j]
	})

	// Category shares are measured against the target's own baseline, not the
	// category sum: a shortfall or overshoot there means the categories do
	// not partition the organization total.
	percentSum := 0.0
	for _, category := range categories {
		percentSum += categoryBaselines[category] / target.BaselineEmissions * 100
	}
	if math.Abs(percentSum-100) > partitionTolerancePct {
		log.Printf("Allocation refused for target %s: category emission percents sum to %.3f%% (baselines=%v, org baseline=%.3f)",
			target.ID, percentSum, categoryBaselines, target.BaselineEmissions)
		return nil, fmt.Errorf("%w: category emission percents sum to %.3f%%, want 100±%.1f",
			ErrInconsistentAllocation, percentSum, partitionTolerancePct)
	}

	set := make([]models.CategoryTarget, 0, len(categories))
	weightedReduction := 0.0
	for _, category := range categories {
		baseline := categoryBaselines[category]
		factor, ok := effortFactors[category]
		if !ok {
			factor = 1.0
		}

		emissionPct := baseline / target.BaselineEmissions * 100
		// The partition tolerance lets a lone category compute slightly past
		// 100%; the stored share is capped so it stays a valid percent.
		if emissionPct > 100 {
			emissionPct = 100
		}
		baselineTargetPct := target.ReductionPercent * emissionPct / 100
		adjustedPct := baselineTargetPct * factor
		weightedReduction += baseline * adjustedPct / 100

		set = append(set, models.CategoryTarget{
			TargetID:              target.ID,
			Category:              category,
			Scope:                 target.ScopeCoverage,
			BaselineYear:          target.BaselineYear,
			BaselineEmissions:     baseline,
			EmissionPercent:       emissionPct,
			EffortFactor:          factor,
			BaselineTargetPercent: baselineTargetPct,
			AdjustedTargetPercent: adjustedPct,
			Feasibility:           feasibilityTier(factor),
		})
	}

	// Renormalize: one scale factor brings the weighted absolute reduction
	// back to the organization's required total.
	requiredReduction := target.BaselineEmissions * target.ReductionPercent / 100
	if weightedReduction > 0 {
		scale := requiredReduction / weightedReduction
		for i := range set {
			set[i].AdjustedTargetPercent *= scale
		}
	}

	for i := range set {
		ct := &set[i]
		ct.TargetEmissions = ct.BaselineEmissions * (1 - ct.AdjustedTargetPercent/100)
	}

	return set, nil
}

func feasibilityTier(effortFactor float64) models.FeasibilityTier {
	switch {
	case effortFactor <= 0.8:
		return models.FeasibilityHigh
	case effortFactor <= 1.2:
		return models.FeasibilityMedium
	default:
		return models.FeasibilityLow
	}
}
