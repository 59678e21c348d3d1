package services

import (
	"log"
	"time"

	"carbonpath/app/models"
)

// How many years back the resolver will look for a complete year with data
// before giving up.
const baselineLookbackYears = 10

// ResolveBaseline determines the baseline year and emissions for an
// organization's targets. An explicitly configured year always wins;
// otherwise the most recent complete calendar year with data is used. The
// current year is never picked, however much data it has: it is not complete.
// With no data anywhere the resolver falls back to (current−1, 0) and leaves
// the decision to defer target creation to the caller. Totals only count the
// scopes the coverage and the organization's scope-inclusion flags allow.
func ResolveBaseline(src EmissionsSource, org *models.Organization, coverage models.EmissionScope, now time.Time) (int, float64, error) {
	scopes := EffectiveScopes(org, coverage)

	if org.BaselineYear != nil {
		total, err := YearTotal(src, org.ID, scopes, *org.BaselineYear)
		if err != nil {
			return 0, 0, err
		}
		return *org.BaselineYear, total, nil
	}

	currentYear := now.Year()
	for year := currentYear - 1; year >= currentYear-baselineLookbackYears; year-- {
		total, err := YearTotal(src, org.ID, scopes, year)
		if err != nil {
			return 0, 0, err
		}
		if total > 0 {
			return year, total, nil
		}
	}

	log.Printf("No baseline data found for organization %s in the last %d years", org.ID, baselineLookbackYears)
	return currentYear - 1, 0, nil
}

// ResolveBaselineForYear returns an organization's total for one specific
// candidate year, used when the orchestrator rolls the baseline forward.
func ResolveBaselineForYear(src EmissionsSource, org *models.Organization, coverage models.EmissionScope, year int) (float64, error) {
	return YearTotal(src, org.ID, EffectiveScopes(org, coverage), year)
}
