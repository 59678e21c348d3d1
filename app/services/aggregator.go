package services

import (
	"database/sql"
	"time"

	"carbonpath/app/database"
	"carbonpath/app/models"
)

// EmissionsSource is the engine's view of the measurement store. Absence of
// data is a normal state: implementations return 0, not an error, when
// nothing matches.
type EmissionsSource interface {
	// TotalEmissions sums co2e tonnes over the half-open period
	// [periodStart, periodEnd), optionally filtered by category and
	// restricted to the given scopes. An empty scope list applies no
	// scope filter.
	TotalEmissions(orgID, category string, scopes []models.EmissionScope, periodStart, periodEnd time.Time) (float64, error)

	// CategoryTotals returns per-category totals over the half-open period.
	CategoryTotals(orgID string, scopes []models.EmissionScope, periodStart, periodEnd time.Time) (map[string]float64, error)
}

// SQLEmissionsSource reads measurements from PostgreSQL.
type SQLEmissionsSource struct {
	DB *sql.DB
}

func (s *SQLEmissionsSource) TotalEmissions(orgID, category string, scopes []models.EmissionScope, periodStart, periodEnd time.Time) (float64, error) {
	return database.SumEmissions(s.DB, orgID, category, scopes, periodStart, periodEnd)
}

func (s *SQLEmissionsSource) CategoryTotals(orgID string, scopes []models.EmissionScope, periodStart, periodEnd time.Time) (map[string]float64, error) {
	return database.CategoryTotals(s.DB, orgID, scopes, periodStart, periodEnd)
}

// EffectiveScopes resolves a scope coverage against the organization's
// scope-inclusion flags: a specific coverage names exactly one scope, while
// "all" means every scope the organization has opted into. Scopes the
// organization excludes never reach an aggregation query.
func EffectiveScopes(org *models.Organization, coverage models.EmissionScope) []models.EmissionScope {
	if coverage != "" && coverage != models.AllScopes {
		return []models.EmissionScope{coverage}
	}
	return org.IncludedScopes()
}

// YearBounds returns the half-open window covering one calendar year.
func YearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// YearTotal sums an organization's emissions for one calendar year.
func YearTotal(src EmissionsSource, orgID string, scopes []models.EmissionScope, year int) (float64, error) {
	start, end := YearBounds(year)
	return src.TotalEmissions(orgID, "", scopes, start, end)
}
