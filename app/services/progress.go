package services

import (
	"fmt"
	"math"
	"time"

	"carbonpath/app/models"
)

// Classification thresholds are fixed design constants, not configurable per
// organization, so statuses stay comparable across organizations.
const (
	exceedingThreshold = 0.95
	atRiskThreshold    = 1.05
)

// ClassifyPerformance grades actual emissions against the trajectory's
// required value for the same period.
func ClassifyPerformance(actual, required float64) models.PerformanceStatus {
	switch {
	case actual <= required*exceedingThreshold:
		return models.StatusExceeding
	case actual <= required:
		return models.StatusOnTrack
	case actual <= required*atRiskThreshold:
		return models.StatusAtRisk
	default:
		return models.StatusOffTrack
	}
}

// Period identifies one reporting period: a year, optionally narrowed to a
// month or quarter. Month and quarter are mutually exclusive.
type Period struct {
	Year    int  `json:"year"`
	Month   *int `json:"month,omitempty"`
	Quarter *int `json:"quarter,omitempty"`
}

func (p Period) Validate() error {
	if p.Month != nil && p.Quarter != nil {
		return fmt.Errorf("%w: period cannot be both monthly and quarterly", ErrValidation)
	}
	if p.Month != nil && (*p.Month < 1 || *p.Month > 12) {
		return fmt.Errorf("%w: month must be 1-12, got %d", ErrValidation, *p.Month)
	}
	if p.Quarter != nil && (*p.Quarter < 1 || *p.Quarter > 4) {
		return fmt.Errorf("%w: quarter must be 1-4, got %d", ErrValidation, *p.Quarter)
	}
	return nil
}

// AsOf returns the point on the trajectory's time axis this period evaluates
// at. Yearly periods use the plain year; monthly and quarterly periods
// interpolate within the year.
func (p Period) AsOf() float64 {
	switch {
	case p.Month != nil:
		return float64(p.Year) + float64(*p.Month)/12
	case p.Quarter != nil:
		return float64(p.Year) + float64(*p.Quarter*3)/12
	default:
		return float64(p.Year)
	}
}

// Bounds returns the half-open measurement window for the period.
func (p Period) Bounds() (time.Time, time.Time) {
	switch {
	case p.Month != nil:
		start := time.Date(p.Year, time.Month(*p.Month), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	case p.Quarter != nil:
		start := time.Date(p.Year, time.Month((*p.Quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 3, 0)
	default:
		return YearBounds(p.Year)
	}
}

// Days returns the number of days the period spans.
func (p Period) Days() int {
	start, end := p.Bounds()
	return int(end.Sub(start).Hours() / 24)
}

// CoverageScore converts measurement day-coverage into a [0,1] data-quality
// score, rounded to two decimals. Zero means no data, which is a normal state.
func CoverageScore(coveredDays, periodDays int) float64 {
	if periodDays <= 0 {
		return 0
	}
	score := float64(coveredDays) / float64(periodDays)
	if score > 1 {
		score = 1
	}
	return math.Round(score*100) / 100
}

// EvaluateProgress compares a target's actual emissions for the period
// against the required trajectory value and produces the progress record.
// Actuals only count the scopes the target's coverage and the organization's
// scope-inclusion flags allow. The caller persists the record (one per series
// slot) and supplies the data-quality score from measurement coverage.
func EvaluateProgress(src EmissionsSource, org *models.Organization, target *models.Target, period Period, reportingDate time.Time, qualityScore float64) (*models.ProgressRecord, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	start, end := period.Bounds()
	actual, err := src.TotalEmissions(target.OrganizationID, "", EffectiveScopes(org, target.ScopeCoverage), start, end)
	if err != nil {
		return nil, err
	}

	required := RequiredEmissionsAt(target.BaselineEmissions, target.BaselineYear,
		target.ReductionPercent, target.TargetYear, period.AsOf())

	return &models.ProgressRecord{
		TargetID:          target.ID,
		Year:              period.Year,
		Month:             period.Month,
		Quarter:           period.Quarter,
		ReportingDate:     reportingDate,
		ActualEmissions:   actual,
		RequiredEmissions: required,
		Gap:               actual - required,
		Status:            ClassifyPerformance(actual, required),
		DataQualityScore:  qualityScore,
	}, nil
}

// EvaluateCategoryProgress evaluates one category's slice of a target for the
// period: actuals are filtered to the category, and the required value comes
// from the category's own baseline and adjusted reduction percent. Category
// records form their own series alongside the target-level one.
func EvaluateCategoryProgress(src EmissionsSource, org *models.Organization, target *models.Target, ct *models.CategoryTarget, period Period, reportingDate time.Time, qualityScore float64) (*models.ProgressRecord, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	start, end := period.Bounds()
	actual, err := src.TotalEmissions(target.OrganizationID, ct.Category, EffectiveScopes(org, ct.Scope), start, end)
	if err != nil {
		return nil, err
	}

	required := RequiredEmissionsAt(ct.BaselineEmissions, ct.BaselineYear,
		ct.AdjustedTargetPercent, target.TargetYear, period.AsOf())

	return &models.ProgressRecord{
		TargetID:          target.ID,
		CategoryTargetID:  &ct.ID,
		Year:              period.Year,
		Month:             period.Month,
		Quarter:           period.Quarter,
		ReportingDate:     reportingDate,
		ActualEmissions:   actual,
		RequiredEmissions: required,
		Gap:               actual - required,
		Status:            ClassifyPerformance(actual, required),
		DataQualityScore:  qualityScore,
	}, nil
}

// CorrectActual replaces an erroneous actual-emissions input on an existing
// record and re-derives the gap and status from it.
func CorrectActual(record *models.ProgressRecord, actual float64) {
	record.ActualEmissions = actual
	record.Gap = actual - record.RequiredEmissions
	record.Status = ClassifyPerformance(actual, record.RequiredEmissions)
}
