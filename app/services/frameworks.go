package services

import "carbonpath/app/models"

// frameworkDefaultReductions maps each ambition framework to its standard
// reduction percentage, applied when a target is created without an explicit
// reduction. Figures follow the SBTi-style ambition levels.
var frameworkDefaultReductions = map[models.Framework]float64{
	models.FrameworkNearTerm15C: 42,
	models.FrameworkWellBelow2C: 25,
	models.FrameworkEUFitFor55:  55,
	models.FrameworkNetZero:     90,
}

// DefaultReductionPercent returns the framework's standard reduction
// percentage, falling back to the 1.5°C-aligned figure for unknown values.
func DefaultReductionPercent(framework models.Framework) float64 {
	if pct, ok := frameworkDefaultReductions[framework]; ok {
		return pct
	}
	return frameworkDefaultReductions[models.FrameworkNearTerm15C]
}
