package services

import "errors"

var (
	// ErrValidation covers inputs rejected before any state change:
	// reduction percentage outside (0,100], target year not after baseline
	// year, effort factors outside [0.5,2.0], near-term span outside [5,10].
	ErrValidation = errors.New("validation error")

	// ErrInconsistentAllocation means the category baselines do not partition
	// the organization baseline (emission percents off 100% by more than the
	// tolerance). The allocator refuses to persist such a set.
	ErrInconsistentAllocation = errors.New("inconsistent allocation")

	// ErrNoBaselineData means the resolver found no emissions at all for the
	// candidate baseline year. Absence of data is not a failure of the
	// aggregator, but a target cannot be anchored to an empty year.
	ErrNoBaselineData = errors.New("no baseline data")
)
