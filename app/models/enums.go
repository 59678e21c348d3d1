package models

// TargetType defines the kinds of reduction commitments an organization can declare.
type TargetType string

const (
	NearTermTarget           TargetType = "near-term"
	NetZeroTarget            TargetType = "net-zero"
	RenewableEnergyTarget    TargetType = "renewable-energy"
	SupplierEngagementTarget TargetType = "supplier-engagement"
)

// TargetStatus defines the lifecycle status of a target.
type TargetStatus string

const (
	TargetDraft     TargetStatus = "draft"
	TargetSubmitted TargetStatus = "submitted"
	TargetValidated TargetStatus = "validated"
	TargetCommitted TargetStatus = "committed"
	TargetExpired   TargetStatus = "expired"
)

// EmissionScope defines the GHG accounting scope of a measurement or target.
type EmissionScope string

const (
	Scope1    EmissionScope = "scope1"
	Scope2    EmissionScope = "scope2"
	Scope3    EmissionScope = "scope3"
	AllScopes EmissionScope = "all"
)

// PerformanceStatus classifies a period's actual emissions against the trajectory.
type PerformanceStatus string

const (
	StatusExceeding PerformanceStatus = "exceeding"
	StatusOnTrack   PerformanceStatus = "on-track"
	StatusAtRisk    PerformanceStatus = "at-risk"
	StatusOffTrack  PerformanceStatus = "off-track"
)

// FeasibilityTier classifies how achievable a category's allocation is.
type FeasibilityTier string

const (
	FeasibilityHigh   FeasibilityTier = "high"
	FeasibilityMedium FeasibilityTier = "medium"
	FeasibilityLow    FeasibilityTier = "low"
)

// Framework defines the standard ambition frameworks an organization can prefer.
type Framework string

const (
	FrameworkNearTerm15C Framework = "near-term-1.5c"
	FrameworkWellBelow2C Framework = "well-below-2c"
	FrameworkEUFitFor55  Framework = "eu-fit-for-55"
	FrameworkNetZero     Framework = "net-zero"
)

// Granularity defines the reporting period resolution for progress records.
type Granularity string

const (
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
	GranularityYearly    Granularity = "yearly"
)

// EngineEventType defines the events the engine emits for downstream systems.
type EngineEventType string

const (
	EventTargetCreated      EngineEventType = "target_created"
	EventTargetRetired      EngineEventType = "target_retired"
	EventTargetRecalculated EngineEventType = "target_recalculated"
	EventAllocationReplaced EngineEventType = "allocation_replaced"
)
