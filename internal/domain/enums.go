package domain

type DurationSource string

const (
	DurationExplicit  DurationSource = "explicit"
	DurationAmbiguous DurationSource = "ambiguous"
	DurationMissing   DurationSource = "missing"
)

// ValidDurationSources is the canonical set of accepted duration source strings.
var ValidDurationSources = map[DurationSource]bool{
	DurationExplicit: true, DurationAmbiguous: true, DurationMissing: true,
}

type Intent string

const (
	IntentDone    Intent = "done"
	IntentPlanned Intent = "planned"
)

// ValidIntents is the canonical set of accepted intent strings.
var ValidIntents = map[Intent]bool{
	IntentDone: true, IntentPlanned: true,
}

type Category string

const (
	CategoryPlanning      Category = "planning"
	CategoryDesign        Category = "design"
	CategoryDevelopment   Category = "development"
	CategoryRevision      Category = "revision"
	CategoryMeeting       Category = "meeting"
	CategoryCommunication Category = "communication"
	CategoryResearch      Category = "research"
	CategoryAdmin         Category = "admin"
	CategoryOther         Category = "other"
)

// ValidCategories is the canonical set of accepted category strings.
var ValidCategories = map[Category]bool{
	CategoryPlanning: true, CategoryDesign: true, CategoryDevelopment: true,
	CategoryRevision: true, CategoryMeeting: true, CategoryCommunication: true,
	CategoryResearch: true, CategoryAdmin: true, CategoryOther: true,
}

// MatchSource records which matcher pass resolved a project reference.
type MatchSource string

const (
	MatchAlias     MatchSource = "alias"
	MatchName      MatchSource = "name"
	MatchClient    MatchSource = "client"
	MatchPreferred MatchSource = "preferred"
	MatchNone      MatchSource = "none"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectPaused   ProjectStatus = "paused"
	ProjectDone     ProjectStatus = "done"
	ProjectArchived ProjectStatus = "archived"
)

type CostType string

const (
	CostFixed       CostType = "fixed"
	CostPlatformFee CostType = "platform_fee"
	CostTax         CostType = "tax"
)

// ValidCostTypes is the canonical set of accepted cost type strings.
var ValidCostTypes = map[CostType]bool{
	CostFixed: true, CostPlatformFee: true, CostTax: true,
}

type ScopeTrigger string

const (
	ScopeRule1 ScopeTrigger = "scope_rule1"
	ScopeRule2 ScopeTrigger = "scope_rule2"
	ScopeRule3 ScopeTrigger = "scope_rule3"
	ScopeRule4 ScopeTrigger = "scope_rule4"
)

type AlertStatus string

const (
	AlertActive    AlertStatus = "active"
	AlertDismissed AlertStatus = "dismissed"
)

type FlagType string

const (
	FlagWeekendWork FlagType = "weekend_work"
	FlagLateNight   FlagType = "late_night"
	FlagLongSession FlagType = "long_session"
	FlagBackdated   FlagType = "backdated"
	FlagRoundNumber FlagType = "round_number"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)
