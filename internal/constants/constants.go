package constants

// Context and session keys
const (
	ContextKeyUserID  = "user_id"
	SessionCookieName = "workviyo_session"
)

// Validation limits
const (
	MinPasswordLength = 6
)

// Sort directives accepted by GET /tasks
const (
	PrioritySortLowHigh = "Low-High"
	PrioritySortHighLow = "High-Low"
	DateSortNewestFirst = "Newest-Oldest"
	DateSortOldestFirst = "Oldest-Newest"
)

// Report settings
const (
	ReportDateLayout  = "02-01-2006"
	ReportWindowHours = 7 * 24
)
