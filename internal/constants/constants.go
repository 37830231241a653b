package constants

// Context keys
const (
	ContextKeyMemberID = "member_id"
)

// Authentication
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Validation limits
const (
	MaxNameLength = 50
	MinSlugLength = 2
	MaxSlugLength = 50
	MinCycleWeek  = 1
	MaxCycleWeek  = 52
)
