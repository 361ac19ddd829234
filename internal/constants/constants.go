package constants

// Session / context keys
const (
	ContextKeyUserID  = "user_id"
	SessionCookieName = "admin_session"
)

// Pagination bounds
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Password length bounds. The upper bound is the bcrypt input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)
