package contextkeys

type ContextKey string

const (
	// Gin context keys set by the auth middleware.
	UserIDKey ContextKey = "userID"
	RoleKey   ContextKey = "role"
)
