package common

const (
	// MaxRequestBody limits JSON request bodies for review/shop endpoints.
	MaxRequestBody = 1 << 20
	// RoleAdmin is the role claim value required on admin routes.
	RoleAdmin = "admin"
)
