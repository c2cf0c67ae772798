package server

// Route path constants
// All loopback routes are defined here to ensure consistency and prevent typos
const (
	// Browser redirects
	RouteCallback       = "/auth/callback"
	RouteLogoutCallback = "/logout-callback"

	// Views
	RouteHome  = "/home"
	RouteLogin = "/login"

	// API Routes
	RouteToasts = "/toasts"
)
