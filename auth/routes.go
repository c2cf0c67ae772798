package auth

// Application routes the controller navigates to
const (
	RouteLogin           = "/login"
	RouteRegister        = "/register"
	RouteHome            = "/home"
	RouteCallback        = "/auth/callback"
	RouteCompleteProfile = "/complete-profile"
	RouteLogoutCallback  = "/logout-callback"
)

// Query parameter added to RouteLogin after an unexpected callback failure
const (
	QueryError      = "error"
	ErrorAuthFailed = "auth_failed"
)
