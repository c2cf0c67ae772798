package router

import (
	"github.com/jrsteele09/go-auth-client/guard"
)

// Application routes
const (
	RouteRoot            = "/"
	RouteLogin           = "/login"
	RouteRegister        = "/register"
	RouteHome            = "/home"
	RouteCallback        = "/auth/callback"
	RouteCompleteProfile = "/complete-profile"
	RouteLogoutCallback  = "/logout-callback"
)

// DefaultRoutes is the application route table guarded by a.
func DefaultRoutes(a guard.Authenticator) []Route {
	authenticated := guard.Authenticated(a)
	anonymous := guard.Anonymous(a)

	return []Route{
		{Path: RouteRoot, RedirectTo: RouteHome},
		{Path: RouteHome, Guards: []guard.Guard{authenticated}},
		{Path: RouteCompleteProfile, Guards: []guard.Guard{authenticated}},
		{Path: RouteLogin, Guards: []guard.Guard{anonymous}},
		{Path: RouteRegister, Guards: []guard.Guard{anonymous}},
		{Path: RouteCallback},
		{Path: RouteLogoutCallback},
	}
}
