package server

import (
	"github.com/jrsteele09/go-auth-client/guard"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.StdMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLogoutCallback, ChainMiddleware(s.LogoutCallbackHandler(), s.StdMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteHome, ChainMiddleware(s.HomeHandler(), s.StdMiddleware(guard.RequireAuthenticated(s.deps.Auth))...))

	// API routes
	s.RegisterRouteHandler("GET "+RouteToasts, ChainMiddleware(s.ToastsHandler(), s.StdMiddleware()...))
}
