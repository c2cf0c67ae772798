package auth

import (
	"context"
	"net/url"

	"github.com/jrsteele09/go-auth-client/backend"
	"github.com/jrsteele09/go-auth-client/sessions"
)

// Backend is the subset of the backend client the controller calls.
type Backend interface {
	Login(ctx context.Context, req backend.LoginRequest) (*backend.TokenResponse, error)
	Register(ctx context.Context, req backend.RegisterRequest) (*backend.TokenResponse, error)
	AuthURL(ctx context.Context, provider backend.GrantType) (string, error)
	ExchangeCode(ctx context.Context, code string) (*backend.TokenResponse, error)
	UserInfo(ctx context.Context, accessToken string) (*sessions.UserInfo, error)
	Logout(ctx context.Context, idToken string) (string, error)
}

// Notifier shows toasts to the user.
type Notifier interface {
	ShowSuccess(title, message string)
	ShowError(title, message string)
	ShowWarning(title, message string)
	ShowInfo(title, message string)
}

// Navigator moves the user between views. Navigate targets an application
// route; Redirect leaves the application for an absolute URL.
type Navigator interface {
	Navigate(path string, query url.Values) error
	Redirect(rawURL string) error
}

// TokenInspector decides whether an access token is still usable.
type TokenInspector interface {
	Active(rawToken string) bool
}

// Deps holds all dependencies of the Service
type Deps struct {
	Backend   Backend         // Companion backend
	Store     *sessions.Store // Session owned by the controller
	Notifier  Notifier        // Toasts
	Navigator Navigator       // Routing
	Inspector TokenInspector  // Access token expiry
}
