package guard

import (
	"net/http"
)

const (
	// LoginPath is where unauthenticated users are sent
	LoginPath = "/login"
	// HomePath is where authenticated users are sent
	HomePath = "/home"
)

// Authenticator reports whether the current user holds a usable session.
type Authenticator interface {
	IsAuthenticated() bool
}

// Decision is the outcome of a guard check.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Guard decides whether a route may be entered.
type Guard interface {
	CanActivate(path string) Decision
}

// GuardFunc adapts a function to a Guard.
type GuardFunc func(path string) Decision

func (f GuardFunc) CanActivate(path string) Decision {
	return f(path)
}

// Authenticated admits authenticated users and sends everyone else to the login page.
func Authenticated(a Authenticator) Guard {
	return GuardFunc(func(string) Decision {
		if a.IsAuthenticated() {
			return Decision{Allowed: true}
		}
		return Decision{RedirectTo: LoginPath}
	})
}

// Anonymous admits users without a session and sends authenticated users home.
func Anonymous(a Authenticator) Guard {
	return GuardFunc(func(string) Decision {
		if !a.IsAuthenticated() {
			return Decision{Allowed: true}
		}
		return Decision{RedirectTo: HomePath}
	})
}

// RequireAuthenticated is middleware for routes only signed in users may see.
func RequireAuthenticated(a Authenticator) func(http.HandlerFunc) http.HandlerFunc {
	return middleware(Authenticated(a))
}

// RequireAnonymous is middleware for the login and registration routes.
func RequireAnonymous(a Authenticator) func(http.HandlerFunc) http.HandlerFunc {
	return middleware(Anonymous(a))
}

func middleware(g Guard) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			decision := g.CanActivate(r.URL.Path)
			if !decision.Allowed {
				http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}
