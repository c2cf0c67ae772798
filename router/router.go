package router

import (
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/jrsteele09/go-auth-client/guard"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// maxRedirects bounds guard redirects for a single navigation
const maxRedirects = 8

// Route is a navigable application path. A route with RedirectTo set is an
// alias and is never current itself.
type Route struct {
	Path       string
	RedirectTo string
	Guards     []guard.Guard
}

// Location is the current route and its query parameters.
type Location struct {
	Path  string
	Query url.Values
}

func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// Router resolves paths against its route table, applying guards on every
// navigation. It implements the navigator the auth controller depends on.
type Router struct {
	mu        sync.RWMutex
	routes    map[string]Route
	current   Location
	listeners []func(Location)
	open      func(rawURL string) error
}

// Option defines a function type to modify the Router instance.
type Option func(*Router)

// WithOpener replaces the function used to leave the application for an
// absolute URL. The default opens the system browser.
func WithOpener(open func(rawURL string) error) Option {
	return func(r *Router) {
		r.open = open
	}
}

func New(options ...Option) *Router {
	r := &Router{
		routes: make(map[string]Route),
		open:   browser.OpenURL,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Register adds routes, replacing any with the same path.
func (r *Router) Register(routes ...Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, route := range routes {
		r.routes[normalise(route.Path)] = route
	}
}

// OnChange adds a listener called after every successful navigation.
func (r *Router) OnChange(listener func(Location)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
}

// Current returns the location of the last successful navigation.
func (r *Router) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Navigate moves to path. A guard that refuses the route replaces the target
// with its redirect, dropping the query.
func (r *Router) Navigate(path string, query url.Values) error {
	target := normalise(path)
	for i := 0; i < maxRedirects; i++ {
		route, ok := r.lookup(target)
		if !ok {
			return errors.Wrapf(autherrors.ErrNotFound, "[Router.Navigate] route %s", target)
		}
		if route.RedirectTo != "" {
			target = normalise(route.RedirectTo)
			continue
		}
		next, allowed := check(route, target)
		if !allowed {
			log.Debug().Str("from", target).Str("to", next).Msg("guard redirect")
			target, query = normalise(next), nil
			continue
		}
		r.commit(Location{Path: target, Query: query})
		return nil
	}
	return errors.Errorf("[Router.Navigate] too many redirects navigating to %s", path)
}

// Redirect routes relative URLs through Navigate and opens absolute URLs
// outside the application.
func (r *Router) Redirect(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return errors.Wrap(err, "[Router.Redirect] parse url")
	}
	if !u.IsAbs() {
		return r.Navigate(u.Path, u.Query())
	}
	log.Info().Str("url", rawURL).Msg("opening external url")
	if err := r.open(rawURL); err != nil {
		return errors.Wrap(err, "[Router.Redirect] open url")
	}
	return nil
}

func (r *Router) lookup(path string) (Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.routes[path]
	return route, ok
}

func (r *Router) commit(loc Location) {
	r.mu.Lock()
	r.current = loc
	listeners := slices.Clone(r.listeners)
	r.mu.Unlock()

	log.Debug().Str("location", loc.String()).Msg("navigated")
	for _, listener := range listeners {
		listener(loc)
	}
}

func check(route Route, path string) (string, bool) {
	for _, g := range route.Guards {
		if d := g.CanActivate(path); !d.Allowed {
			return d.RedirectTo, false
		}
	}
	return "", true
}

func normalise(path string) string {
	return "/" + strings.Trim(path, "/")
}
